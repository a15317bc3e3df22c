package services

import (
	"database/sql"
	"sync"
	"time"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/models"
)

// memStore backs every store interface for the service tests. The claim
// and withdrawal guards run under one mutex, mirroring the conditional
// UPDATE semantics of the sqlx repositories.
type memStore struct {
	mu          sync.Mutex
	users       map[uint64]*models.User
	plans       map[uint64]*models.StakingPlan
	positions   map[uint64]*models.StakingPosition
	rewards     []models.Reward
	withdrawals map[int64]*models.Withdrawal
	activities  []models.Activity
	nextId      int64
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uint64]*models.User),
		plans:       make(map[uint64]*models.StakingPlan),
		positions:   make(map[uint64]*models.StakingPosition),
		withdrawals: make(map[int64]*models.Withdrawal),
	}
}

func referredBy(userId uint64) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(userId), Valid: true}
}

func (m *memStore) id() int64 {
	m.nextId++
	return m.nextId
}

func (m *memStore) addUser(u models.User) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	u.Id = sql.NullInt64{Int64: id, Valid: true}
	m.users[uint64(id)] = &u
	return uint64(id)
}

func (m *memStore) addPlan(p models.StakingPlan) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	p.Id = sql.NullInt64{Int64: id, Valid: true}
	m.plans[uint64(id)] = &p
	return uint64(id)
}

// UserStore

func (m *memStore) Save(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	user.Id = sql.NullInt64{Int64: id, Valid: true}
	cp := *user
	m.users[uint64(id)] = &cp
	return nil
}

func (m *memStore) Update(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.users[uint64(user.Id.Int64)] = &cp
	return nil
}

func (m *memStore) RecordLogin(userId uint64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userId]; ok {
		u.LastLoginAt = sql.NullTime{Time: now, Valid: true}
	}
	m.activities = append(m.activities, models.Activity{UserId: userId, Type: models.ActivityLogin, CreatedAt: now})
	return nil
}

func (m *memStore) FindById(id uint64) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp
	}
	return nil
}

func (m *memStore) FindByEmail(email string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *memStore) FindByReferralCode(code string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ReferralCode == code {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *memStore) FindReferrals(referrerId uint64) *[]models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.User, 0)
	for _, u := range m.users {
		if u.ReferredBy.Valid && uint64(u.ReferredBy.Int64) == referrerId {
			res = append(res, *u)
		}
	}
	return &res
}

func (m *memStore) CountReferrals(referrerId uint64) int {
	return len(*m.FindReferrals(referrerId))
}

// PlanStore

func (m *memStore) FindPlanById(id uint64) *models.StakingPlan {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.plans[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

func (m *memStore) FindAll() *[]models.StakingPlan {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.StakingPlan, 0)
	for _, p := range m.plans {
		res = append(res, *p)
	}
	return &res
}

// planView adapts memStore to PlanStore; FindById collides with the user
// lookup, so plans get their own view type.
type planView struct{ m *memStore }

func (v planView) FindById(id uint64) *models.StakingPlan { return v.m.FindPlanById(id) }
func (v planView) FindAll() *[]models.StakingPlan         { return v.m.FindAll() }

// PositionStore

type positionView struct{ m *memStore }

func (v positionView) Save(pos *models.StakingPosition, act *models.Activity) error {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	pos.Id = sql.NullInt64{Int64: id, Valid: true}
	cp := *pos
	m.positions[uint64(id)] = &cp
	m.activities = append(m.activities, *act)
	return nil
}

func (v positionView) FindById(id uint64) *models.StakingPosition {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.positions[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

func (v positionView) FindByUser(userId uint64) *[]models.StakingPosition {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.StakingPosition, 0)
	for _, p := range m.positions {
		if p.UserId == userId {
			res = append(res, *p)
		}
	}
	return &res
}

func (v positionView) FindPendingDeposits() *[]models.StakingPosition {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.StakingPosition, 0)
	for _, p := range m.positions {
		if p.DepositStatus == models.DepositPending {
			res = append(res, *p)
		}
	}
	return &res
}

func (v positionView) Approve(id uint64, now time.Time, act *models.Activity) (bool, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[id]
	if !ok || p.DepositStatus != models.DepositPending {
		return false, nil
	}
	p.DepositStatus = models.DepositApproved
	p.StartDate = sql.NullTime{Time: now, Valid: true}
	p.IsActive = true
	m.activities = append(m.activities, *act)
	return true, nil
}

func (v positionView) Reject(id uint64, act *models.Activity) (bool, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[id]
	if !ok || p.DepositStatus != models.DepositPending {
		return false, nil
	}
	p.DepositStatus = models.DepositRejected
	m.activities = append(m.activities, *act)
	return true, nil
}

func (v positionView) MarkUnstaked(id uint64, now time.Time, act *models.Activity) (bool, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[id]
	if !ok || !p.IsActive {
		return false, nil
	}
	p.IsActive = false
	p.EndDate = sql.NullTime{Time: now, Valid: true}
	m.activities = append(m.activities, *act)
	return true, nil
}

func (v positionView) TotalStaked() float64 {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0.0
	for _, p := range m.positions {
		if p.IsActive {
			total += p.Amount
		}
	}
	return total
}

func (v positionView) CountActive() int {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.positions {
		if p.IsActive {
			n++
		}
	}
	return n
}

// RewardStore

type rewardView struct{ m *memStore }

func (v rewardView) SaveClaim(pos *models.StakingPosition, reward *models.Reward, act *models.Activity) error {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.positions[uint64(pos.Id.Int64)]
	if !ok {
		return apperr.NotFound("staking position not found")
	}
	if !stored.IsActive || (stored.LastClaimedAt.Valid && !stored.NextClaimDeadline.Time.Before(reward.ClaimedAt)) {
		return apperr.AlreadyClaimed("reward already claimed for the current period")
	}
	stored.LastClaimedAt = pos.LastClaimedAt
	stored.NextClaimDeadline = pos.NextClaimDeadline
	reward.Id = sql.NullInt64{Int64: m.id(), Valid: true}
	m.rewards = append(m.rewards, *reward)
	if u, ok := m.users[reward.UserId]; ok {
		u.Balance += reward.Amount
	}
	m.activities = append(m.activities, *act)
	return nil
}

func (v rewardView) FindByUser(userId uint64) *[]models.Reward {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.Reward, 0)
	for _, r := range m.rewards {
		if r.UserId == userId {
			res = append(res, r)
		}
	}
	return &res
}

func (v rewardView) TotalClaimedByUser(userId uint64) float64 {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0.0
	for _, r := range m.rewards {
		if r.UserId == userId && r.Status == models.RewardClaimed {
			total += r.Amount
		}
	}
	return total
}

func (v rewardView) TotalPaid() float64 {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0.0
	for _, r := range m.rewards {
		if r.Status == models.RewardClaimed {
			total += r.Amount
		}
	}
	return total
}

// WithdrawalStore

type withdrawalView struct{ m *memStore }

func (v withdrawalView) SaveRequest(w *models.Withdrawal, act *models.Activity) error {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	w.Id = sql.NullInt64{Int64: id, Valid: true}
	cp := *w
	m.withdrawals[id] = &cp
	m.activities = append(m.activities, *act)
	return nil
}

func (v withdrawalView) SavePositionRequest(w *models.Withdrawal, act *models.Activity) error {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	pos, ok := m.positions[uint64(w.StakingPositionId.Int64)]
	if !ok || pos.RequestedWithdrawal {
		return apperr.InvalidState("position already has a withdrawal in progress")
	}
	pos.RequestedWithdrawal = true
	pos.WithdrawalStatus = models.WithdrawalPending
	pos.IsActive = false
	id := m.id()
	w.Id = sql.NullInt64{Int64: id, Valid: true}
	cp := *w
	m.withdrawals[id] = &cp
	m.activities = append(m.activities, *act)
	return nil
}

func (v withdrawalView) Approve(id int64, now time.Time) (*models.Withdrawal, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.withdrawals[id]
	if !ok || w.Status != models.WithdrawalPending {
		return nil, apperr.InvalidState("withdrawal already processed")
	}
	w.Status = models.WithdrawalApproved
	if w.StakingPositionId.Valid {
		if pos, ok := m.positions[uint64(w.StakingPositionId.Int64)]; ok {
			pos.WithdrawalStatus = models.WithdrawalApproved
			pos.EndDate = sql.NullTime{Time: now, Valid: true}
		}
	} else if u, ok := m.users[w.UserId]; ok {
		u.Balance -= w.Amount
	}
	cp := *w
	return &cp, nil
}

func (v withdrawalView) Reject(id int64) (*models.Withdrawal, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.withdrawals[id]
	if !ok || w.Status != models.WithdrawalPending {
		return nil, apperr.InvalidState("withdrawal already processed")
	}
	w.Status = models.WithdrawalRejected
	if w.StakingPositionId.Valid {
		if pos, ok := m.positions[uint64(w.StakingPositionId.Int64)]; ok {
			pos.WithdrawalStatus = models.WithdrawalRejected
			pos.RequestedWithdrawal = false
			pos.IsActive = true
		}
	}
	cp := *w
	return &cp, nil
}

func (v withdrawalView) FindById(id int64) *models.Withdrawal {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.withdrawals[id]; ok {
		cp := *w
		return &cp
	}
	return nil
}

func (v withdrawalView) FindByUser(userId uint64) *[]models.Withdrawal {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.Withdrawal, 0)
	for _, w := range m.withdrawals {
		if w.UserId == userId {
			res = append(res, *w)
		}
	}
	return &res
}

func (v withdrawalView) FindPending() *[]models.Withdrawal {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.Withdrawal, 0)
	for _, w := range m.withdrawals {
		if w.Status == models.WithdrawalPending {
			res = append(res, *w)
		}
	}
	return &res
}

func (v withdrawalView) SumPendingByUser(userId uint64) float64 {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0.0
	for _, w := range m.withdrawals {
		if w.UserId == userId && w.Status == models.WithdrawalPending && !w.StakingPositionId.Valid {
			total += w.Amount
		}
	}
	return total
}

// ActivityStore

type activityView struct{ m *memStore }

func (v activityView) Save(act *models.Activity) error {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, *act)
	return nil
}

func (v activityView) FindByUserLimit(userId uint64, offset, limit int) *[]models.Activity {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.Activity, 0)
	for _, a := range m.activities {
		if a.UserId == userId {
			res = append(res, a)
		}
	}
	return &res
}

func (v activityView) FindAllLimit(offset, limit int) *[]models.Activity {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.Activity, len(m.activities))
	copy(res, m.activities)
	return &res
}
