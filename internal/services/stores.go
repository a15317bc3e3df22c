package services

import (
	"time"
	"usdtstaking/internal/models"
)

// Store interfaces consumed by the services. The sqlx repositories in
// internal/repositories satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	Save(user *models.User) error
	Update(user *models.User) error
	RecordLogin(userId uint64, now time.Time) error
	FindById(id uint64) *models.User
	FindByEmail(email string) *models.User
	FindByReferralCode(code string) *models.User
	FindReferrals(referrerId uint64) *[]models.User
	CountReferrals(referrerId uint64) int
}

type PlanStore interface {
	FindById(id uint64) *models.StakingPlan
	FindAll() *[]models.StakingPlan
}

type PositionStore interface {
	Save(pos *models.StakingPosition, act *models.Activity) error
	FindById(id uint64) *models.StakingPosition
	FindByUser(userId uint64) *[]models.StakingPosition
	FindPendingDeposits() *[]models.StakingPosition
	Approve(id uint64, now time.Time, act *models.Activity) (bool, error)
	Reject(id uint64, act *models.Activity) (bool, error)
	MarkUnstaked(id uint64, now time.Time, act *models.Activity) (bool, error)
	TotalStaked() float64
	CountActive() int
}

type RewardStore interface {
	SaveClaim(pos *models.StakingPosition, reward *models.Reward, act *models.Activity) error
	FindByUser(userId uint64) *[]models.Reward
	TotalClaimedByUser(userId uint64) float64
	TotalPaid() float64
}

type WithdrawalStore interface {
	SaveRequest(w *models.Withdrawal, act *models.Activity) error
	SavePositionRequest(w *models.Withdrawal, act *models.Activity) error
	Approve(id int64, now time.Time) (*models.Withdrawal, error)
	Reject(id int64) (*models.Withdrawal, error)
	FindById(id int64) *models.Withdrawal
	FindByUser(userId uint64) *[]models.Withdrawal
	FindPending() *[]models.Withdrawal
	SumPendingByUser(userId uint64) float64
}

type ActivityStore interface {
	Save(act *models.Activity) error
	FindByUserLimit(userId uint64, offset, limit int) *[]models.Activity
	FindAllLimit(offset, limit int) *[]models.Activity
}
