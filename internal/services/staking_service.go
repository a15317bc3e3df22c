package services

import (
	"fmt"
	"time"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/models"
	"usdtstaking/internal/util"
)

// StakingService owns the lifecycle of a deposit: pending on submission,
// approved or rejected by an admin, earning while active, inactive once
// unstaked or withdrawn.
type StakingService struct {
	positionRepo PositionStore
	userService  *UserService
	planService  *PlanService
}

func NewStakingService(
	positionRepo PositionStore,
	userService *UserService,
	planService *PlanService) *StakingService {
	return &StakingService{
		positionRepo: positionRepo,
		userService:  userService,
		planService:  planService,
	}
}

func (s *StakingService) CreatePosition(userId, planId uint64, amount float64, network models.Network, now time.Time) (*models.StakingPosition, error) {
	user, err := s.userService.GetById(userId)
	if err != nil {
		return nil, err
	}
	plan, err := s.planService.GetById(planId)
	if err != nil {
		return nil, err
	}
	if !network.Valid() {
		return nil, apperr.Validation("unsupported network")
	}
	if amount < plan.MinAmount || amount > plan.MaxAmount {
		return nil, apperr.Validation(fmt.Sprintf(
			"amount must be between %s and %s for the %s plan",
			util.FormatUSDT(plan.MinAmount),
			util.FormatUSDT(plan.MaxAmount),
			plan.Name,
		))
	}

	referrals := s.userService.userRepo.CountReferrals(userId)
	pos := &models.StakingPosition{
		UserId:        uint64(user.Id.Int64),
		PlanId:        uint64(plan.Id.Int64),
		PlanName:      plan.Name,
		Amount:        amount,
		Network:       network,
		Apr:           util.EffectiveApr(plan.Apr, plan.AprMax, referrals),
		DepositStatus: models.DepositPending,
		IsActive:      false,
		CreatedAt:     now,
	}

	act := &models.Activity{
		UserId:    userId,
		Type:      models.ActivityStake,
		Amount:    amount,
		Details:   fmt.Sprintf("deposit of %s into %s submitted", util.FormatUSDT(amount), plan.Name),
		CreatedAt: now,
	}
	if err := s.positionRepo.Save(pos, act); err != nil {
		return nil, err
	}

	return pos, nil
}

// ApproveDeposit starts the accrual clock. Admin capability is enforced
// at the transport boundary.
func (s *StakingService) ApproveDeposit(positionId uint64, now time.Time) error {
	pos := s.positionRepo.FindById(positionId)
	if pos == nil {
		return apperr.NotFound("staking position not found")
	}

	ok, err := s.positionRepo.Approve(positionId, now, &models.Activity{
		UserId:    pos.UserId,
		Type:      models.ActivityStake,
		Amount:    pos.Amount,
		Details:   fmt.Sprintf("deposit of %s approved", util.FormatUSDT(pos.Amount)),
		CreatedAt: now,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidState("deposit already processed")
	}

	return nil
}

func (s *StakingService) RejectDeposit(positionId uint64, now time.Time) error {
	pos := s.positionRepo.FindById(positionId)
	if pos == nil {
		return apperr.NotFound("staking position not found")
	}

	ok, err := s.positionRepo.Reject(positionId, &models.Activity{
		UserId:    pos.UserId,
		Type:      models.ActivityStake,
		Amount:    pos.Amount,
		Details:   fmt.Sprintf("deposit of %s rejected", util.FormatUSDT(pos.Amount)),
		CreatedAt: now,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidState("deposit already processed")
	}

	return nil
}

// MarkUnstaked ends an active position without penalty; the payout for
// it has already gone through the withdrawal pipeline.
func (s *StakingService) MarkUnstaked(positionId uint64, now time.Time) error {
	pos := s.positionRepo.FindById(positionId)
	if pos == nil {
		return apperr.NotFound("staking position not found")
	}

	ok, err := s.positionRepo.MarkUnstaked(positionId, now, &models.Activity{
		UserId:    pos.UserId,
		Type:      models.ActivityUnstake,
		Amount:    pos.Amount,
		Details:   fmt.Sprintf("position %d unstaked", positionId),
		CreatedAt: now,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidState("position is not active")
	}

	return nil
}

func (s *StakingService) GetById(positionId uint64) (*models.StakingPosition, error) {
	pos := s.positionRepo.FindById(positionId)
	if pos == nil {
		return nil, apperr.NotFound("staking position not found")
	}

	return pos, nil
}

func (s *StakingService) GetUserPositions(userId uint64) *[]models.StakingPosition {
	return s.positionRepo.FindByUser(userId)
}

func (s *StakingService) GetPendingDeposits() *[]models.StakingPosition {
	return s.positionRepo.FindPendingDeposits()
}
