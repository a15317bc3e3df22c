package services

import (
	"database/sql"
	"fmt"
	"time"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/models"
	"usdtstaking/internal/util"
)

// RewardService is the accrual engine. Eligibility is checked lazily on
// claim; there is no background payout job.
type RewardService struct {
	rewardRepo   RewardStore
	positionRepo PositionStore
	userRepo     UserStore
	planService  *PlanService
}

func NewRewardService(
	rewardRepo RewardStore,
	positionRepo PositionStore,
	userRepo UserStore,
	planService *PlanService) *RewardService {
	return &RewardService{
		rewardRepo:   rewardRepo,
		positionRepo: positionRepo,
		userRepo:     userRepo,
		planService:  planService,
	}
}

// Claim pays out one day of accrual. The store-level cursor guard makes
// the whole operation first-writer-wins: of two racing claims exactly
// one inserts a reward and credits the balance, the other gets
// AlreadyClaimedError.
func (s *RewardService) Claim(positionId, userId uint64, now time.Time) (*models.ClaimResult, error) {
	pos := s.positionRepo.FindById(positionId)
	if pos == nil {
		return nil, apperr.NotFound("staking position not found")
	}
	if pos.UserId != userId {
		return nil, apperr.Unauthorized()
	}
	if pos.DepositStatus != models.DepositApproved || !pos.IsActive {
		return nil, apperr.InvalidState("position is not earning")
	}
	if !models.ClaimWindowOpen(pos.LastClaimedAt.Time, pos.NextClaimDeadline.Time, pos.LastClaimedAt.Valid, now) {
		return nil, apperr.AlreadyClaimed("reward already claimed for the current period")
	}

	plan, err := s.planService.GetById(pos.PlanId)
	if err != nil {
		return nil, err
	}
	referrals := s.userRepo.CountReferrals(userId)
	apr := util.EffectiveApr(plan.Apr, plan.AprMax, referrals)
	amount := util.DailyReward(pos.Amount, apr)
	deadline := now.Add(24 * time.Hour)

	pos.LastClaimedAt = sql.NullTime{Time: now, Valid: true}
	pos.NextClaimDeadline = sql.NullTime{Time: deadline, Valid: true}

	reward := &models.Reward{
		UserId:            userId,
		StakingPositionId: positionId,
		Amount:            amount,
		Status:            models.RewardClaimed,
		ClaimedAt:         now,
	}
	act := &models.Activity{
		UserId:    userId,
		Type:      models.ActivityReward,
		Amount:    amount,
		Details:   fmt.Sprintf("daily reward of %s at %.2f%% APR", util.FormatUSDT(amount), apr),
		CreatedAt: now,
	}
	if err := s.rewardRepo.SaveClaim(pos, reward, act); err != nil {
		return nil, err
	}

	return &models.ClaimResult{
		Amount:       amount,
		NextDeadline: deadline,
	}, nil
}

func (s *RewardService) GetUserRewards(userId uint64) *[]models.Reward {
	return s.rewardRepo.FindByUser(userId)
}

func (s *RewardService) TotalClaimed(userId uint64) float64 {
	return s.rewardRepo.TotalClaimedByUser(userId)
}
