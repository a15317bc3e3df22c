package services

import (
	"fmt"
	"time"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/config"
	"usdtstaking/internal/models"
	"usdtstaking/internal/notify"
	"usdtstaking/internal/util"

	"github.com/google/uuid"
)

// WithdrawalService handles both exit paths: balance withdrawals and
// position closures with the early-exit penalty.
type WithdrawalService struct {
	withdrawalRepo WithdrawalStore
	positionRepo   PositionStore
	userService    *UserService
	notifier       notify.Notifier
}

func NewWithdrawalService(
	withdrawalRepo WithdrawalStore,
	positionRepo PositionStore,
	userService *UserService,
	notifier notify.Notifier) *WithdrawalService {
	return &WithdrawalService{
		withdrawalRepo: withdrawalRepo,
		positionRepo:   positionRepo,
		userService:    userService,
		notifier:       notifier,
	}
}

// RequestWithdrawal takes funds out of the credited balance. The amount
// is re-checked against balance minus already-pending withdrawals so the
// same funds cannot be requested twice.
func (s *WithdrawalService) RequestWithdrawal(userId uint64, amount float64, network models.Network, address string, now time.Time) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount must be greater than zero")
	}
	if !network.Valid() {
		return nil, apperr.Validation("unsupported network")
	}
	if !util.ValidWalletAddress(network, address) {
		return nil, apperr.Validation(fmt.Sprintf("invalid %s wallet address", network))
	}

	user, err := s.userService.GetById(userId)
	if err != nil {
		return nil, err
	}
	pending := s.withdrawalRepo.SumPendingByUser(userId)
	available := s.userService.WithdrawableBalance(user, pending)
	if amount > available {
		return nil, apperr.Validation(fmt.Sprintf("amount exceeds withdrawable balance of %s", util.FormatUSDT(available)))
	}

	w := &models.Withdrawal{
		Reference: uuid.New().String(),
		UserId:    userId,
		Amount:    amount,
		Network:   network,
		Wallet:    address,
		Status:    models.WithdrawalPending,
		CreatedAt: now,
	}
	act := &models.Activity{
		UserId:    userId,
		Type:      models.ActivityUnstake,
		Amount:    amount,
		Details:   fmt.Sprintf("withdrawal of %s to %s requested", util.FormatUSDT(amount), network),
		CreatedAt: now,
	}
	if err := s.withdrawalRepo.SaveRequest(w, act); err != nil {
		return nil, err
	}

	return w, nil
}

// RequestPositionWithdrawal closes an active position. Exiting before
// the minimum staking period forfeits 60% of the principal; unclaimed
// accrual is forfeited either way since the payout is principal-based.
func (s *WithdrawalService) RequestPositionWithdrawal(positionId, userId uint64, address string, now time.Time) (*models.PositionWithdrawalResult, error) {
	pos := s.positionRepo.FindById(positionId)
	if pos == nil {
		return nil, apperr.NotFound("staking position not found")
	}
	if pos.UserId != userId {
		return nil, apperr.Unauthorized()
	}
	if pos.DepositStatus != models.DepositApproved || !pos.StartDate.Valid {
		return nil, apperr.InvalidState("position is not an approved deposit")
	}
	if pos.RequestedWithdrawal {
		return nil, apperr.InvalidState("position already has a withdrawal in progress")
	}
	if !util.ValidWalletAddress(pos.Network, address) {
		return nil, apperr.Validation(fmt.Sprintf("invalid %s wallet address", pos.Network))
	}

	stakingDays := int(now.Sub(pos.StartDate.Time).Hours() / 24)
	isEarly := stakingDays < config.MIN_STAKING_DAYS
	var penalty float64
	if isEarly {
		penalty = pos.Amount * config.EARLY_EXIT_PENALTY_PCT / 100
	}
	payout := pos.Amount - penalty

	w := &models.Withdrawal{
		Reference:         uuid.New().String(),
		UserId:            userId,
		StakingPositionId: pos.Id,
		Amount:            payout,
		Network:           pos.Network,
		Wallet:            address,
		Status:            models.WithdrawalPending,
		CreatedAt:         now,
	}
	details := fmt.Sprintf("position %d closed after %d days, payout %s", positionId, stakingDays, util.FormatUSDT(payout))
	if isEarly {
		details = fmt.Sprintf("%s (early exit penalty %s)", details, util.FormatUSDT(penalty))
	}
	act := &models.Activity{
		UserId:    userId,
		Type:      models.ActivityUnstake,
		Amount:    payout,
		Details:   details,
		CreatedAt: now,
	}
	if err := s.withdrawalRepo.SavePositionRequest(w, act); err != nil {
		return nil, err
	}

	return &models.PositionWithdrawalResult{
		WithdrawalId:  w.Id.Int64,
		PayoutAmount:  payout,
		IsEarly:       isEarly,
		PenaltyAmount: penalty,
	}, nil
}

// Approve triggers the off-system transfer; the transfer itself is a
// manual ops step.
func (s *WithdrawalService) Approve(withdrawalId int64, now time.Time) error {
	w, err := s.withdrawalRepo.Approve(withdrawalId, now)
	if err != nil {
		return err
	}

	if user, err := s.userService.GetById(w.UserId); err == nil {
		if err := s.notifier.Send(
			user.Email,
			"Withdrawal approved",
			fmt.Sprintf("Your withdrawal of %s is on its way to %s.", util.FormatUSDT(w.Amount), w.Wallet),
		); err != nil {
			log.Error("Failed to send withdrawal notification: ", err)
		}
	}

	return nil
}

func (s *WithdrawalService) Reject(withdrawalId int64) error {
	_, err := s.withdrawalRepo.Reject(withdrawalId)
	return err
}

func (s *WithdrawalService) GetUserWithdrawals(userId uint64) *[]models.Withdrawal {
	return s.withdrawalRepo.FindByUser(userId)
}

func (s *WithdrawalService) GetPending() *[]models.Withdrawal {
	return s.withdrawalRepo.FindPending()
}
