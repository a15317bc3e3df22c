package models

import "time"

type ClaimResult struct {
	Amount       float64   `json:"amount"`
	NextDeadline time.Time `json:"next_deadline"`
}

type PositionWithdrawalResult struct {
	WithdrawalId  int64   `json:"withdrawal_id"`
	PayoutAmount  float64 `json:"payout_amount"`
	IsEarly       bool    `json:"is_early"`
	PenaltyAmount float64 `json:"penalty_amount"`
}

type ReferralEntry struct {
	UserId       uint64  `json:"user_id"`
	Username     string  `json:"username"`
	TotalRewards float64 `json:"total_rewards"`
	IsActive     bool    `json:"is_active"`
}

type ReferralBonusReport struct {
	Level1Bonus       float64         `json:"level1_bonus"`
	Level2Bonus       float64         `json:"level2_bonus"`
	TotalBonus        float64         `json:"total_bonus"`
	DirectReferrals   []ReferralEntry `json:"direct_referrals"`
	DownlineReferrals []ReferralEntry `json:"downline_referrals"`
}

type PlatformStats struct {
	TotalStaked      float64   `json:"total_staked"`
	ActivePositions  int       `json:"active_positions"`
	TotalRewardsPaid float64   `json:"total_rewards_paid"`
	GeneratedAt      time.Time `json:"generated_at"`
}
