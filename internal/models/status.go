package models

import "time"

type DepositStatus string

const (
	DepositPending  DepositStatus = "PENDING"
	DepositApproved DepositStatus = "APPROVED"
	DepositRejected DepositStatus = "REJECTED"
)

type WithdrawalStatus string

const (
	WithdrawalNone     WithdrawalStatus = ""
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

type RewardStatus string

const (
	RewardPending RewardStatus = "PENDING"
	RewardClaimed RewardStatus = "CLAIMED"
	RewardFailed  RewardStatus = "FAILED"
)

type ActivityType string

const (
	ActivityStake    ActivityType = "STAKE"
	ActivityUnstake  ActivityType = "UNSTAKE"
	ActivityReward   ActivityType = "REWARD"
	ActivityReferral ActivityType = "REFERRAL"
	ActivityLogin    ActivityType = "LOGIN"
	ActivitySignup   ActivityType = "SIGNUP"
)

type Network string

const (
	NetworkSol   Network = "SOL"
	NetworkTrx   Network = "TRX"
	NetworkBep20 Network = "BEP20"
	NetworkTon   Network = "TON"
)

func (n Network) Valid() bool {
	switch n {
	case NetworkSol, NetworkTrx, NetworkBep20, NetworkTon:
		return true
	}
	return false
}

// ClaimWindowOpen reports whether a further claim is allowed at now.
// The first claim is always allowed. Afterwards the interval
// [lastClaimedAt, nextClaimDeadline] is closed on both ends: a claim at
// exactly the deadline is still rejected.
func ClaimWindowOpen(lastClaimedAt, nextClaimDeadline time.Time, hasClaimed bool, now time.Time) bool {
	if !hasClaimed {
		return true
	}
	if !now.Before(lastClaimedAt) && !now.After(nextClaimDeadline) {
		return false
	}
	return now.After(nextClaimDeadline)
}
