package models

import (
	"database/sql"
	"time"
)

type User struct {
	Id           sql.NullInt64 `db:"id" json:"id"`
	Email        string        `db:"email" json:"email"`
	Username     string        `db:"username" json:"username"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Balance      float64       `db:"balance" json:"balance"`
	ReferralCode string        `db:"referral_code" json:"referral_code"`
	ReferredBy   sql.NullInt64 `db:"referred_by" json:"referred_by"`
	IsAdmin      bool          `db:"is_admin" json:"is_admin"`
	LastLoginAt  sql.NullTime  `db:"last_login_at" json:"last_login_at"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

type StakingPlan struct {
	Id        sql.NullInt64 `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	MinAmount float64       `db:"min_amount" json:"min_amount"`
	MaxAmount float64       `db:"max_amount" json:"max_amount"`
	Apr       float64       `db:"apr" json:"apr"`
	AprMax    float64       `db:"apr_max" json:"apr_max"`
}

type StakingPosition struct {
	Id                  sql.NullInt64    `db:"id" json:"id"`
	UserId              uint64           `db:"user_id" json:"user_id"`
	PlanId              uint64           `db:"plan_id" json:"plan_id"`
	PlanName            string           `db:"plan_name" json:"plan_name"`
	Amount              float64          `db:"amount" json:"amount"`
	Network             Network          `db:"network" json:"network"`
	Apr                 float64          `db:"apr" json:"apr"`
	DepositStatus       DepositStatus    `db:"deposit_status" json:"deposit_status"`
	StartDate           sql.NullTime     `db:"start_date" json:"start_date"`
	IsActive            bool             `db:"is_active" json:"is_active"`
	LastClaimedAt       sql.NullTime     `db:"last_claimed_at" json:"last_claimed_at"`
	NextClaimDeadline   sql.NullTime     `db:"next_claim_deadline" json:"next_claim_deadline"`
	RequestedWithdrawal bool             `db:"requested_withdrawal" json:"requested_withdrawal"`
	WithdrawalStatus    WithdrawalStatus `db:"withdrawal_status" json:"withdrawal_status"`
	EndDate             sql.NullTime     `db:"end_date" json:"end_date"`
	CreatedAt           time.Time        `db:"created_at" json:"created_at"`
}

type Reward struct {
	Id                sql.NullInt64 `db:"id" json:"id"`
	UserId            uint64        `db:"user_id" json:"user_id"`
	StakingPositionId uint64        `db:"staking_position_id" json:"staking_position_id"`
	Amount            float64       `db:"amount" json:"amount"`
	Status            RewardStatus  `db:"status" json:"status"`
	ClaimedAt         time.Time     `db:"claimed_at" json:"claimed_at"`
}

type Withdrawal struct {
	Id                sql.NullInt64    `db:"id" json:"id"`
	Reference         string           `db:"reference" json:"reference"`
	UserId            uint64           `db:"user_id" json:"user_id"`
	StakingPositionId sql.NullInt64    `db:"staking_position_id" json:"staking_position_id"`
	Amount            float64          `db:"amount" json:"amount"`
	Network           Network          `db:"network" json:"network"`
	Wallet            string           `db:"wallet" json:"wallet"`
	Status            WithdrawalStatus `db:"status" json:"status"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
}

type Activity struct {
	Id        sql.NullInt64 `db:"id" json:"id"`
	UserId    uint64        `db:"user_id" json:"user_id"`
	Type      ActivityType  `db:"type" json:"type"`
	Amount    float64       `db:"amount" json:"amount"`
	Details   string        `db:"details" json:"details"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}
