package util

import "math"

const ReferralAprBoostStep = 0.01

// DailyRate converts an annual percentage rate to a compounding daily
// rate: (1 + apr/100)^(1/365) - 1.
func DailyRate(apr float64) float64 {
	return math.Pow(1+apr/100, 1.0/365) - 1
}

// DailyReward returns the reward earned by principal over one day at apr.
func DailyReward(principal, apr float64) float64 {
	return principal * DailyRate(apr)
}

// EffectiveApr boosts the plan's base rate by 0.01 percentage points per
// direct referral, capped at the plan ceiling.
func EffectiveApr(apr, aprMax float64, directReferrals int) float64 {
	boosted := apr + ReferralAprBoostStep*float64(directReferrals)
	return math.Min(aprMax, boosted)
}
