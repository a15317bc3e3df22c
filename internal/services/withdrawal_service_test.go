package services

import (
	"math"
	"testing"
	"time"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/models"
)

const (
	goodTrxAddr   = "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8"
	goodBep20Addr = "0xab12CD34ef56ab12CD34ef56ab12CD34ef56ab12"
)

func TestEarlyWithdrawalPenalty(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 1000)

	// 10 days in: early exit, 60% penalty
	res, err := env.withdrawals.RequestPositionWithdrawal(posId, env.userId, goodTrxAddr, testNow.Add(10*24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsEarly {
		t.Error("10-day exit must be early")
	}
	if res.PenaltyAmount != 600 {
		t.Errorf("penalty = %v, want 600", res.PenaltyAmount)
	}
	if res.PayoutAmount != 400 {
		t.Errorf("payout = %v, want 400", res.PayoutAmount)
	}
}

func TestNonEarlyWithdrawal(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 1000)

	res, err := env.withdrawals.RequestPositionWithdrawal(posId, env.userId, goodTrxAddr, testNow.Add(31*24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsEarly {
		t.Error("31-day exit must not be early")
	}
	if res.PenaltyAmount != 0 {
		t.Errorf("penalty = %v, want 0", res.PenaltyAmount)
	}
	if res.PayoutAmount != 1000 {
		t.Errorf("payout = %v, want 1000", res.PayoutAmount)
	}
}

func TestWithdrawalAtExactThreshold(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 1000)

	// exactly 30 full days of staking is no longer early
	res, err := env.withdrawals.RequestPositionWithdrawal(posId, env.userId, goodTrxAddr, testNow.Add(30*24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsEarly {
		t.Error("30-day exit must not be early")
	}
}

func TestPositionWithdrawalAddressGate(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 1000) // TRX position

	_, err := env.withdrawals.RequestPositionWithdrawal(posId, env.userId, goodBep20Addr, testNow.Add(time.Hour))
	if !apperr.IsValidation(err) {
		t.Fatalf("wrong-network address: got %v, want ValidationError", err)
	}
}

func TestPositionWithdrawalDoubleRequest(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 1000)

	if _, err := env.withdrawals.RequestPositionWithdrawal(posId, env.userId, goodTrxAddr, testNow.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	_, err := env.withdrawals.RequestPositionWithdrawal(posId, env.userId, goodTrxAddr, testNow.Add(2*time.Hour))
	if !apperr.IsInvalidState(err) {
		t.Fatalf("second request: got %v, want InvalidStateError", err)
	}
}

func TestPositionWithdrawalStopsClaims(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 1000)

	if _, err := env.withdrawals.RequestPositionWithdrawal(posId, env.userId, goodTrxAddr, testNow.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if _, err := env.rewards.Claim(posId, env.userId, testNow.Add(2*time.Hour)); !apperr.IsInvalidState(err) {
		t.Errorf("claim after withdrawal request: got %v, want InvalidStateError", err)
	}
}

func TestPositionWithdrawalOwnership(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 1000)
	other := env.store.addUser(models.User{Email: "bob@example.com", Username: "bob", ReferralCode: "BOBCODE123"})

	_, err := env.withdrawals.RequestPositionWithdrawal(posId, other, goodTrxAddr, testNow.Add(time.Hour))
	if !apperr.IsUnauthorized(err) {
		t.Fatalf("foreign withdrawal: got %v, want UnauthorizedError", err)
	}
}

func TestBalanceWithdrawalValidation(t *testing.T) {
	env := newTestEnv()
	// credit some balance through a claim
	posId := env.approvedPosition(t, 2000)
	res, err := env.rewards.Claim(posId, env.userId, testNow)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		amount  float64
		network models.Network
		addr    string
		wantErr bool
	}{
		{"zero amount", 0, models.NetworkBep20, goodBep20Addr, true},
		{"negative amount", -5, models.NetworkBep20, goodBep20Addr, true},
		{"bad bep20 address", res.Amount, models.NetworkBep20, "0xnothex", true},
		{"bep20 address on trx", res.Amount, models.NetworkTrx, goodBep20Addr, true},
		{"more than balance", res.Amount + 1, models.NetworkBep20, goodBep20Addr, true},
		{"full balance", res.Amount, models.NetworkBep20, goodBep20Addr, false},
	}
	for _, tt := range tests {
		_, err := env.withdrawals.RequestWithdrawal(env.userId, tt.amount, tt.network, tt.addr, testNow)
		if tt.wantErr && !apperr.IsValidation(err) {
			t.Errorf("%s: got %v, want ValidationError", tt.name, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
	}
}

func TestPendingWithdrawalsLockBalance(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 2000)
	res, err := env.rewards.Claim(posId, env.userId, testNow)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := env.withdrawals.RequestWithdrawal(env.userId, res.Amount, models.NetworkBep20, goodBep20Addr, testNow); err != nil {
		t.Fatal(err)
	}
	// the same funds cannot be requested again while the first is pending
	_, err = env.withdrawals.RequestWithdrawal(env.userId, res.Amount, models.NetworkBep20, goodBep20Addr, testNow)
	if !apperr.IsValidation(err) {
		t.Fatalf("second request: got %v, want ValidationError", err)
	}
}

func TestApproveWithdrawalSettlesBalance(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 2000)
	res, err := env.rewards.Claim(posId, env.userId, testNow)
	if err != nil {
		t.Fatal(err)
	}
	w, err := env.withdrawals.RequestWithdrawal(env.userId, res.Amount, models.NetworkBep20, goodBep20Addr, testNow)
	if err != nil {
		t.Fatal(err)
	}

	if err := env.withdrawals.Approve(w.Id.Int64, testNow.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	user, _ := env.users.GetById(env.userId)
	if math.Abs(user.Balance) > 1e-9 {
		t.Errorf("balance after settlement = %v, want 0", user.Balance)
	}

	// approval is not repeatable
	if err := env.withdrawals.Approve(w.Id.Int64, testNow.Add(2*time.Hour)); !apperr.IsInvalidState(err) {
		t.Errorf("second approve: got %v, want InvalidStateError", err)
	}
}

func TestApprovePositionWithdrawalClosesPosition(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 1000)

	res, err := env.withdrawals.RequestPositionWithdrawal(posId, env.userId, goodTrxAddr, testNow.Add(31*24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	endTime := testNow.Add(32 * 24 * time.Hour)
	if err := env.withdrawals.Approve(res.WithdrawalId, endTime); err != nil {
		t.Fatal(err)
	}

	pos, _ := env.staking.GetById(posId)
	if pos.WithdrawalStatus != models.WithdrawalApproved {
		t.Errorf("withdrawal status = %s, want APPROVED", pos.WithdrawalStatus)
	}
	if !pos.EndDate.Valid || !pos.EndDate.Time.Equal(endTime) {
		t.Errorf("end date = %v, want %v", pos.EndDate, endTime)
	}
}

func TestRejectPositionWithdrawalReopens(t *testing.T) {
	env := newTestEnv()
	posId := env.approvedPosition(t, 1000)

	res, err := env.withdrawals.RequestPositionWithdrawal(posId, env.userId, goodTrxAddr, testNow.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if err := env.withdrawals.Reject(res.WithdrawalId); err != nil {
		t.Fatal(err)
	}

	pos, _ := env.staking.GetById(posId)
	if !pos.IsActive || pos.RequestedWithdrawal {
		t.Error("rejected withdrawal must reopen the position")
	}
}
