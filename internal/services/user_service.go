package services

import (
	"database/sql"
	"time"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/config"
	"usdtstaking/internal/models"
	"usdtstaking/internal/notify"
	"usdtstaking/internal/util"

	"golang.org/x/crypto/bcrypt"
)

var log = config.InitLogger()

type UserService struct {
	userRepo     UserStore
	activityRepo ActivityStore
	notifier     notify.Notifier
}

func NewUserService(userRepo UserStore, activityRepo ActivityStore, notifier notify.Notifier) *UserService {
	return &UserService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
	}
}

// Signup registers a user, links the referrer when a valid referral code
// is supplied and records the SIGNUP (and REFERRAL) activity.
func (s *UserService) Signup(email, username, password, referralCode string, now time.Time) (*models.User, error) {
	if email == "" || username == "" {
		return nil, apperr.Validation("email and username are required")
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if s.userRepo.FindByEmail(email) != nil {
		return nil, apperr.Validation("email already registered")
	}

	var referredBy sql.NullInt64
	var referrer *models.User
	if referralCode != "" {
		referrer = s.userRepo.FindByReferralCode(referralCode)
		if referrer == nil {
			return nil, apperr.Validation("unknown referral code")
		}
		referredBy = referrer.Id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code, err := util.GenerateReferralCode()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		ReferralCode: code,
		ReferredBy:   referredBy,
		CreatedAt:    now,
	}
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}

	if referrer != nil {
		s.appendActivity(&models.Activity{
			UserId:    uint64(referrer.Id.Int64),
			Type:      models.ActivityReferral,
			Details:   username + " joined with your referral code",
			CreatedAt: now,
		})
	}
	s.appendActivity(&models.Activity{
		UserId:    uint64(user.Id.Int64),
		Type:      models.ActivitySignup,
		CreatedAt: now,
	})

	if err := s.notifier.Send(email, "Welcome", "Your staking account is ready."); err != nil {
		log.Error("Failed to send signup notification: ", err)
	}

	return user, nil
}

// Login verifies credentials and stamps lastLoginAt. The error does not
// reveal whether the email exists.
func (s *UserService) Login(email, password string, now time.Time) (*models.User, error) {
	user := s.userRepo.FindByEmail(email)
	if user == nil {
		return nil, apperr.Unauthorized()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized()
	}
	if err := s.userRepo.RecordLogin(uint64(user.Id.Int64), now); err != nil {
		return nil, err
	}
	user.LastLoginAt = sql.NullTime{Time: now, Valid: true}

	return user, nil
}

func (s *UserService) GetById(id uint64) (*models.User, error) {
	user := s.userRepo.FindById(id)
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	return user, nil
}

// WithdrawableBalance is the credited balance minus amounts already
// locked in pending balance withdrawals.
func (s *UserService) WithdrawableBalance(user *models.User, pendingWithdrawals float64) float64 {
	available := user.Balance - pendingWithdrawals
	if available < 0 {
		return 0
	}
	return available
}

func (s *UserService) appendActivity(act *models.Activity) {
	if err := s.activityRepo.Save(act); err != nil {
		log.Error("Failed to append activity: ", err)
	}
}
