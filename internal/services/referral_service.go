package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	level1BonusRate = 0.10
	level2BonusRate = 0.08

	referralActiveWindow = 30 * 24 * time.Hour
	referralReportTTL    = time.Minute
)

// ReferralService derives the two-level bonus report from users and
// claimed rewards on every read. Bonuses are reported, not credited;
// redis only caches the computation.
type ReferralService struct {
	userRepo   UserStore
	rewardRepo RewardStore
	cache      *redis.Client
}

func NewReferralService(userRepo UserStore, rewardRepo RewardStore, cache *redis.Client) *ReferralService {
	return &ReferralService{
		userRepo:   userRepo,
		rewardRepo: rewardRepo,
		cache:      cache,
	}
}

func (s *ReferralService) ComputeReferralBonus(userId uint64, now time.Time) (*models.ReferralBonusReport, error) {
	if s.userRepo.FindById(userId) == nil {
		return nil, apperr.NotFound("user not found")
	}

	key := fmt.Sprintf("referral:report:%d", userId)
	if cached := s.fromCache(key); cached != nil {
		return cached, nil
	}

	report := &models.ReferralBonusReport{
		DirectReferrals:   make([]models.ReferralEntry, 0),
		DownlineReferrals: make([]models.ReferralEntry, 0),
	}

	direct := s.userRepo.FindReferrals(userId)
	if direct != nil {
		for _, ref := range *direct {
			entry := s.entryFor(&ref, now)
			report.DirectReferrals = append(report.DirectReferrals, entry)
			report.Level1Bonus += entry.TotalRewards * level1BonusRate

			downline := s.userRepo.FindReferrals(uint64(ref.Id.Int64))
			if downline == nil {
				continue
			}
			for _, down := range *downline {
				downEntry := s.entryFor(&down, now)
				report.DownlineReferrals = append(report.DownlineReferrals, downEntry)
				report.Level2Bonus += downEntry.TotalRewards * level2BonusRate
			}
		}
	}
	report.TotalBonus = report.Level1Bonus + report.Level2Bonus

	s.toCache(key, report)

	return report, nil
}

func (s *ReferralService) entryFor(ref *models.User, now time.Time) models.ReferralEntry {
	total := s.rewardRepo.TotalClaimedByUser(uint64(ref.Id.Int64))
	active := ref.LastLoginAt.Valid && now.Sub(ref.LastLoginAt.Time) <= referralActiveWindow
	return models.ReferralEntry{
		UserId:       uint64(ref.Id.Int64),
		Username:     ref.Username,
		TotalRewards: total,
		IsActive:     active,
	}
}

func (s *ReferralService) fromCache(key string) *models.ReferralBonusReport {
	if s.cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var report models.ReferralBonusReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil
	}
	return &report
}

func (s *ReferralService) toCache(key string, report *models.ReferralBonusReport) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, referralReportTTL).Err(); err != nil {
		log.Error("Failed to cache referral report: ", err)
	}
}
