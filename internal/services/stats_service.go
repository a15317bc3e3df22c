package services

import (
	"context"
	"encoding/json"
	"time"
	"usdtstaking/internal/models"

	"github.com/redis/go-redis/v9"
)

const statsKey = "platform:stats"

// StatsService maintains the platform-wide snapshot served on the public
// stats endpoint. The snapshot is refreshed by a cron job, not per
// request.
type StatsService struct {
	positionRepo PositionStore
	rewardRepo   RewardStore
	cache        *redis.Client
}

func NewStatsService(positionRepo PositionStore, rewardRepo RewardStore, cache *redis.Client) *StatsService {
	return &StatsService{
		positionRepo: positionRepo,
		rewardRepo:   rewardRepo,
		cache:        cache,
	}
}

func (s *StatsService) Snapshot(now time.Time) (*models.PlatformStats, error) {
	stats := &models.PlatformStats{
		TotalStaked:      s.positionRepo.TotalStaked(),
		ActivePositions:  s.positionRepo.CountActive(),
		TotalRewardsPaid: s.rewardRepo.TotalPaid(),
		GeneratedAt:      now,
	}

	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		raw, err := json.Marshal(stats)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, statsKey, raw, 0).Err(); err != nil {
			log.Error("Failed to store stats snapshot: ", err)
		}
	}

	return stats, nil
}

// Get serves the last snapshot, falling back to a fresh computation when
// the cache is empty.
func (s *StatsService) Get(now time.Time) (*models.PlatformStats, error) {
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		raw, err := s.cache.Get(ctx, statsKey).Bytes()
		if err == nil {
			var stats models.PlatformStats
			if err := json.Unmarshal(raw, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	return s.Snapshot(now)
}
