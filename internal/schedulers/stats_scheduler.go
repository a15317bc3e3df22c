package schedulers

import (
	"time"
	"usdtstaking/internal/config"
	"usdtstaking/internal/services"
)

var log = config.InitLogger()

// RefreshPlatformStats returns the cron job that rewrites the cached
// platform snapshot. Claims stay lazy; this only refreshes the public
// aggregate numbers.
func RefreshPlatformStats(stats *services.StatsService) func() {
	return func() {
		snapshot, err := stats.Snapshot(time.Now())
		if err != nil {
			log.Error("Failed to refresh platform stats: ", err)
			return
		}
		log.Infof("platform stats refreshed: %d active positions, %.2f staked",
			snapshot.ActivePositions, snapshot.TotalStaked)
	}
}
