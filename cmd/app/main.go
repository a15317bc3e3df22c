package main

import (
	"log"
	"usdtstaking/internal/config"
	"usdtstaking/internal/database"
	"usdtstaking/internal/handlers"
	"usdtstaking/internal/notify"
	"usdtstaking/internal/repositories"
	"usdtstaking/internal/schedulers"
	"usdtstaking/internal/services"

	"github.com/robfig/cron/v3"
)

func main() {
	logger := config.InitLogger()
	if err := config.InitConfig(); err != nil {
		logger.Fatalf("Failed to init config: %v", err)
	}
	logger.Infoln("Config initialized")

	psql := connectPostgres()
	defer func(db *database.Postgres) {
		if err := db.Close(); err != nil {
			log.Fatal("Failed to close database")
		}
	}(psql)
	logger.Infoln("Database initialized")

	if err := database.RunMigrations(psql, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Infoln("Migrations applied")

	redisCli, err := database.InitRedisCli()
	if err != nil {
		logger.Error("Redis unavailable, running without cache: ", err)
		redisCli = nil
	}

	userRepo := repositories.NewUserRepository(psql.Db)
	planRepo := repositories.NewPlanRepository(psql.Db)
	positionRepo := repositories.NewPositionRepository(psql.Db)
	rewardRepo := repositories.NewRewardRepository(psql.Db)
	withdrawalRepo := repositories.NewWithdrawalRepository(psql.Db)
	activityRepo := repositories.NewActivityRepository(psql.Db)

	notifier := notify.NewLogNotifier()

	userService := services.NewUserService(userRepo, activityRepo, notifier)
	planService := services.NewPlanService(planRepo)
	stakingService := services.NewStakingService(positionRepo, userService, planService)
	rewardService := services.NewRewardService(rewardRepo, positionRepo, userRepo, planService)
	withdrawalService := services.NewWithdrawalService(withdrawalRepo, positionRepo, userService, notifier)
	referralService := services.NewReferralService(userRepo, rewardRepo, redisCli)
	activityService := services.NewActivityService(activityRepo)
	statsService := services.NewStatsService(positionRepo, rewardRepo, redisCli)

	c := cron.New()
	if _, err := c.AddFunc("@hourly", schedulers.RefreshPlatformStats(statsService)); err != nil {
		logger.Fatalf("Failed to schedule stats job: %v", err)
	}
	c.Start()
	defer c.Stop()

	h := handlers.NewHandler(
		userService,
		planService,
		stakingService,
		rewardService,
		withdrawalService,
		referralService,
		activityService,
		statsService,
	)
	router := handlers.NewRouter(h)

	serverCfg := config.LoadServerConfig()
	logger.Infoln("Server starting on", serverCfg.Addr)
	if err := router.Run(serverCfg.Addr); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}

func connectPostgres() *database.Postgres {
	psqlConfig := config.LoadPostgresConfig()
	psql, err := database.NewPostgres(psqlConfig)
	if err != nil {
		log.Fatal("Failed to connect to database")
	}

	if err := psql.Ping(); err != nil {
		log.Fatal("Failed to ping database")
	}

	return psql
}
