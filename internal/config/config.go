package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultMinStakingDays      = 30
	DefaultEarlyExitPenaltyPct = 60
)

var MIN_STAKING_DAYS = DefaultMinStakingDays
var EARLY_EXIT_PENALTY_PCT float64 = DefaultEarlyExitPenaltyPct
var JWT_SECRET string

var log = InitLogger()

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Addr string
}

func InitConfig() error {
	err := godotenv.Load()
	if err != nil {
		log.Error("Error loading .env file")
	}

	MIN_STAKING_DAYS, err = strconv.Atoi(os.Getenv("MIN_STAKING_DAYS"))
	if err != nil {
		MIN_STAKING_DAYS = DefaultMinStakingDays
	}

	EARLY_EXIT_PENALTY_PCT, err = strconv.ParseFloat(os.Getenv("EARLY_EXIT_PENALTY_PCT"), 64)
	if err != nil {
		EARLY_EXIT_PENALTY_PCT = DefaultEarlyExitPenaltyPct
	}

	JWT_SECRET = os.Getenv("JWT_SECRET")
	if JWT_SECRET == "" {
		log.Error("JWT_SECRET is not set")
	}

	return nil
}

func LoadPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		DBName:   os.Getenv("DB_NAME"),
	}
}

func LoadServerConfig() *ServerConfig {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return &ServerConfig{Addr: addr}
}
