package config

import (
	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

const (
	SeedSourceGenerator = "generator"
	SeedSourceDatabase  = "database"
	SeedSourceSupabase  = "supabase"
)

type Config struct {
	GeneralVersion             string `mapstructure:"GENERAL_VERSION"`
	Environment                string `mapstructure:"ENVIRONMENT"`
	ServerPort                 int    `mapstructure:"SERVER_PORT"`
	DatabaseHost               string `mapstructure:"DB_HOST"`
	DatabasePort               int    `mapstructure:"DB_PORT"`
	DatabaseName               string `mapstructure:"DB_NAME"`
	DatabaseUser               string `mapstructure:"DB_USER"`
	DatabasePassword           string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress       string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort          int    `mapstructure:"DB_CACHE_PORT"`
	CorsAllowOrigins           string `mapstructure:"CORS_ALLOW_ORIGINS"`
	SeedSource                 string `mapstructure:"SEED_SOURCE"`
	SeedJobCount               int    `mapstructure:"SEED_JOB_COUNT"`
	SeedCleanerCount           int    `mapstructure:"SEED_CLEANER_COUNT"`
	SeedRandom                 int64  `mapstructure:"SEED_RANDOM"`
	SupabaseURL                string `mapstructure:"SUPABASE_URL"`
	SupabaseKey                string `mapstructure:"SUPABASE_KEY"`
	SchedulerEnabled           bool   `mapstructure:"SCHEDULER_ENABLED"`
	NotificationLedgerTTLHours int    `mapstructure:"NOTIFICATION_LEDGER_TTL_HOURS"`
}

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
	"CORS_ALLOW_ORIGINS",
	"SEED_SOURCE", "SEED_JOB_COUNT", "SEED_CLEANER_COUNT", "SEED_RANDOM",
	"SUPABASE_URL", "SUPABASE_KEY",
	"SCHEDULER_ENABLED", "NOTIFICATION_LEDGER_TTL_HOURS",
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	v := viper.New()
	v.AutomaticEnv()

	for _, env := range envVars {
		if err := v.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	if v.IsSet("SERVER_PORT") && v.IsSet("SEED_SOURCE") {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		v.SetConfigFile(".env.local")
		if err := v.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := Validate(config); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"seedSource", config.SeedSource,
	)
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("SERVER_PORT", 8288)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SEED_SOURCE", SeedSourceGenerator)
	v.SetDefault("SEED_JOB_COUNT", 500)
	v.SetDefault("SEED_CLEANER_COUNT", 100)
	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("NOTIFICATION_LEDGER_TTL_HOURS", 24*7)
}

func Validate(config Config) error {
	log := logger.New("config").Function("Validate")

	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	switch config.SeedSource {
	case SeedSourceGenerator:
		if config.SeedJobCount < 0 || config.SeedCleanerCount < 0 {
			return log.Error(
				"Fatal error: seed counts must not be negative",
				"jobs", config.SeedJobCount,
				"cleaners", config.SeedCleanerCount,
			)
		}
	case SeedSourceDatabase:
		if config.DatabaseHost == "" {
			return log.ErrMsg("Fatal error: DB_HOST required when SEED_SOURCE is database")
		}
	case SeedSourceSupabase:
		if config.SupabaseURL == "" || config.SupabaseKey == "" {
			return log.ErrMsg(
				"Fatal error: SUPABASE_URL and SUPABASE_KEY required when SEED_SOURCE is supabase",
			)
		}
	default:
		return log.Error("Fatal error: unknown seed source", "seedSource", config.SeedSource)
	}

	return nil
}

func (c Config) CacheEnabled() bool {
	return c.DatabaseCacheAddress != "" && c.DatabaseCachePort != 0
}
