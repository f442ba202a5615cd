package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN string
}

type FeedConfig struct {
	URL string
}

type SchedulerConfig struct {
	NewsSyncInterval time.Duration
	SnapshotInterval time.Duration
}

type DrawdownConfig struct {
	DailyLossPercent   float64
	MaxDrawdownPercent float64
}

type LoggingConfig struct {
	Level string
}

type AppConfig struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Feed      FeedConfig
	Scheduler SchedulerConfig
	Drawdown  DrawdownConfig
	Logging   LoggingConfig
}

func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("DATABASE_DSN", "data/journal.db")
	viper.SetDefault("NEWS_FEED_URL", "https://nfs.faireconomy.media/ff_calendar_thisweek.json")
	viper.SetDefault("NEWS_SYNC_INTERVAL", "1h")
	viper.SetDefault("SNAPSHOT_INTERVAL", "24h")
	viper.SetDefault("DRAWDOWN_DAILY_PERCENT", 4.0)
	viper.SetDefault("DRAWDOWN_MAX_PERCENT", 8.0)
	viper.SetDefault("LOG_LEVEL", "info")

	syncInterval, err := time.ParseDuration(viper.GetString("NEWS_SYNC_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid news sync interval: %w", err)
	}
	snapshotInterval, err := time.ParseDuration(viper.GetString("SNAPSHOT_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot interval: %w", err)
	}

	cfg := &AppConfig{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			DSN: viper.GetString("DATABASE_DSN"),
		},
		Feed: FeedConfig{
			URL: viper.GetString("NEWS_FEED_URL"),
		},
		Scheduler: SchedulerConfig{
			NewsSyncInterval: syncInterval,
			SnapshotInterval: snapshotInterval,
		},
		Drawdown: DrawdownConfig{
			DailyLossPercent:   viper.GetFloat64("DRAWDOWN_DAILY_PERCENT"),
			MaxDrawdownPercent: viper.GetFloat64("DRAWDOWN_MAX_PERCENT"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}

	return cfg, nil
}
