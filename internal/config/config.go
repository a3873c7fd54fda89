// Package config loads the radar configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		BaseURL    string        `yaml:"base_url"`
		DataDir    string        `yaml:"data_dir"`
		Timeout    time.Duration `yaml:"timeout"`
		MinPayload int           `yaml:"min_payload"`
		MaxPayload int64         `yaml:"max_payload_bytes"`
	} `yaml:"source"`
	Parser struct {
		MinFields int `yaml:"min_fields"`
	} `yaml:"parser"`
	Dashboard struct {
		DefaultSymbol string `yaml:"default_symbol"`
		TimeFrame     string `yaml:"time_frame"`
		MockDays      int    `yaml:"mock_days"`
		StateFile     string `yaml:"state_file"`
	} `yaml:"dashboard"`
	Score    strategy.Weights `yaml:"score"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		Driver      string `yaml:"driver"`
		SQLitePath  string `yaml:"sqlite_path"`
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"database"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		TTL           time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		DigestCron  string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	// Score keys left out of the file keep their stock values; an explicit
	// 0 switches a factor off.
	cfg := &Config{Score: strategy.DefaultWeights()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("RADAR_SOURCE_URL"); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv("RADAR_DATA_DIR"); v != "" {
		c.Source.DataDir = v
	}
	if v := os.Getenv("RADAR_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse RADAR_FETCH_TIMEOUT: %w", err)
		}
		c.Source.Timeout = d
	}
	if v := os.Getenv("RADAR_SYMBOL"); v != "" {
		c.Dashboard.DefaultSymbol = v
	}
	if v := os.Getenv("RADAR_TIME_FRAME"); v != "" {
		c.Dashboard.TimeFrame = v
	}
	if v := os.Getenv("RADAR_STATE_FILE"); v != "" {
		c.Dashboard.StateFile = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("RADAR_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Database.PostgresDSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse REDIS_DB: %w", err)
		}
		c.Cache.RedisDB = db
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		c.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		c.Schedule.DigestCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Source.DataDir == "" {
		c.Source.DataDir = "data/ticker_data"
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 15 * time.Second
	}
	if c.Source.MinPayload == 0 {
		c.Source.MinPayload = 10
	}
	if c.Source.MaxPayload == 0 {
		c.Source.MaxPayload = 32 << 20
	}
	if c.Parser.MinFields == 0 {
		c.Parser.MinFields = 30
	}
	if c.Dashboard.DefaultSymbol == "" {
		c.Dashboard.DefaultSymbol = "ACT"
	}
	if c.Dashboard.TimeFrame == "" {
		c.Dashboard.TimeFrame = string(model.TimeFrameAll)
	}
	if c.Dashboard.MockDays == 0 {
		c.Dashboard.MockDays = 180
	}
	if c.Dashboard.StateFile == "" {
		c.Dashboard.StateFile = "data/dashboard_state.json"
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/radar.db"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 */15 * * * *"
	}
	if c.Schedule.DigestCron == "" {
		c.Schedule.DigestCron = "0 0 9 * * *"
	}
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive")
	}
	if c.Parser.MinFields < 4 {
		return fmt.Errorf("parser.min_fields must be at least 4, got %d", c.Parser.MinFields)
	}
	if !model.ValidTimeFrame(c.Dashboard.TimeFrame) {
		return fmt.Errorf("dashboard.time_frame %q is not one of 1D, 1W, 1M, 3M, 1Y, ALL", c.Dashboard.TimeFrame)
	}
	if c.Dashboard.MockDays <= 0 {
		return fmt.Errorf("dashboard.mock_days must be positive")
	}
	if c.Source.MaxPayload < int64(c.Source.MinPayload) {
		return fmt.Errorf("source.max_payload_bytes must be at least source.min_payload")
	}
	if c.Score.Window <= 0 {
		return fmt.Errorf("score.window must be positive")
	}
	if c.Score.Scale <= 0 {
		return fmt.Errorf("score.scale must be positive")
	}
	switch c.Database.Driver {
	case "sqlite", "none":
	case "postgres":
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("database.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("database.driver %q is not one of sqlite, postgres, none", c.Database.Driver)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether Telegram credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
