package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// Config holds all application configuration
type Config struct {
	Symbol         string `env:"SYMBOL" envDefault:"BTC"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"10"` // seconds
	RequestsPerSec int    `env:"REQUESTS_PER_SEC" envDefault:"5"`
	HistoryHours   int    `env:"HISTORY_HOURS" envDefault:"168"`

	// Signal providers
	LunarCrushAPIKey    string  `env:"LUNARCRUSH_API_KEY"`
	CryptoCompareAPIKey string  `env:"CRYPTOCOMPARE_API_KEY"`
	WhaleThresholdBTC   float64 `env:"WHALE_THRESHOLD_BTC" envDefault:"100"`

	// Timeframes are read from TimeframesFile when set
	TimeframesFile string            `env:"TIMEFRAMES_FILE"`
	Timeframes     []model.Timeframe `env:"-"`

	// HTTP API
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Telegram
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
	BroadcastCron    string `env:"BROADCAST_CRON" envDefault:"@every 15m"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.Timeframes = model.DefaultTimeframes()
	if cfg.TimeframesFile != "" {
		timeframes, err := LoadTimeframes(cfg.TimeframesFile)
		if err != nil {
			return nil, err
		}
		cfg.Timeframes = timeframes
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

type timeframesFile struct {
	Timeframes []model.Timeframe `yaml:"timeframes"`
}

// LoadTimeframes reads the ordered timeframe list from a YAML file:
//
//	timeframes:
//	  - label: 1H
//	    hours_ahead: 1
//	    volatility_multiplier: 1.0
func LoadTimeframes(path string) ([]model.Timeframe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeframes file: %w", err)
	}

	var file timeframesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse timeframes file: %w", err)
	}
	if len(file.Timeframes) == 0 {
		return nil, fmt.Errorf("timeframes file %s defines no timeframes", path)
	}

	return file.Timeframes, nil
}

// Validate checks ranges that would otherwise surface as odd runtime behavior.
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return errors.New("symbol must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.RequestsPerSec <= 0 {
		return errors.New("requests per second must be positive")
	}
	if c.HistoryHours < model.MinHistorySamples {
		return fmt.Errorf("history hours must be at least %d", model.MinHistorySamples)
	}
	if len(c.Timeframes) == 0 {
		return errors.New("at least one timeframe is required")
	}

	seen := make(map[string]bool, len(c.Timeframes))
	for _, tf := range c.Timeframes {
		if tf.Label == "" {
			return errors.New("timeframe label must not be empty")
		}
		if seen[tf.Label] {
			return fmt.Errorf("duplicate timeframe %q", tf.Label)
		}
		seen[tf.Label] = true
		if tf.HoursAhead <= 0 {
			return fmt.Errorf("timeframe %q: hours ahead must be positive", tf.Label)
		}
		if tf.VolatilityMultiplier <= 0 {
			return fmt.Errorf("timeframe %q: volatility multiplier must be positive", tf.Label)
		}
	}

	return nil
}

// Timeout returns RequestTimeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
