package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Alias1177/SwingTrader/models"
)

// Config holds all application configuration
type Config struct {
	TwelveAPIKey string
	VenueBaseURL string
	VenueAPIKey  string

	Symbol         string
	FastTimeframe  string
	SlowTimeframes []string
	CandleCount    int

	DailyDrawdownPct   float64
	OverallDrawdownPct float64
	MaxTradesPerDay    int
	RiskPercent        float64
	MinVolumeUnit      float64
	VolumePrecision    int
	ResultMultiplier   float64

	TickInterval   time.Duration
	RequestTimeout time.Duration
	LogLevel       string

	TelegramBotToken string
	TelegramChatID   int64

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	cfg := Config{
		TwelveAPIKey: os.Getenv("TWELVE_API_KEY"),
		VenueBaseURL: os.Getenv("VENUE_BASE_URL"),
		VenueAPIKey:  os.Getenv("VENUE_API_KEY"),

		Symbol:         getEnvWithDefault("SYMBOL", "EUR/USD"),
		FastTimeframe:  getEnvWithDefault("FAST_TIMEFRAME", "5min"),
		SlowTimeframes: splitList(getEnvWithDefault("SLOW_TIMEFRAMES", "4h,1h,30min,15min")),
		CandleCount:    getEnvIntWithDefault("CANDLE_COUNT", 120),

		DailyDrawdownPct:   getEnvFloatWithDefault("DAILY_DRAWDOWN_PCT", 0.05),
		OverallDrawdownPct: getEnvFloatWithDefault("OVERALL_DRAWDOWN_PCT", 0.10),
		MaxTradesPerDay:    getEnvIntWithDefault("MAX_TRADES_PER_DAY", 3),
		RiskPercent:        getEnvFloatWithDefault("RISK_PERCENT", 0.01),
		MinVolumeUnit:      getEnvFloatWithDefault("MIN_VOLUME_UNIT", 0.01),
		VolumePrecision:    getEnvIntWithDefault("VOLUME_PRECISION", 2),
		ResultMultiplier:   getEnvFloatWithDefault("RESULT_MULTIPLIER", 1.0),

		TickInterval:   getEnvDurationWithDefault("TICK_INTERVAL", time.Minute),
		RequestTimeout: getEnvDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0),

		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnvWithDefault("DB_NAME", "swingtrader"),
		DBSSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the trading loop cannot run with. These
// are fatal at startup, never per-tick conditions.
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol must not be empty")
	}
	if !models.IsSupportedInterval(c.FastTimeframe) {
		return fmt.Errorf("unsupported fast timeframe %q", c.FastTimeframe)
	}
	if len(c.SlowTimeframes) == 0 {
		return fmt.Errorf("at least one slow timeframe is required")
	}
	for _, tf := range c.SlowTimeframes {
		if !models.IsSupportedInterval(tf) {
			return fmt.Errorf("unsupported slow timeframe %q", tf)
		}
	}
	if c.DailyDrawdownPct <= 0 || c.DailyDrawdownPct >= 1 {
		return fmt.Errorf("DAILY_DRAWDOWN_PCT %v out of range (0,1)", c.DailyDrawdownPct)
	}
	if c.OverallDrawdownPct <= 0 || c.OverallDrawdownPct >= 1 {
		return fmt.Errorf("OVERALL_DRAWDOWN_PCT %v out of range (0,1)", c.OverallDrawdownPct)
	}
	if c.MaxTradesPerDay < 1 {
		return fmt.Errorf("MAX_TRADES_PER_DAY %d must be at least 1", c.MaxTradesPerDay)
	}
	if c.RiskPercent <= 0 || c.RiskPercent >= 1 {
		return fmt.Errorf("RISK_PERCENT %v out of range (0,1)", c.RiskPercent)
	}
	if c.MinVolumeUnit <= 0 {
		return fmt.Errorf("MIN_VOLUME_UNIT %v must be positive", c.MinVolumeUnit)
	}
	if c.ResultMultiplier <= 0 {
		return fmt.Errorf("RESULT_MULTIPLIER %v must be positive", c.ResultMultiplier)
	}
	if c.TickInterval < time.Second {
		return fmt.Errorf("TICK_INTERVAL %v too short", c.TickInterval)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
