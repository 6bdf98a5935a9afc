package config

import (
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/model"
	"go.uber.org/zap"
)

// Environment variables read by Load.
const (
	EnvData     = "PROTVIEW_DATA"
	EnvSQLite   = "PROTVIEW_SQLITE"
	EnvAddr     = "PROTVIEW_ADDR"
	EnvLogLevel = "PROTVIEW_LOG_LEVEL"
	EnvPageSize = "PROTVIEW_PAGE_SIZE"
	EnvWindow   = "PROTVIEW_WINDOW"
)

const (
	DefaultDataPath = "./data/protein.json"
	DefaultAddr     = "0.0.0.0:8080"
	DefaultLogLevel = "info"
	MaxPageSize     = 100
)

var logLevels = []interface{}{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

// Config holds everything the commands need to start.
type Config struct {
	DataPath   string
	SQLitePath string // takes precedence over DataPath when set
	Addr       string
	LogLevel   string
	PageSize   int
	WindowSize int
}

func NewDefaultConfig() Config {
	return Config{
		DataPath:   DefaultDataPath,
		Addr:       DefaultAddr,
		LogLevel:   DefaultLogLevel,
		PageSize:   model.ITEMS_PER_PAGE,
		WindowSize: model.DEFAULT_WINDOW_SIZE,
	}
}

// Load reads .env (if any) and the PROTVIEW_* variables on top of the
// defaults. The result is not validated.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env found, using local environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) Config {
	cfg := NewDefaultConfig()

	if v := strings.TrimSpace(getenv(EnvData)); v != "" {
		cfg.DataPath = v
	}
	cfg.SQLitePath = strings.TrimSpace(getenv(EnvSQLite))
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.PageSize = intFromEnv(getenv, EnvPageSize, cfg.PageSize)
	cfg.WindowSize = intFromEnv(getenv, EnvWindow, cfg.WindowSize)

	return cfg
}

func intFromEnv(getenv func(string) string, key string, fallback int) int {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Ignoring non-numeric value", zap.String("env", key), zap.String("value", raw))
		return fallback
	}
	return v
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DataPath, validation.When(c.SQLitePath == "", validation.Required)),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.LogLevel, validation.Required, validation.In(logLevels...)),
		validation.Field(&c.PageSize, validation.Required, validation.Min(1), validation.Max(MaxPageSize)),
		validation.Field(&c.WindowSize, validation.Required, validation.Min(model.MIN_WINDOW_SIZE), validation.Max(model.MAX_WINDOW_SIZE)),
	)
}

// UseSQLite reports whether the dataset comes from SQLite instead of JSON.
func (c *Config) UseSQLite() bool {
	return c.SQLitePath != ""
}
