package config

import (
	"io/fs"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Receipt   ReceiptConfig
	Printer   PrinterConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	LogLevel string
}

// IsProduction reports whether the service runs in production mode
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type DatabaseConfig struct {
	Driver       string // postgres or memory
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	MaxIdleConns int
	MaxOpenConns int
	Seed         bool
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int // seconds
}

// PerSecond converts the configured window into a token refill rate
func (c RateLimitConfig) PerSecond() float64 {
	if c.Duration <= 0 {
		return float64(c.Requests)
	}
	return float64(c.Requests) / float64(c.Duration)
}

type ReceiptConfig struct {
	// StrictCheckout rejects line changes on checked-out receipts
	StrictCheckout  bool
	PrintOnCheckout bool
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	Width     int
	Timeout   time.Duration
	StoreName string
}

// Load reads .env from the working directory, then the environment
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom reads the given env file, then the environment. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	// Set defaults
	v.SetDefault("APP_NAME", "trademarket-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "trademarket")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_SEED", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("RECEIPT_STRICT_CHECKOUT", false)
	v.SetDefault("PRINT_ON_CHECKOUT", false)
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_WIDTH", 32)
	v.SetDefault("PRINTER_TIMEOUT_SECONDS", 5)
	v.SetDefault("STORE_NAME", "Trade Market")

	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Driver:       v.GetString("DB_DRIVER"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			Name:         v.GetString("DB_NAME"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			Timezone:     v.GetString("DB_TIMEZONE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			Seed:         v.GetBool("DB_SEED"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Receipt: ReceiptConfig{
			StrictCheckout:  v.GetBool("RECEIPT_STRICT_CHECKOUT"),
			PrintOnCheckout: v.GetBool("PRINT_ON_CHECKOUT"),
		},
		Printer: PrinterConfig{
			Type:      v.GetString("PRINTER_TYPE"),
			USBPath:   v.GetString("PRINTER_USB_PATH"),
			Address:   v.GetString("PRINTER_ADDRESS"),
			Width:     v.GetInt("PRINTER_WIDTH"),
			Timeout:   time.Duration(v.GetInt("PRINTER_TIMEOUT_SECONDS")) * time.Second,
			StoreName: v.GetString("STORE_NAME"),
		},
	}

	switch cfg.Database.Driver {
	case "postgres", "memory":
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.RateLimit.Requests <= 0 {
		return nil, errors.New("RATE_LIMIT_REQUESTS must be positive")
	}

	return cfg, nil
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
