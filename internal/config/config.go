package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string
	HTTPAddr    string

	// DashboardToken gates mutating endpoints when set. Empty disables the
	// check, which is the expected mode for local development.
	DashboardToken string

	// Roster is the fixed set of advertiser identities tracked by the
	// commission system. Every commission result set contains exactly one
	// entry per roster member.
	Roster []string

	// CollationLocale is a BCP 47 tag used for the final name tie-break in
	// rankings. Empty means the undetermined locale.
	CollationLocale string

	// ExchangeRateURL is an optional live-rate endpoint. The calculator never
	// depends on it being reachable; ExchangeRate is the fallback.
	ExchangeRateURL string
	ExchangeRate    float64

	DailyTTL    time.Duration
	MonthlyTTL  time.Duration
	RankingTTL  time.Duration
	ExchangeTTL time.Duration

	WarmInterval time.Duration

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
}

const defaultExchangeRate = 20.0

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "adboard"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		DashboardToken: strings.TrimSpace(getenv("DASHBOARD_TOKEN", "")),

		Roster:          getenvList("ROSTER", "amber,bella,cindy,doris,emma"),
		CollationLocale: strings.TrimSpace(getenv("COLLATION_LOCALE", "")),

		ExchangeRateURL: strings.TrimSpace(getenv("EXCHANGE_RATE_URL", "")),
		ExchangeRate:    getenvFloat("EXCHANGE_RATE", defaultExchangeRate),

		DailyTTL:    getenvDuration("CACHE_DAILY_TTL", 2*time.Minute),
		MonthlyTTL:  getenvDuration("CACHE_MONTHLY_TTL", 10*time.Minute),
		RankingTTL:  getenvDuration("CACHE_RANKING_TTL", 8*time.Minute),
		ExchangeTTL: getenvDuration("CACHE_EXCHANGE_TTL", time.Hour),

		WarmInterval: getenvDuration("WARM_INTERVAL", time.Minute),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "adboard"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getenvList(key, def string) []string {
	raw := getenv(key, def)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		values = append(values, trimmed)
	}
	return values
}
