package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string
	Addr   string

	// Process-wide secrets and provider settings, loaded once at startup
	// and injected explicitly.
	JWTSecret          string
	ExchangeRateAPIKey string
	ExchangeRateURL    string
	NbpURL             string
	RateCacheTTL       time.Duration
	GoldCacheTTL       time.Duration
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvMinutes(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			return time.Duration(m) * time.Minute
		}
	}
	return def
}

func New() Config {
	return Config{
		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASS", ""),
		DBHost: getenv("DB_HOST", "127.0.0.1"),
		DBPort: getenv("DB_PORT", "3306"),
		DBName: getenv("DB_NAME", "finance_manager"),
		Addr:   getenv("ADDR", ":8080"),

		JWTSecret:          getenv("JWT_SECRET", ""),
		ExchangeRateAPIKey: getenv("EXCHANGE_RATE_API_KEY", ""),
		ExchangeRateURL:    getenv("EXCHANGE_RATE_API_URL", "https://v6.exchangerate-api.com"),
		NbpURL:             getenv("NBP_API_URL", "https://api.nbp.pl/api"),
		RateCacheTTL:       getenvMinutes("RATE_CACHE_MINUTES", 5*time.Minute),
		GoldCacheTTL:       getenvMinutes("GOLD_CACHE_MINUTES", time.Hour),
	}
}

func (c Config) MySQLDSN() string {
	if dsn := os.Getenv("READ_DSN"); dsn != "" {
		return dsn
	}
	auth := c.DBUser
	if c.DBPass != "" {
		auth += ":" + c.DBPass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4,utf8&loc=Local", auth, c.DBHost, c.DBPort, c.DBName)
}
