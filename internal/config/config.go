package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string

	// Forecast engine settings
	MinHistoryDays         int
	ForecastHorizonDays    int
	AnomalyGrowthThreshold float64
	NewExpenseThreshold    float64
	StatisticalTimeout     time.Duration

	// Alerting
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SenderEmail    string
	DigestSchedule string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBConn:    getEnv("DB_CONN", "host=localhost port=5432 user=finflow password=finflow dbname=finflow sslmode=disable"),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		JWTSecret: getEnv("JWT_SECRET", "secret"),

		MinHistoryDays:         getEnvInt("MIN_HISTORY_DAYS", 90),
		ForecastHorizonDays:    getEnvInt("FORECAST_HORIZON_DAYS", 90),
		AnomalyGrowthThreshold: getEnvFloat("ANOMALY_GROWTH_THRESHOLD", 0.20),
		NewExpenseThreshold:    getEnvFloat("NEW_EXPENSE_THRESHOLD", 1000000),
		StatisticalTimeout:     getEnvDuration("STATISTICAL_TIMEOUT", 10*time.Second),

		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "alerts@finflow.local"),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 7 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.MinHistoryDays < 1 {
		return nil, fmt.Errorf("MIN_HISTORY_DAYS must be positive")
	}
	if cfg.ForecastHorizonDays < 1 {
		return nil, fmt.Errorf("FORECAST_HORIZON_DAYS must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}
