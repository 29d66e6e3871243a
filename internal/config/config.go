package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and passed to every component that needs it.
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	DBPath    string
	CORSAllow []string

	Contact   ContactConfig
	SMTP      SMTPConfig
	Admin     AdminConfig
	Analytics AnalyticsConfig
}

type ContactConfig struct {
	Delivery        string // "log" or "smtp"
	ProcessingDelay time.Duration
	RateLimit       float64 // requests per second per client IP, 0 disables
	RateBurst       int
	FallbackEmail   string
	FallbackPhone   string
	NextSteps       string
	Options         []string
}

type SMTPConfig struct {
	Host    string
	Port    string
	User    string
	Pass    string
	ToEmail string
}

type AdminConfig struct {
	Username string
	Password string
}

type AnalyticsConfig struct {
	MeasurementID string
	Retention     time.Duration
}

// Load reads .env into the environment, then the environment into a Config.
// A missing or unreadable .env is not fatal: envErr reports it for the caller
// to log, and cfg is always returned.
func Load() (cfg *Config, envErr error) {
	envErr = godotenv.Load()
	return FromEnv(), envErr
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	email := getEnv("CONTACT_EMAIL", "souravshetty11@gmail.com")

	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		DBPath:    getEnv("DB_PATH", "portfolio.db"),
		CORSAllow: splitList(getEnv("CORS_ALLOW_ORIGINS", "*"), ","),

		Contact: ContactConfig{
			Delivery:        strings.ToLower(getEnv("CONTACT_DELIVERY", "log")),
			ProcessingDelay: getDuration("CONTACT_PROCESSING_DELAY", time.Second),
			RateLimit:       getFloat("CONTACT_RATE_LIMIT", 0),
			RateBurst:       getInt("CONTACT_RATE_BURST", 5),
			FallbackEmail:   email,
			FallbackPhone:   getEnv("CONTACT_PHONE", "+91 6360642212"),
			NextSteps:       getEnv("CONTACT_NEXT_STEPS", "I will get back to you within 24 hours."),
			Options: splitList(getEnv("CONTACT_OPTIONS",
				"Direct email: "+email+";LinkedIn: Available in contact section;GitHub: https://github.com/psyborgxoxo"), ";"),
		},

		SMTP: SMTPConfig{
			Host:    getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:    getEnv("SMTP_PORT", "587"),
			User:    getEnv("SMTP_USER", ""),
			Pass:    getEnv("SMTP_PASS", ""),
			ToEmail: getEnv("TO_EMAIL", email),
		},

		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},

		Analytics: AnalyticsConfig{
			MeasurementID: getEnv("ANALYTICS_ID", ""),
			Retention:     getDuration("ANALYTICS_RETENTION", 365*24*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
