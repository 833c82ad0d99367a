package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	FrontendURL   string
	DefaultLocale string
	// SMTP Configuration (Gmail app password)
	SMTPHost         string
	SMTPPort         string
	EmailUser        string
	EmailAppPassword string
	ContactEmailTo   string
	// Clinic details rendered into outgoing emails
	ClinicName    string
	ClinicPhone   string
	ClinicAddress string
	ClinicWebsite string
	// Google Places Configuration
	GooglePlacesAPIKey   string
	GooglePlaceID        string
	GooglePlacesBaseURL  string
	GooglePlacesLanguage string
	GooglePlacesTimeout  time.Duration
	GooglePlacesRPS      float64
	ReviewsCacheTTL      time.Duration
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitGlobalThreshold  int
	RateLimitContactThreshold int
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development
	_ = godotenv.Load()

	emailUser := getEnv("EMAIL_USER", "")

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		FrontendURL:   strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "es"),
		// SMTP Configuration
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		EmailUser:        emailUser,
		EmailAppPassword: getEnv("EMAIL_APP_PASSWORD", ""),
		ContactEmailTo:   getEnv("CONTACT_EMAIL_TO", emailUser),
		// Clinic details
		ClinicName:    getEnv("CLINIC_NAME", "Centro Auditivo"),
		ClinicPhone:   getEnv("CLINIC_PHONE", ""),
		ClinicAddress: getEnv("CLINIC_ADDRESS", ""),
		ClinicWebsite: strings.TrimRight(getEnv("CLINIC_WEBSITE", ""), "/"),
		// Google Places Configuration (keys keep the frontend's public names)
		GooglePlacesAPIKey:   getEnv("NEXT_PUBLIC_GOOGLE_PLACES_API_KEY", ""),
		GooglePlaceID:        getEnv("NEXT_PUBLIC_GOOGLE_PLACE_ID", ""),
		GooglePlacesBaseURL:  strings.TrimRight(getEnv("GOOGLE_PLACES_BASE_URL", "https://places.googleapis.com/v1"), "/"),
		GooglePlacesLanguage: getEnv("GOOGLE_PLACES_LANGUAGE", "es"),
		GooglePlacesTimeout:  getEnvDuration("GOOGLE_PLACES_TIMEOUT", 10*time.Second),
		GooglePlacesRPS:      getEnvFloat("GOOGLE_PLACES_RPS", 5),
		ReviewsCacheTTL:      getEnvDuration("REVIEWS_CACHE_TTL", 0), // 0 = always fetch upstream
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
	}

	if cfg.EmailUser == "" || cfg.EmailAppPassword == "" {
		log.Println("WARNING: EMAIL_USER/EMAIL_APP_PASSWORD missing. Contact form will be unavailable.")
	}

	if cfg.GooglePlacesAPIKey == "" || cfg.GooglePlaceID == "" {
		log.Println("WARNING: Google Places credentials missing. Reviews endpoint will report fallbackToManual.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting and review cache will use in-memory fallback.")
	}

	return cfg, nil
}

// MailConfigured reports whether both mail credentials are present.
func (c *Config) MailConfigured() bool {
	return c.EmailUser != "" && c.EmailAppPassword != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("30s", "5m") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
