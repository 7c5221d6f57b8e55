package app

import (
	"os"
	"strconv"
	"time"

	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/pkg/jwtx"
)

type Config struct {
	Issuer        string // Optional: issuer claim for tokens (default: quizapi)
	AccessSecret  string // Required: HMAC secret for access tokens
	RefreshSecret string // Required: HMAC secret for refresh tokens, must differ from AccessSecret

	AccessTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL time.Duration // Optional: refresh token lifetime (default: 7d)
	OTPTTL     time.Duration // Optional: reset code lifetime (default: 10m)

	DatabaseFile string // Optional: path to SQLite database file (default: ./quizapi.db)

	SMTPHost     string // Optional: SMTP server for reset emails; mail is logged when unset
	SMTPPort     int    // Optional: SMTP port (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string // Optional: From address (default: no-reply@quizapi.local)

	LLMBaseURL string // Optional: OpenAI-compatible endpoint; seed bank is used when unset
	LLMAPIKey  string
	LLMModel   string // Optional: model name (default: gpt-4o-mini)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("QUIZ_ISSUER", "quizapi"),
		AccessSecret:  os.Getenv("QUIZ_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("QUIZ_REFRESH_SECRET"),

		AccessTTL:  getEnvDurationOrDefault("QUIZ_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL: getEnvDurationOrDefault("QUIZ_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		OTPTTL:     getEnvDurationOrDefault("QUIZ_OTP_TTL", service.DefaultOTPTTL),

		DatabaseFile: getEnvOrDefault("QUIZ_DATABASE_FILE", "quizapi.db"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "no-reply@quizapi.local"),

		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
