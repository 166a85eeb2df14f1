package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// ProviderConfig holds credentials and model names for the LLM backends.
// A backend with an empty API key is treated as not configured.
type ProviderConfig struct {
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
}

// StripeConfig holds the webhook endpoint secret used to verify payment events.
type StripeConfig struct {
	WebhookSecret string
}

// MailConfig holds SMTP settings for outbound notifications.
// An empty Host puts the mailer in simulation mode (logged, not sent).
type MailConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	UseTLS     bool
	FromName   string
	FromEmail  string
	AdminEmail string
}

// QuotaConfig holds free-tier quota settings.
type QuotaConfig struct {
	MaxFreeAnalyses int
	SessionTTLMin   int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	Database  DatabaseConfig
	Providers ProviderConfig
	Stripe    StripeConfig
	Mail      MailConfig
	Quota     QuotaConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Providers: ProviderConfig{
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Stripe: StripeConfig{
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Mail: MailConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvInt("SMTP_PORT", 587),
			Username:   getEnv("SMTP_USERNAME", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			UseTLS:     getEnvBool("SMTP_USE_TLS", true),
			FromName:   getEnv("MAIL_FROM_NAME", "Paper Scanner"),
			FromEmail:  getEnv("MAIL_FROM_EMAIL", ""),
			AdminEmail: getEnv("MAIL_ADMIN_EMAIL", ""),
		},
		Quota: QuotaConfig{
			MaxFreeAnalyses: getEnvInt("MAX_FREE_ANALYSES", 3),
			SessionTTLMin:   getEnvInt("SESSION_TTL_MIN", 720),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
