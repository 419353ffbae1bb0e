package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	RolePolicySoft   = "soft"
	RolePolicyStrict = "strict"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	BaseURL     string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	LogLevel  string
	LogPretty bool

	Workflow  WorkflowConfig
	SMTP      SMTPConfig
	Assistant AssistantConfig
}

// WorkflowConfig holds the tunables of the team and join-request services.
type WorkflowConfig struct {
	StoreTimeout      time.Duration
	ApprovalIncrement int
	RolePolicy        string
	ChatHistoryLimit  int
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type AssistantConfig struct {
	BaseURL      string
	Model        string
	APIKey       string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	MaxRetry     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),

		JWTSecret:       getEnvOrPanic("JWT_SECRET"),
		JWTAccessExpiry: getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getBool("LOG_PRETTY", env != "production"),

		Workflow: WorkflowConfig{
			StoreTimeout:      getDuration("STORE_TIMEOUT", 5*time.Second),
			ApprovalIncrement: getPositiveInt("PULSE_APPROVAL_INCREMENT", 13),
			RolePolicy:        rolePolicy(getEnv("ROLE_POLICY", RolePolicySoft)),
			ChatHistoryLimit:  getInt("CHAT_HISTORY_LIMIT", 100),
		},

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},

		Assistant: AssistantConfig{
			BaseURL:      getEnv("ASSISTANT_BASE_URL", ""),
			Model:        getEnv("ASSISTANT_MODEL", "gemini-2.5-flash"),
			APIKey:       getEnv("ASSISTANT_API_KEY", ""),
			TokenURL:     getEnv("ASSISTANT_TOKEN_URL", ""),
			ClientID:     getEnv("ASSISTANT_CLIENT_ID", ""),
			ClientSecret: getEnv("ASSISTANT_CLIENT_SECRET", ""),
			Timeout:      getDuration("ASSISTANT_TIMEOUT", 20*time.Second),
			MaxRetry:     getDuration("ASSISTANT_MAX_RETRY", 30*time.Second),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return n
}

// getPositiveInt is getInt that also falls back when the value is zero or negative.
func getPositiveInt(key string, fallback int) int {
	if n := getInt(key, fallback); n > 0 {
		return n
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return b
}

func rolePolicy(v string) string {
	if v == RolePolicyStrict {
		return RolePolicyStrict
	}
	return RolePolicySoft
}
