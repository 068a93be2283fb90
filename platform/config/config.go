// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// AdminConfig provides settings for the admin route guard.
type AdminConfig interface {
	GetAdminJWTSecret() string
}

// GatewayConfig provides settings for the language-model gateway.
type GatewayConfig interface {
	GetLLMProvider() string
	GetLLMAPIKey() string
	GetLLMBaseURL() string
	GetLLMModel() string
	GetGeminiAPIKey() string
	GetGeminiModel() string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetEmailProvider() string
	GetBrevoAPIKey() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// NotifyConfig provides destination addresses for outbound relays.
type NotifyConfig interface {
	GetNotifyToAddress() string
	GetContactToAddress() string
}

// RateLimitConfig provides settings for the public-route rate limiter.
type RateLimitConfig interface {
	GetRedisURL() string
	GetRateLimitWindow() time.Duration
	GetRateLimitMax() int
}

// SchedulerConfig provides settings for the background task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// GeoConfig provides settings for the IP geolocation client.
type GeoConfig interface {
	GetGeoAPIURL() string
	GetGeoCacheSize() int
	GetGeoCacheTTL() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	AdminJWTSecret   string
	LLMProvider      string
	LLMAPIKey        string
	LLMBaseURL       string
	LLMModel         string
	GeminiAPIKey     string
	GeminiModel      string
	EmailEnabled     bool
	EmailProvider    string
	BrevoAPIKey      string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
	NotifyToAddress  string
	ContactToAddress string
	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int
	RateLimitWindow  time.Duration
	RateLimitMax     int
	GeoAPIURL        string
	GeoCacheSize     int
	GeoCacheTTL      time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// AdminConfig implementation
func (c *Config) GetAdminJWTSecret() string { return c.AdminJWTSecret }

// GatewayConfig implementation
func (c *Config) GetLLMProvider() string  { return c.LLMProvider }
func (c *Config) GetLLMAPIKey() string    { return c.LLMAPIKey }
func (c *Config) GetLLMBaseURL() string   { return c.LLMBaseURL }
func (c *Config) GetLLMModel() string     { return c.LLMModel }
func (c *Config) GetGeminiAPIKey() string { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string  { return c.GeminiModel }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetEmailProvider() string    { return c.EmailProvider }
func (c *Config) GetBrevoAPIKey() string      { return c.BrevoAPIKey }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// NotifyConfig implementation
func (c *Config) GetNotifyToAddress() string  { return c.NotifyToAddress }
func (c *Config) GetContactToAddress() string { return c.ContactToAddress }

// RateLimitConfig implementation
func (c *Config) GetRedisURL() string               { return c.RedisURL }
func (c *Config) GetRateLimitWindow() time.Duration { return c.RateLimitWindow }
func (c *Config) GetRateLimitMax() int              { return c.RateLimitMax }

// SchedulerConfig implementation
func (c *Config) GetRedisTLSInsecure() bool  { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }

// GeoConfig implementation
func (c *Config) GetGeoAPIURL() string { return c.GeoAPIURL }
func (c *Config) GetGeoCacheSize() int { return c.GeoCacheSize }
func (c *Config) GetGeoCacheTTL() time.Duration { return c.GeoCacheTTL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	emailProvider := strings.ToLower(getEnv("EMAIL_PROVIDER", "brevo"))
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AdminJWTSecret:   getEnv("ADMIN_JWT_SECRET", ""),
		LLMProvider:      strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		LLMBaseURL:       getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:         getEnv("LLM_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		EmailProvider:    emailProvider,
		BrevoAPIKey:      getEnv("BREVO_API_KEY", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Site Chat"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		NotifyToAddress:  getEnv("NOTIFY_TO_ADDRESS", ""),
		ContactToAddress: getEnv("CONTACT_TO_ADDRESS", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		RateLimitWindow:  mustDuration(getEnv("RATE_LIMIT_WINDOW", "1m")),
		RateLimitMax:     mustInt(getEnv("RATE_LIMIT_MAX", "20")),
		GeoAPIURL:        getEnv("GEO_API_URL", "http://ip-api.com/json"),
		GeoCacheSize:     mustInt(getEnv("GEO_CACHE_SIZE", "1024")),
		GeoCacheTTL:      mustDuration(getEnv("GEO_CACHE_TTL", "1h")),
	}

	switch emailProvider {
	case "brevo", "smtp":
	default:
		return nil, fmt.Errorf("EMAIL_PROVIDER must be brevo or smtp, got %q", emailProvider)
	}
	cfg.EmailEnabled = emailEnabled
	if emailProvider == "brevo" && cfg.BrevoAPIKey == "" {
		cfg.EmailEnabled = false
	}
	if emailProvider == "smtp" && cfg.SMTPHost == "" {
		cfg.EmailEnabled = false
	}

	switch cfg.LLMProvider {
	case "openai":
		if cfg.LLMAPIKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY is required when LLM_PROVIDER is openai")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER is gemini")
		}
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be openai or gemini, got %q", cfg.LLMProvider)
	}

	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.EmailEnabled && cfg.NotifyToAddress == "" {
		return nil, fmt.Errorf("NOTIFY_TO_ADDRESS is required when email is enabled")
	}
	if cfg.AdminJWTSecret == "" && !strings.EqualFold(cfg.Env, "development") {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required outside development")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
