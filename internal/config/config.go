package config

import (
	"os"
	"strconv"
	"time"
)

// Config is read once from the environment at startup. Every provider
// setting is optional: missing keys degrade the relevant adapter to its
// deterministic fallback instead of failing startup.
type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	DeepSeekAPIKey  string
	DeepSeekBaseURL string
	DeepSeekModel   string
	GrokAPIKey      string
	GrokBaseURL     string
	GrokModel       string

	ConfidenceTimeoutMillis int
	ConfidenceRetries       int

	DeepfakeEndpoint      string
	DeepfakeAPIKey        string
	DeepfakeTimeoutMillis int
	DeepfakeRetries       int

	AmountPolicyBundle string

	DeepfakeWorkers int

	RateLimitRequests      int
	RateLimitWindowSeconds int
	RateLimitFailClosed    bool
	RateLimitMaxKeys       int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:    addr,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		LogLevel:    envDefault("LOG_LEVEL", "info"),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   envDefault("OPENAI_BASE_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:     envDefault("OPENAI_MODEL", "gpt-4o-mini"),
		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekBaseURL: envDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1/chat/completions"),
		DeepSeekModel:   envDefault("DEEPSEEK_MODEL", "deepseek-chat"),
		GrokAPIKey:      os.Getenv("GROK_API_KEY"),
		GrokBaseURL:     envDefault("GROK_BASE_URL", "https://api.x.ai/v1/chat/completions"),
		GrokModel:       envDefault("GROK_MODEL", "grok-2-latest"),

		ConfidenceTimeoutMillis: envIntDefault("CONFIDENCE_TIMEOUT_MILLIS", 3500),
		ConfidenceRetries:       envIntDefault("CONFIDENCE_RETRIES", 1),

		DeepfakeEndpoint:      os.Getenv("DEEPFAKE_ENDPOINT"),
		DeepfakeAPIKey:        os.Getenv("DEEPFAKE_API_KEY"),
		DeepfakeTimeoutMillis: envIntDefault("DEEPFAKE_TIMEOUT_MILLIS", 3500),
		DeepfakeRetries:       envIntDefault("DEEPFAKE_RETRIES", 1),

		AmountPolicyBundle: os.Getenv("AMOUNT_POLICY_BUNDLE"),

		DeepfakeWorkers: envIntDefault("DEEPFAKE_WORKERS", 8),

		RateLimitRequests:      envIntDefault("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindowSeconds: envIntDefault("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitFailClosed:    envBoolDefault("RATE_LIMIT_FAIL_CLOSED", false),
		RateLimitMaxKeys:       envIntDefault("RATE_LIMIT_MAX_KEYS", 10000),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envIntDefault("REDIS_DB", 0),
	}
}

func (c Config) ConfidenceTimeout() time.Duration {
	return time.Duration(c.ConfidenceTimeoutMillis) * time.Millisecond
}

func (c Config) DeepfakeTimeout() time.Duration {
	return time.Duration(c.DeepfakeTimeoutMillis) * time.Millisecond
}

func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func envBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "No":
		return false
	default:
		return def
	}
}
