package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Training  TrainingConfig  `mapstructure:"training"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	// Enabled switches the rate limiter to the shared Redis store. Off by
	// default: a single instance only needs the in-process window.
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig configures how bearer credentials are resolved to identities.
// Mode "jwt" validates provider-issued HS256 tokens locally; mode "remote"
// asks the identity provider over HTTP on every request.
type AuthConfig struct {
	Mode            string        `mapstructure:"mode"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	ProviderURL     string        `mapstructure:"provider_url"`
	ProviderAPIKey  string        `mapstructure:"provider_api_key"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
}

type LLMConfig struct {
	DefaultProvider string           `mapstructure:"default_provider"`
	MaxTokens       int              `mapstructure:"max_tokens"`
	Temperature     float64          `mapstructure:"temperature"`
	Timeout         time.Duration    `mapstructure:"timeout"`
	OpenRouter      OpenRouterConfig `mapstructure:"openrouter"`
	OpenAI          OpenAIConfig     `mapstructure:"openai"`
	Gemini          GeminiConfig     `mapstructure:"gemini"`
}

type OpenRouterConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// TrainingConfig holds the named domain defaults. The basket amount is a
// placeholder until a real cart source exists; it is injected from here and
// nowhere hard-coded at call sites.
type TrainingConfig struct {
	BasketCents            int64   `mapstructure:"basket_cents"`
	DefaultDiscountPercent float64 `mapstructure:"default_discount_percent"`
	HistoryLimit           int     `mapstructure:"history_limit"`
	RecentSessions         int     `mapstructure:"recent_sessions"`
}

type RateLimitConfig struct {
	Action WindowConfig `mapstructure:"action"`
	Score  WindowConfig `mapstructure:"score"`
	Chat   WindowConfig `mapstructure:"chat"`
}

// WindowConfig is one limit/window pair for a sliding-window limiter.
type WindowConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
		// Config file not found, use defaults and env vars
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "15s")

	// Database
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "simulateur")
	v.SetDefault("database.database", "simulateur")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Auth
	v.SetDefault("auth.mode", "jwt")
	v.SetDefault("auth.provider_timeout", "5s")

	// LLM
	v.SetDefault("llm.default_provider", "openrouter")
	v.SetDefault("llm.max_tokens", 256)
	v.SetDefault("llm.temperature", 0.6)
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.openrouter.model", "mistralai/mistral-7b-instruct:free")

	// Training defaults
	v.SetDefault("training.basket_cents", 6000)
	v.SetDefault("training.default_discount_percent", 15)
	v.SetDefault("training.history_limit", 24)
	v.SetDefault("training.recent_sessions", 50)

	// Rate limits (per caller, sliding window)
	v.SetDefault("rate_limit.action.limit", 30)
	v.SetDefault("rate_limit.action.window", "1m")
	v.SetDefault("rate_limit.score.limit", 10)
	v.SetDefault("rate_limit.score.window", "1m")
	v.SetDefault("rate_limit.chat.limit", 20)
	v.SetDefault("rate_limit.chat.window", "1m")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func bindEnvVars(v *viper.Viper) {
	// Database
	v.BindEnv("database.password", "POSTGRES_PASSWORD")

	// Redis
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Auth
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.provider_url", "AUTH_PROVIDER_URL")
	v.BindEnv("auth.provider_api_key", "AUTH_PROVIDER_API_KEY")

	// LLM API keys
	v.BindEnv("llm.openrouter.api_key", "OPENROUTER_API_KEY")
	v.BindEnv("llm.openrouter.model", "OPENROUTER_MODEL")
	v.BindEnv("llm.openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.gemini.api_key", "GEMINI_API_KEY")
}
