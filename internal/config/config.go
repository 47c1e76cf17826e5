// Package config loads application configuration from files and environment.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Quota     QuotaConfig     `mapstructure:"quota"`
	Payment   PaymentConfig   `mapstructure:"payment"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
}

func (c Config) IsDevelopment() bool { return c.Env == "development" }

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Window  time.Duration `mapstructure:"window"`
	Limit   int           `mapstructure:"limit"`
}

type QuotaConfig struct {
	Enabled             bool `mapstructure:"enabled"`
	TenantLocations     int  `mapstructure:"tenant_locations"`
	TenantStorageUnits  int  `mapstructure:"tenant_storage_units"`
	TenantWidgetMonthly int  `mapstructure:"tenant_widget_monthly"`
}

type PaymentConfig struct {
	StripeWebhookSecret string `mapstructure:"stripe_webhook_secret"`
	StripeAPIKey        string `mapstructure:"stripe_api_key"`
}

type AssistantConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Providers     []string      `mapstructure:"providers"` // ordered, first available wins
	OpenAIAPIKey  string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL string        `mapstructure:"openai_base_url"`
	OpenAIModel   string        `mapstructure:"openai_model"`
	OllamaBaseURL string        `mapstructure:"ollama_base_url"`
	OllamaModel   string        `mapstructure:"ollama_model"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type BootstrapConfig struct {
	EnsureDefaultTenant bool   `mapstructure:"ensure_default_tenant"`
	DefaultTenantName   string `mapstructure:"default_tenant_name"`
	DefaultTenantSlug   string `mapstructure:"default_tenant_slug"`
}

type SchedulerConfig struct {
	Interval             time.Duration `mapstructure:"interval"`
	HoldTTL              time.Duration `mapstructure:"hold_ttl"` // unpaid widget holds expire after this
	WebhookRetentionDays int           `mapstructure:"webhook_retention_days"`
}

// Load reads configuration from lugspot.yaml (optional) and LUGSPOT_* env vars.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("lugspot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/lugspot")

	v.SetEnvPrefix("LUGSPOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "lugspot.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.limit", 30)

	v.SetDefault("quota.enabled", true)
	v.SetDefault("quota.tenant_locations", 50)
	v.SetDefault("quota.tenant_storage_units", 500)
	v.SetDefault("quota.tenant_widget_monthly", 100000)

	v.SetDefault("assistant.enabled", false)
	v.SetDefault("assistant.providers", []string{"openai", "ollama", "echo"})
	v.SetDefault("assistant.openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("assistant.openai_model", "gpt-4o-mini")
	v.SetDefault("assistant.ollama_base_url", "http://localhost:11434")
	v.SetDefault("assistant.ollama_model", "llama3")
	v.SetDefault("assistant.timeout", "30s")

	v.SetDefault("bootstrap.ensure_default_tenant", false)
	v.SetDefault("bootstrap.default_tenant_name", "Demo Storage Co")
	v.SetDefault("bootstrap.default_tenant_slug", "demo")

	v.SetDefault("scheduler.interval", "1m")
	v.SetDefault("scheduler.hold_ttl", "30m")
	v.SetDefault("scheduler.webhook_retention_days", 90)
}
