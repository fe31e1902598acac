package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`

	// Remote booking backend.
	BackendURL            string `mapstructure:"BACKEND_URL"`
	BackendTimeoutSeconds int    `mapstructure:"BACKEND_TIMEOUT_SECONDS"`

	// Client session cookie signing and admin console access.
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	AdminToken    string `mapstructure:"ADMIN_TOKEN"`

	// Redis configuration.
	StoreBackend   string `mapstructure:"STORE_BACKEND"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisFormDB    int    `mapstructure:"REDIS_FORM_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking form behaviour.
	FormStateTTLMinutes int `mapstructure:"FORM_STATE_TTL_MINUTES"`
	SuccessIndicatorMS  int `mapstructure:"SUCCESS_INDICATOR_MS"`

	// Admin notification delivery.
	QueueEnabled bool   `mapstructure:"QUEUE_ENABLED"`
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("BACKEND_URL", "http://localhost:5000")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("STORE_BACKEND", "redis")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_FORM_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("FORM_STATE_TTL_MINUTES", 30)
	viper.SetDefault("SUCCESS_INDICATOR_MS", 2000)
	viper.SetDefault("QUEUE_ENABLED", false)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "booking_notifications")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BackendTimeout is the per-request timeout for calls to the booking backend.
func BackendTimeout() time.Duration {
	if AppConfig.BackendTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(AppConfig.BackendTimeoutSeconds) * time.Second
}

// FormStateTTL is how long an untouched booking draft is kept.
func FormStateTTL() time.Duration {
	if AppConfig.FormStateTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(AppConfig.FormStateTTLMinutes) * time.Minute
}

// SuccessIndicatorTTL is how long the "Submitted!" indicator stays visible.
func SuccessIndicatorTTL() time.Duration {
	if AppConfig.SuccessIndicatorMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(AppConfig.SuccessIndicatorMS) * time.Millisecond
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// KafkaBrokerList splits KAFKA_BROKERS on commas. Empty means disabled.
func KafkaBrokerList() []string {
	return splitList(AppConfig.KafkaBrokers)
}

// AllowedOriginList splits ALLOWED_ORIGINS on commas.
func AllowedOriginList() []string {
	return splitList(AppConfig.AllowedOrigins)
}

// UseMemoryStores reports whether redis-backed stores are replaced by in-process ones.
func UseMemoryStores() bool {
	return AppConfig.StoreBackend == "memory"
}
