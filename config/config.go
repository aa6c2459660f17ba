package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the resolved application configuration.
type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	Stripe     StripeConfig
	Onboarding OnboardingConfig
	App        AppConfig
	Kafka      KafkaConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string
}

// StripeConfig configures the processor client. APIVersion is the pinned
// version used for ephemeral keys; Currency applies to every payment and
// subscription created by this service.
type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	APIVersion     string
	Currency       string
	RequestTimeout int
}

// OnboardingConfig holds the account-link redirect targets.
type OnboardingConfig struct {
	RefreshURL string
	ReturnURL  string
}

// AppConfig holds client application settings.
type AppConfig struct {
	DeepLink string
}

// KafkaConfig configures event publishing. An empty broker list disables it.
type KafkaConfig struct {
	Brokers []string
}

// MissingEnvError reports required environment variables that were absent
// at startup. It is fatal and raised exactly once, never per-request.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Vars, ", "))
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var missing []string
	required := func(key string) string {
		value, exists := os.LookupEnv(key)
		if !exists || value == "" {
			missing = append(missing, key)
		}
		return value
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			ReadTimeout:     getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Stripe: StripeConfig{
			SecretKey:      required("STRIPE_SECRET_KEY"),
			PublishableKey: required("STRIPE_PUBLISHABLE_KEY"),
			APIVersion:     getEnv("STRIPE_API_VERSION", "2025-02-24.acacia"),
			Currency:       getEnv("CURRENCY", "eur"),
			RequestTimeout: getEnvAsInt("STRIPE_TIMEOUT", 15),
		},
		Onboarding: OnboardingConfig{
			RefreshURL: required("REFRESH_URL"),
			ReturnURL:  required("RETURN_URL"),
		},
		App: AppConfig{
			DeepLink: required("APP_DEEP_LINK"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvAsList("KAFKA_BROKERS"),
		},
	}

	if len(missing) > 0 {
		return nil, &MissingEnvError{Vars: missing}
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns an environment variable parsed as int or a default.
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsList returns a comma-separated environment variable as a slice.
func getEnvAsList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
