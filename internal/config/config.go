// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	APIName             string `env:"LNL_API_APP_NAME" default:"LostnLocal API"`
	APIVersion          string `env:"LNL_API_APP_VERSION" default:"1.0.0"`
	ServerPort          string `env:"LNL_API_SERVER_PORT" default:"3008"`
	ServerLogLevel      string `env:"LNL_API_SERVER_LOG_LEVEL" default:"info"`
	PostgresDsn         string `env:"LNL_API_PG_DSN"`
	PostgresLogLevel    string `env:"LNL_API_PG_LOG_LEVEL" default:"warn"`
	RedisHost           string `env:"LNL_API_REDIS_HOST" default:""`
	RedisPort           string `env:"LNL_API_REDIS_PORT" default:"6379"`
	RedisPassword       string `env:"LNL_API_REDIS_PASSWORD" default:""`
	JWTSecret           string `env:"LNL_API_JWT_SECRET"`
	JWTExpiry           string `env:"LNL_API_JWT_EXPIRY" default:"24h"`
	BcryptCost          string `env:"LNL_API_BCRYPT_COST" default:"12"`
	AdminSignupCode     string `env:"LNL_API_ADMIN_SIGNUP_CODE" default:""`
	LoginMaxAttempts    string `env:"LNL_API_LOGIN_MAX_ATTEMPTS" default:"5"`
	LoginWindowSeconds  string `env:"LNL_API_LOGIN_WINDOW_SECONDS" default:"900"`
	SignupMaxAttempts   string `env:"LNL_API_SIGNUP_MAX_ATTEMPTS" default:"20"`
	SignupWindowSeconds string `env:"LNL_API_SIGNUP_WINDOW_SECONDS" default:"300"`
}

var (
	SingleLine string = "--------------------------------------------------"
)

var (
	instance *Config
	once     sync.Once
	err      error
)

// Get returns the application configuration
func Get() (*Config, error) {
	once.Do(func() {
		instance, err = loadConfig()
	})
	return instance, err
}

// loadConfig loads configuration from environment variables
func loadConfig() (*Config, error) {
	// .env is optional, real environments set the variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() error {
	t := reflect.TypeOf(*c)
	v := reflect.ValueOf(c).Elem()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			return fmt.Errorf("missing env tag for field %s", field.Name)
		}

		value := os.Getenv(envTag)
		if value == "" {
			defValue, hasDefault := field.Tag.Lookup("default")
			if !hasDefault {
				return fmt.Errorf("env variable %s is required but not set", envTag)
			}
			value = defValue
		}

		v.Field(i).SetString(value)
	}

	return nil
}

// TokenTTL returns the configured token lifetime
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTExpiry)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// HashCost returns the configured bcrypt cost
func (c *Config) HashCost() int {
	cost, err := strconv.Atoi(c.BcryptCost)
	if err != nil || cost < 4 || cost > 31 {
		return 12
	}
	return cost
}

// LoginPolicy returns the rate limit policy for login attempts
func (c *Config) LoginPolicy() (maxAttempts int, window time.Duration) {
	return intervalPolicy(c.LoginMaxAttempts, c.LoginWindowSeconds, 5, 900)
}

// SignupPolicy returns the rate limit policy for signup attempts
func (c *Config) SignupPolicy() (maxAttempts int, window time.Duration) {
	return intervalPolicy(c.SignupMaxAttempts, c.SignupWindowSeconds, 20, 300)
}

func intervalPolicy(maxStr, windowStr string, defMax, defWindow int) (int, time.Duration) {
	maxAttempts, err := strconv.Atoi(maxStr)
	if err != nil || maxAttempts <= 0 {
		maxAttempts = defMax
	}
	windowSeconds, err := strconv.Atoi(windowStr)
	if err != nil || windowSeconds <= 0 {
		windowSeconds = defWindow
	}
	return maxAttempts, time.Duration(windowSeconds) * time.Second
}

// String returns the configuration as a string
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n--------------------------------------\n")
	sb.WriteString("Configuration:\n")
	sb.WriteString("--------------------------------------\n")

	t := reflect.TypeOf(*c)
	v := reflect.ValueOf(*c)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i).String()

		// Mask sensitive fields
		value = maskSensitiveField(field.Name, value)
		sb.WriteString(fmt.Sprintf("  %s:  %s\n", field.Name, value))
	}

	sb.WriteString("--------------------------------------\n")

	return sb.String()
}

func maskSensitiveField(fieldName, value string) string {
	sensitiveFields := []string{"secret", "dsn", "password", "code"}

	fieldNameLower := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(fieldNameLower, sensitive) {
			return maskValue(value)
		}
	}

	return value
}

func maskValue(value string) string {
	if len(value) <= 3 {
		return strings.Repeat("*", 7)
	}
	return value[:3] + strings.Repeat("*", 7)
}
