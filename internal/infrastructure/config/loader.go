package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration from the per-environment yaml file, with
// environment variables taking precedence over file values
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix("WL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	if err := validateSecrets(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}
	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return nil
}

// setDefaults sets default values for non-critical settings
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 10)       // seconds
	v.SetDefault("server.writeTimeout", 10)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 5)  // seconds
	v.SetDefault("server.shutdownTimeout", 15)   // seconds

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 5) // minutes
	v.SetDefault("database.connMaxIdleTime", 5) // minutes
	v.SetDefault("database.queryTimeout", 10)   // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 5) // seconds

	// Redis defaults
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.idempotencyTTL", 10) // minutes

	// Gateway defaults
	v.SetDefault("gateway.provider", "razorpay")
	v.SetDefault("gateway.baseURL", "https://api.razorpay.com")
	v.SetDefault("gateway.timeout", 10) // seconds

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
}

// getEnvironment determines the environment from WL_ENV
func getEnvironment() string {
	env := os.Getenv("WL_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// for connection details and secrets
func processEnvOverrides(v *viper.Viper) {
	if dbHost := os.Getenv("WL_DB_HOST"); dbHost != "" {
		v.Set("database.host", dbHost)
	}
	if dbPort := getEnvInt("WL_DB_PORT", 0); dbPort > 0 {
		v.Set("database.port", dbPort)
	}
	if dbUser := os.Getenv("WL_DB_USERNAME"); dbUser != "" {
		v.Set("database.username", dbUser)
	}
	if dbPass := os.Getenv("WL_DB_PASSWORD"); dbPass != "" {
		v.Set("database.password", dbPass)
	}
	if dbName := os.Getenv("WL_DB_NAME"); dbName != "" {
		v.Set("database.database", dbName)
	}
	if sslMode := os.Getenv("WL_DB_SSL_MODE"); sslMode != "" {
		v.Set("database.sslMode", sslMode)
	}

	if serverHost := os.Getenv("WL_SERVER_HOST"); serverHost != "" {
		v.Set("server.host", serverHost)
	}
	if serverPort := getEnvInt("WL_SERVER_PORT", 0); serverPort > 0 {
		v.Set("server.port", serverPort)
	}

	if redisURL := os.Getenv("WL_REDIS_URL"); redisURL != "" {
		v.Set("redis.url", redisURL)
	}

	if provider := os.Getenv("WL_GATEWAY_PROVIDER"); provider != "" {
		v.Set("gateway.provider", provider)
	}
	if baseURL := os.Getenv("WL_GATEWAY_BASE_URL"); baseURL != "" {
		v.Set("gateway.baseURL", baseURL)
	}
	if keyID := os.Getenv("WL_GATEWAY_KEY_ID"); keyID != "" {
		v.Set("gateway.keyID", keyID)
	}
	if keySecret := os.Getenv("WL_GATEWAY_KEY_SECRET"); keySecret != "" {
		v.Set("gateway.keySecret", keySecret)
	}
	if webhookSecret := os.Getenv("WL_GATEWAY_WEBHOOK_SECRET"); webhookSecret != "" {
		v.Set("gateway.webhookSecret", webhookSecret)
	}

	if logLevel := os.Getenv("WL_LOGGER_LEVEL"); logLevel != "" {
		v.Set("logger.level", logLevel)
	}
}

// getEnvInt gets an environment variable as int with a default
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts raw numeric config values into durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second

	config.Redis.IdempotencyTTL = time.Duration(config.Redis.IdempotencyTTL) * time.Minute
	config.Gateway.Timeout = time.Duration(config.Gateway.Timeout) * time.Second
}

// validateSecrets checks that gateway credentials are present when the real
// gateway is selected
func validateSecrets(config *Config) error {
	if config.Gateway.Provider != "razorpay" {
		return nil
	}
	if config.Gateway.KeyID == "" || config.Gateway.KeySecret == "" {
		return fmt.Errorf("gateway key id and key secret are required (set WL_GATEWAY_KEY_ID / WL_GATEWAY_KEY_SECRET)")
	}
	if config.Gateway.WebhookSecret == "" {
		return fmt.Errorf("gateway webhook secret is required (set WL_GATEWAY_WEBHOOK_SECRET)")
	}
	return nil
}
