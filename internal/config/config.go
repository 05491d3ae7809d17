package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	AI      AI      `mapstructure:"ai"`
	Cache   Cache   `mapstructure:"cache"`
	Server  Server  `mapstructure:"server"`
	Context Context `mapstructure:"context"`
	Logging Logging `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Name  string `mapstructure:"name"`
	Debug bool   `mapstructure:"debug"`
}

// AI holds generative model configuration
type AI struct {
	Provider string         `mapstructure:"provider"`
	Gemini   ProviderConfig `mapstructure:"gemini"`
	OpenAI   ProviderConfig `mapstructure:"openai"`
}

// ProviderConfig holds the settings shared by every model provider
type ProviderConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Timeout     string  `mapstructure:"timeout"`
	Temperature float32 `mapstructure:"temperature"`
}

// Active returns the configuration of the selected provider
func (a AI) Active() ProviderConfig {
	if strings.EqualFold(a.Provider, "openai") {
		return a.OpenAI
	}
	return a.Gemini
}

// Cache holds response cache configuration
type Cache struct {
	Backend string      `mapstructure:"backend"`
	TTL     string      `mapstructure:"ttl"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// Server holds HTTP server configuration
type Server struct {
	Host            string     `mapstructure:"host"`
	Port            int        `mapstructure:"port"`
	ReadTimeout     string     `mapstructure:"read_timeout"`
	WriteTimeout    string     `mapstructure:"write_timeout"`
	ShutdownTimeout string     `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig `mapstructure:"cors"`
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Context holds the values of the static context provider
type Context struct {
	Location  string   `mapstructure:"location"`
	Weather   string   `mapstructure:"weather"`
	Culture   string   `mapstructure:"culture"`
	Interests []string `mapstructure:"interests"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".cappy")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.name", "cappy")
	viper.SetDefault("app.debug", false)

	// AI defaults
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.0-flash")
	viper.SetDefault("ai.gemini.timeout", "30s")
	viper.SetDefault("ai.gemini.temperature", 0.3)
	viper.SetDefault("ai.openai.model", "gpt-4o-mini")
	viper.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("ai.openai.timeout", "30s")
	viper.SetDefault("ai.openai.temperature", 0.3)

	// Cache defaults
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttl", "30m")
	viper.SetDefault("cache.redis.addr", "localhost:6379")
	viper.SetDefault("cache.redis.db", 0)
	viper.SetDefault("cache.redis.prefix", "cappy:ideas:")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "30s")
	viper.SetDefault("server.cors.enabled", true)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	// Context defaults
	viper.SetDefault("context.location", "São Paulo, SP")
	viper.SetDefault("context.weather", "Sunny")
	viper.SetDefault("context.culture", "paulista")
	viper.SetDefault("context.interests", []string{"technology", "music", "travel"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
	})

	bindEnvKeys("ai.openai.api_key", []string{
		"OPENAI_API_KEY",
	})

	bindEnvKeys("ai.provider", []string{
		"CAPPY_AI_PROVIDER",
	})

	bindEnvKeys("cache.backend", []string{
		"CAPPY_CACHE_BACKEND",
	})

	bindEnvKeys("cache.redis.addr", []string{
		"REDIS_ADDR",
		"REDIS_HOST",
	})

	bindEnvKeys("cache.redis.password", []string{
		"REDIS_PASSWORD",
	})

	bindEnvKeys("server.port", []string{
		"CAPPY_PORT",
		"PORT",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"CAPPY_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig normalizes values and validates durations
func postProcessConfig(config *Config) error {
	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	config.Cache.Backend = strings.ToLower(strings.TrimSpace(config.Cache.Backend))
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	if config.App.Debug {
		config.Logging.Level = "debug"
	}

	durations := map[string]string{
		"ai.gemini.timeout":       config.AI.Gemini.Timeout,
		"ai.openai.timeout":       config.AI.OpenAI.Timeout,
		"cache.ttl":               config.Cache.TTL,
		"server.read_timeout":     config.Server.ReadTimeout,
		"server.write_timeout":    config.Server.WriteTimeout,
		"server.shutdown_timeout": config.Server.ShutdownTimeout,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// validateConfig checks that enumerated values are supported. A missing API
// key is not an error: generation is then disabled and the catalog is used.
func validateConfig(config *Config) error {
	var errors []string

	switch config.AI.Provider {
	case "gemini", "openai":
	default:
		errors = append(errors, fmt.Sprintf("Unknown AI provider: %s. Supported: gemini, openai", config.AI.Provider))
	}

	switch config.Cache.Backend {
	case "memory":
	case "redis":
		if config.Cache.Redis.Addr == "" {
			errors = append(errors, "Redis cache requires an address. Set REDIS_ADDR or cache.redis.addr")
		}
	default:
		errors = append(errors, fmt.Sprintf("Unknown cache backend: %s. Supported: memory, redis", config.Cache.Backend))
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("Invalid server port: %d", config.Server.Port))
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("Unknown log level: %s. Supported: debug, info, warn, error", config.Logging.Level))
	}

	switch config.Logging.Format {
	case "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("Unknown log format: %s. Supported: json, text", config.Logging.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Duration parses a validated duration string, returning fallback when it is
// empty or unparsable.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// Convenience getters for commonly used configuration values
func GetAI() AI           { return Get().AI }
func GetCache() Cache     { return Get().Cache }
func GetServer() Server   { return Get().Server }
func GetContext() Context { return Get().Context }
func GetLogging() Logging { return Get().Logging }

// HasAPIKey reports whether the selected provider has a usable API key
func (a AI) HasAPIKey() bool {
	return isValidAPIKey(a.Active().APIKey)
}

// isValidAPIKey checks if an API key is valid (not empty and not a placeholder)
func isValidAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}

	placeholders := []string{
		"your-api-key", "your-gemini-key", "your-openai-key",
		"YOUR_API_KEY", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}

	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			return false
		}
	}

	return true
}

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
