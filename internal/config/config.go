package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API struct {
		BaseURL        string `mapstructure:"base_url"`
		Key            string `mapstructure:"key"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"api"`

	UI struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	} `mapstructure:"ui"`

	Cache struct {
		FreshForMinutes int `mapstructure:"fresh_for_minutes"`
		GCIdleMinutes   int `mapstructure:"gc_idle_minutes"`
	} `mapstructure:"cache"`

	Session struct {
		File   string `mapstructure:"file"`
		Secret string `mapstructure:"secret"`
	} `mapstructure:"session"`
}

// FreshFor returns the cache freshness window as a duration.
func (c *Config) FreshFor() time.Duration {
	return time.Duration(c.Cache.FreshForMinutes) * time.Minute
}

// GCIdle returns how long an unwatched cache entry survives before eviction.
func (c *Config) GCIdle() time.Duration {
	return time.Duration(c.Cache.GCIdleMinutes) * time.Minute
}

// APITimeout returns the transport-level timeout for backend requests.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("ui.port", 8765)
	v.SetDefault("cache.fresh_for_minutes", 5)
	v.SetDefault("cache.gc_idle_minutes", 15)
	v.SetDefault("session.file", ".desk-session")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override API settings from environment variables
	if base := os.Getenv("API_BASE_URL"); base != "" {
		cfg.API.BaseURL = base
	}
	if cfg.API.Key == "${API_KEY}" {
		cfg.API.Key = ""
	}
	if key := os.Getenv("API_KEY"); key != "" {
		cfg.API.Key = key
	}
	if port := os.Getenv("UI_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.UI.Port = n
		}
	}

	// Session file signing secret comes from the environment when not in the file
	if cfg.Session.Secret == "" || cfg.Session.Secret == "${SESSION_SECRET}" {
		cfg.Session.Secret = os.Getenv("SESSION_SECRET")
		if cfg.Session.Secret == "" {
			// Without a stable secret persisted sessions are discarded at
			// startup and the user logs in again, which is safe.
			log.Printf("[Config] SESSION_SECRET not set, persisted sessions will not be restored")
		}
	}

	if cfg.API.Key == "" {
		log.Printf("[Config] API_KEY not set, backend will reject requests")
	}

	return &cfg
}
