// Package config handles configuration loading for TickerSense.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Scorer   ScorerConfig   `mapstructure:"scorer"   yaml:"scorer"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// AnalysisConfig holds the fetch-and-analyze pipeline knobs.
type AnalysisConfig struct {
	MinArticles       int       `mapstructure:"min_articles"       yaml:"min_articles"`
	TargetArticles    int       `mapstructure:"target_articles"    yaml:"target_articles"`
	MinRelevance      float64   `mapstructure:"min_relevance"      yaml:"min_relevance"`
	RelevanceSchedule []float64 `mapstructure:"relevance_schedule" yaml:"relevance_schedule"` // escalation thresholds, highest first
	CacheTTL          int       `mapstructure:"cache_ttl"          yaml:"cache_ttl"`          // seconds
}

// ScorerConfig holds the external semantic scorer (LLM) configuration.
// When no API key is configured the engine uses the local lexicon fallback.
type ScorerConfig struct {
	Provider    string  `mapstructure:"provider"     yaml:"provider"` // "openai" or "ollama"
	APIKey      string  `mapstructure:"api_key"      yaml:"api_key"`
	BaseURL     string  `mapstructure:"base_url"     yaml:"base_url"`
	Model       string  `mapstructure:"model"        yaml:"model"`
	Temperature float64 `mapstructure:"temperature"  yaml:"temperature"`
	TimeoutSec  int     `mapstructure:"timeout_sec"  yaml:"timeout_sec"`
	MaxArticles int     `mapstructure:"max_articles" yaml:"max_articles"` // cap sent to the scorer
}

// NewsConfig holds article source configuration.
type NewsConfig struct {
	RSSFeeds []RSSFeed `mapstructure:"rss_feeds" yaml:"rss_feeds"`
}

// RSSFeed is a single configured RSS source.
type RSSFeed struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url"  yaml:"url"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string   `mapstructure:"level"   yaml:"level"` // "debug", "info", "warn", "error"
	Outputs []string `mapstructure:"outputs" yaml:"outputs"`
	File    string   `mapstructure:"file"    yaml:"file"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.tickersense/config.yaml (home directory)
//  3. /etc/tickersense/config.yaml (system)
//
// Environment variables override config file values.
// Format: TICKERSENSE_<SECTION>_<KEY>, e.g., TICKERSENSE_SCORER_API_KEY
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".tickersense"))
	v.AddConfigPath("/etc/tickersense")

	v.SetEnvPrefix("TICKERSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, fall back to defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// Default returns the built-in defaults without consulting files or
// environment variables.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static and always unmarshal cleanly.
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return &cfg
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("TICKERSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Analysis defaults
	v.SetDefault("analysis.min_articles", 3)
	v.SetDefault("analysis.target_articles", 5)
	v.SetDefault("analysis.min_relevance", 0.55)
	v.SetDefault("analysis.relevance_schedule", []float64{0.55, 0.45, 0.35})
	v.SetDefault("analysis.cache_ttl", 600) // 10 minutes

	// Scorer defaults
	v.SetDefault("scorer.provider", "openai")
	v.SetDefault("scorer.model", "gpt-4o-mini")
	v.SetDefault("scorer.temperature", 0.1)
	v.SetDefault("scorer.timeout_sec", 30)
	v.SetDefault("scorer.max_articles", 15)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.outputs", []string{"console"})
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("TICKERSENSE_SCORER_API_KEY"); key != "" {
		cfg.Scorer.APIKey = key
	}
	if url := os.Getenv("TICKERSENSE_SCORER_BASE_URL"); url != "" {
		cfg.Scorer.BaseURL = url
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
