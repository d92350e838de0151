package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	Feed   FeedConfig   `yaml:"feed" mapstructure:"feed"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
}

// FeedConfig configures the syndication fetch
type FeedConfig struct {
	URL           string        `yaml:"url" mapstructure:"url"`
	Items         int           `yaml:"items" mapstructure:"items"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxRedirects  int           `yaml:"max_redirects" mapstructure:"max_redirects"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RatePerSecond float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	Burst         int           `yaml:"burst" mapstructure:"burst"`
	CacheEnabled  bool          `yaml:"cache_enabled" mapstructure:"cache_enabled"`
	CacheTTL      time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// OutputConfig configures console rendering
type OutputConfig struct {
	Verbose     bool   `yaml:"verbose" mapstructure:"verbose"`
	ClearScreen bool   `yaml:"clear_screen" mapstructure:"clear_screen"`
	LocalZone   string `yaml:"local_zone" mapstructure:"local_zone"`
}

// LLMConfig configures the optional commentary provider. Empty Provider
// disables it entirely.
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"`
	Model          string `yaml:"model" mapstructure:"model"`
	APIKey         string `yaml:"-" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Feed: FeedConfig{
			URL:           "https://treasurydirect.gov/NP_WS/debt/feeds/recent",
			Items:         2,
			UserAgent:     "usdebt/0.1 (+https://github.com/wallscreet/us-debt)",
			Timeout:       30 * time.Second,
			MaxRedirects:  3,
			RespectRobots: false,
			RatePerSecond: 0.5,
			Burst:         1,
			CacheEnabled:  true,
			CacheTTL:      10 * time.Minute,
		},
		Output: OutputConfig{
			Verbose:     false,
			ClearScreen: true,
			LocalZone:   "America/New_York",
		},
		LLM: LLMConfig{
			Provider:       "",
			Model:          "gpt-4o-mini",
			MaxTokens:      300,
			TimeoutSeconds: 30,
		},
	}
}
