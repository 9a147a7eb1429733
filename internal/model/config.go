package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	Search      SearchConfig      `yaml:"search"`
	Cache       CacheConfig       `yaml:"cache"`
	Reflection  ReflectionConfig  `yaml:"reflection"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Server      ServerConfig      `yaml:"server"`
}

// SearchConfig configures the retrieval providers
type SearchConfig struct {
	SerperAPIKey    string        `yaml:"serper_api_key"`   // Empty means provider unavailable, not an error
	SerperURL       string        `yaml:"serper_url"`
	DuckDuckGoURL   string        `yaml:"duckduckgo_url"`
	ProviderTimeout time.Duration `yaml:"provider_timeout"` // Per-provider HTTP timeout
	UserAgent       string        `yaml:"user_agent"`
	MaxResults      int           `yaml:"max_results"`      // Cap on the merged evidence set
	CheckRobots     bool          `yaml:"check_robots"`     // Honor robots.txt for the HTML fallback
	RatePerSecond   float64       `yaml:"rate_per_second"`  // Per-domain request rate
	RateBurst       int           `yaml:"rate_burst"`
	HTTPProxy       string        `yaml:"http_proxy"`
	HTTPSProxy      string        `yaml:"https_proxy"`
	NoProxy         string        `yaml:"no_proxy"`
}

// CacheConfig configures the query-result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskDir   string        `yaml:"disk_dir"` // Empty disables the disk layer
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ReflectionConfig bounds the retry loop
type ReflectionConfig struct {
	MaxAttempts      int     `yaml:"max_attempts"`
	ConfidenceTarget float64 `yaml:"confidence_target"`
}

// ConcurrencyConfig sets worker counts
type ConcurrencyConfig struct {
	BatchWorkers  int `yaml:"batch_workers"`  // Parallel verifications in batch mode
	SearchWorkers int `yaml:"search_workers"` // Fan-out for one pass's query set
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Addr   string `yaml:"addr"`
	APIKey string `yaml:"api_key"` // Gates the tool-call endpoint when set
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			SerperURL:       "https://google.serper.dev/search",
			DuckDuckGoURL:   "https://html.duckduckgo.com/html/",
			ProviderTimeout: 2 * time.Second,
			UserAgent:       "ClaimGuard/0.1 (+https://github.com/ppiankov/claimguard)",
			MaxResults:      5,
			CheckRobots:     true,
			RatePerSecond:   2.0,
			RateBurst:       5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Reflection: ReflectionConfig{
			MaxAttempts:      3,
			ConfidenceTarget: 0.60,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:  4,
			SearchWorkers: 4,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
