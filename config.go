package lorekeep

import "time"

// MaxNumResults caps how many results a single source may return.
const MaxNumResults = 10

// SourceConfig controls one reference source.
type SourceConfig struct {
	Enabled    bool `json:"enabled"`
	NumResults int  `json:"numResults"`
}

// Config holds the options chosen for the integration.
type Config struct {
	Lexicanum SourceConfig `json:"lexicanum"`
	Fandom    SourceConfig `json:"fandom"`
	Wahapedia SourceConfig `json:"wahapedia"`

	// CacheMaxAge narrows cache reads. Zero accepts any entry the retention
	// sweep has kept.
	CacheMaxAge time.Duration `json:"cacheMaxAge"`
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Lexicanum: SourceConfig{Enabled: true, NumResults: 1},
		Fandom:    SourceConfig{Enabled: true, NumResults: 1},
		Wahapedia: SourceConfig{Enabled: true, NumResults: 3},
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	sources := []struct {
		name string
		cfg  SourceConfig
	}{
		{"lexicanum", c.Lexicanum},
		{"fandom", c.Fandom},
		{"wahapedia", c.Wahapedia},
	}
	for _, s := range sources {
		if !s.cfg.Enabled {
			continue
		}
		if s.cfg.NumResults < 1 || s.cfg.NumResults > MaxNumResults {
			return Errorf(EINVALID, "%s results must be between 1 and %d", s.name, MaxNumResults)
		}
	}
	if c.CacheMaxAge < 0 {
		return Errorf(EINVALID, "cache max age must not be negative")
	}
	return nil
}
