package model

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete Hearsay configuration
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	Output   OutputConfig   `yaml:"output"`
}

// LLMConfig configures the extraction and verification model calls
type LLMConfig struct {
	// Provider name: "openai" or "" (disabled; extraction falls back to
	// heuristics and verification is unavailable)
	Provider string `yaml:"provider"`

	// Model name, e.g. "gpt-4o-mini"
	Model string `yaml:"model"`

	// APIKey for the provider (prefer OPENAI_API_KEY env var)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for OpenAI-compatible endpoints (e.g. a local server)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout bounds a single extraction or verification call
	Timeout time.Duration `yaml:"timeout"`

	// MaxTokens limits response length
	MaxTokens int `yaml:"max_tokens"`

	// RequestsPerSecond rate-limits outbound calls (0 = unlimited)
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst for the rate limiter
	Burst int `yaml:"burst"`
}

// PipelineConfig holds the tuning knobs of the streaming claim pipeline.
// The thresholds are empirically tuned, not derived; treat them as
// configuration, not invariants.
type PipelineConfig struct {
	// MatchThreshold is the minimum similarity for a fuzzy match to count
	// as "same claim"
	MatchThreshold float64 `yaml:"match_threshold"`

	// DuplicateThreshold is the stricter similarity above which a repeat
	// of a recently-checked claim is dropped entirely
	DuplicateThreshold float64 `yaml:"duplicate_threshold"`

	// FreshnessTTL is how long a completed verification suppresses
	// re-checking of the same claim
	FreshnessTTL time.Duration `yaml:"freshness_ttl"`

	// ContextWindow bounds the transcript context buffer
	ContextWindow time.Duration `yaml:"context_window"`

	// MinClaimLength filters out malformed candidate claims
	MinClaimLength int `yaml:"min_claim_length"`

	// Debounce delays for the extraction scheduler
	BaseDelay         time.Duration `yaml:"base_delay"`
	SentenceEndDelay  time.Duration `yaml:"sentence_end_delay"`
	TrailingNumDelay  time.Duration `yaml:"trailing_num_delay"`
	ContinuationDelay time.Duration `yaml:"continuation_delay"`
}

// CacheConfig configures the verdict cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// ServerConfig configures the websocket session server
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// MaxMessageBytes bounds a single inbound transcript event
	MaxMessageBytes int64 `yaml:"max_message_bytes"`

	// FragmentsPerSecond rate-limits inbound transcript events per
	// connection (0 = unlimited)
	FragmentsPerSecond float64 `yaml:"fragments_per_second"`
}

// OutputConfig controls logging and CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "",
			Model:             "gpt-4o-mini",
			Timeout:           30 * time.Second,
			MaxTokens:         1000,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Pipeline: PipelineConfig{
			MatchThreshold:     0.78,
			DuplicateThreshold: 0.92,
			FreshnessTTL:       5 * time.Minute,
			ContextWindow:      45 * time.Second,
			MinClaimLength:     8,
			BaseDelay:          220 * time.Millisecond,
			SentenceEndDelay:   120 * time.Millisecond,
			TrailingNumDelay:   450 * time.Millisecond,
			ContinuationDelay:  650 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Server: ServerConfig{
			Addr:               ":8787",
			MaxMessageBytes:    64 * 1024,
			FragmentsPerSecond: 20,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}

// configDoc mirrors Config with durations rendered as strings, so the
// YAML humans see ("30s", "220ms") round-trips through viper.
type configDoc struct {
	LLM struct {
		Provider          string  `yaml:"provider"`
		Model             string  `yaml:"model"`
		BaseURL           string  `yaml:"base_url,omitempty"`
		Timeout           string  `yaml:"timeout"`
		MaxTokens         int     `yaml:"max_tokens"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"llm"`
	Pipeline struct {
		MatchThreshold     float64 `yaml:"match_threshold"`
		DuplicateThreshold float64 `yaml:"duplicate_threshold"`
		FreshnessTTL       string  `yaml:"freshness_ttl"`
		ContextWindow      string  `yaml:"context_window"`
		MinClaimLength     int     `yaml:"min_claim_length"`
		BaseDelay          string  `yaml:"base_delay"`
		SentenceEndDelay   string  `yaml:"sentence_end_delay"`
		TrailingNumDelay   string  `yaml:"trailing_num_delay"`
		ContinuationDelay  string  `yaml:"continuation_delay"`
	} `yaml:"pipeline"`
	Cache struct {
		Enabled bool   `yaml:"enabled"`
		TTL     string `yaml:"ttl"`
	} `yaml:"cache"`
	Server struct {
		Addr               string  `yaml:"addr"`
		MaxMessageBytes    int64   `yaml:"max_message_bytes"`
		FragmentsPerSecond float64 `yaml:"fragments_per_second"`
	} `yaml:"server"`
	Output struct {
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// RenderYAML renders the config as human-readable YAML.
func (c *Config) RenderYAML() ([]byte, error) {
	var doc configDoc

	doc.LLM.Provider = c.LLM.Provider
	doc.LLM.Model = c.LLM.Model
	doc.LLM.BaseURL = c.LLM.BaseURL
	doc.LLM.Timeout = c.LLM.Timeout.String()
	doc.LLM.MaxTokens = c.LLM.MaxTokens
	doc.LLM.RequestsPerSecond = c.LLM.RequestsPerSecond
	doc.LLM.Burst = c.LLM.Burst

	doc.Pipeline.MatchThreshold = c.Pipeline.MatchThreshold
	doc.Pipeline.DuplicateThreshold = c.Pipeline.DuplicateThreshold
	doc.Pipeline.FreshnessTTL = c.Pipeline.FreshnessTTL.String()
	doc.Pipeline.ContextWindow = c.Pipeline.ContextWindow.String()
	doc.Pipeline.MinClaimLength = c.Pipeline.MinClaimLength
	doc.Pipeline.BaseDelay = c.Pipeline.BaseDelay.String()
	doc.Pipeline.SentenceEndDelay = c.Pipeline.SentenceEndDelay.String()
	doc.Pipeline.TrailingNumDelay = c.Pipeline.TrailingNumDelay.String()
	doc.Pipeline.ContinuationDelay = c.Pipeline.ContinuationDelay.String()

	doc.Cache.Enabled = c.Cache.Enabled
	doc.Cache.TTL = c.Cache.TTL.String()

	doc.Server.Addr = c.Server.Addr
	doc.Server.MaxMessageBytes = c.Server.MaxMessageBytes
	doc.Server.FragmentsPerSecond = c.Server.FragmentsPerSecond

	doc.Output.Verbose = c.Output.Verbose

	return yaml.Marshal(&doc)
}
