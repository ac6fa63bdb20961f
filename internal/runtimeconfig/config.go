package runtimeconfig

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrContentDirRequired indicates the content root was left empty.
var ErrContentDirRequired = errors.New("wiki config: content directory is required")

// ErrCacheDirRequired indicates cache was enabled without a cache directory.
var ErrCacheDirRequired = errors.New("wiki config: cache directory is required when cache is enabled")

// ErrRendererStrategyUnknown indicates an unsupported renderer strategy name.
var ErrRendererStrategyUnknown = errors.New("wiki config: renderer strategy is invalid")

// Renderer strategy names accepted by MarkdownConfig.Strategy. The full
// strategy delegates to the injected engine and falls back per call; the
// fallback strategy never touches the engine.
const (
	StrategyFull     = "full"
	StrategyFallback = "fallback"
)

// Config aggregates the settings consumed by the wiki module. Fields
// intentionally use simple types so host applications can extend them later.
type Config struct {
	// ContentDir is the root directory holding the markdown page tree.
	ContentDir string
	Cache      CacheConfig
	Search     SearchConfig
	Markdown   MarkdownConfig
	Content    ContentConfig
	Logging    LoggingConfig
}

// CacheConfig captures cache behaviour toggles and per-category TTLs.
type CacheConfig struct {
	Enabled bool
	// Dir is where cache entry files live; one file per entry.
	Dir        string
	DefaultTTL time.Duration
	// ContentTTL applies to rendered page HTML.
	ContentTTL time.Duration
	// NavigationTTL applies to the navigation tree.
	NavigationTTL time.Duration
	// SearchTTL applies to cached search result lists.
	SearchTTL time.Duration
	// CleanupProbability is the per-request chance (0..1) that a caller
	// sweeps expired entries. Sweeping is best-effort, never scheduled.
	CleanupProbability float64
}

// SearchConfig bounds full-text search output.
type SearchConfig struct {
	MaxResults    int
	SnippetLength int
	// APIMaxResults caps the live-search JSON endpoint, which historically
	// returns fewer rows than the full search page.
	APIMaxResults int
}

// MarkdownConfig selects the renderer strategy and engine extensions.
type MarkdownConfig struct {
	// Strategy is resolved once by the composition root: StrategyFull uses
	// the injected engine with per-call fallback, StrategyFallback pins the
	// self-contained parser.
	Strategy   string
	Extensions []string
	HardWraps  bool
	Unsafe     bool
}

// ContentConfig captures the trust boundary around the content root.
type ContentConfig struct {
	// AllowedExtensions is the file extension allow-list (no dot).
	AllowedExtensions []string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig mirrors the constants of the original deployment: one hour
// default TTL, 30 minutes for content, two hours for navigation, ten minutes
// for search, 50 results, 200-character snippets.
func DefaultConfig() Config {
	return Config{
		ContentDir: "content",
		Cache: CacheConfig{
			Enabled:            true,
			Dir:                "cache",
			DefaultTTL:         time.Hour,
			ContentTTL:         30 * time.Minute,
			NavigationTTL:      2 * time.Hour,
			SearchTTL:          10 * time.Minute,
			CleanupProbability: 0.05,
		},
		Search: SearchConfig{
			MaxResults:    50,
			SnippetLength: 200,
			APIMaxResults: 20,
		},
		Markdown: MarkdownConfig{
			Strategy: StrategyFull,
		},
		Content: ContentConfig{
			AllowedExtensions: []string{"md"},
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Format:  "json",
		},
	}
}

// Validate checks cross-field consistency before the module boots.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.ContentDir, validation.Required.Error(ErrContentDirRequired.Error())),
	); err != nil {
		return err
	}

	if c.Cache.Enabled && c.Cache.Dir == "" {
		return ErrCacheDirRequired
	}

	if err := validation.ValidateStruct(&c.Search,
		validation.Field(&c.Search.MaxResults, validation.Required, validation.Min(1)),
		validation.Field(&c.Search.SnippetLength, validation.Required, validation.Min(1)),
		validation.Field(&c.Search.APIMaxResults, validation.Required, validation.Min(1)),
	); err != nil {
		return err
	}

	switch c.Markdown.Strategy {
	case "", StrategyFull, StrategyFallback:
	default:
		return ErrRendererStrategyUnknown
	}

	return nil
}
