package wiki

import "github.com/goliatone/go-wiki/internal/runtimeconfig"

// Config aggregates every setting the wiki module consumes.
type Config = runtimeconfig.Config

// CacheConfig captures cache toggles and per-category TTLs.
type CacheConfig = runtimeconfig.CacheConfig

// SearchConfig bounds full-text search output.
type SearchConfig = runtimeconfig.SearchConfig

// MarkdownConfig selects the renderer strategy and engine extensions.
type MarkdownConfig = runtimeconfig.MarkdownConfig

// ContentConfig captures the trust boundary around the content root.
type ContentConfig = runtimeconfig.ContentConfig

// LoggingConfig captures provider-specific logging options.
type LoggingConfig = runtimeconfig.LoggingConfig

// Renderer strategy names accepted by MarkdownConfig.Strategy.
const (
	StrategyFull     = runtimeconfig.StrategyFull
	StrategyFallback = runtimeconfig.StrategyFallback
)

// Configuration sentinels surfaced by New.
var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrCacheDirRequired        = runtimeconfig.ErrCacheDirRequired
	ErrRendererStrategyUnknown = runtimeconfig.ErrRendererStrategyUnknown
)

// DefaultConfig returns the settings of the original deployment: caching
// on with hourly default TTL, 50 search results, 200-character snippets.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
