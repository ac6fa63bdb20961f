// Package wiki turns a directory tree of markdown files into a browsable
// wiki: rendered pages, a navigation tree mirroring the directory layout,
// breadcrumbs, tables of contents, and full-text search, all backed by a
// TTL file cache with modification-time invalidation.
package wiki

import (
	nethttp "net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-wiki/internal/cache"
	"github.com/goliatone/go-wiki/internal/content"
	wikihttp "github.com/goliatone/go-wiki/internal/http"
	"github.com/goliatone/go-wiki/internal/logging"
	"github.com/goliatone/go-wiki/internal/logging/gologger"
	"github.com/goliatone/go-wiki/internal/markdown"
	"github.com/goliatone/go-wiki/pkg/interfaces"
)

// Repository exports the content repository contract for consumers of the
// wiki package.
type Repository = content.Repository

// Renderer exports the markdown renderer.
type Renderer = markdown.Renderer

// ErrPageNotFound reports a page path that resolved to no valid file.
var ErrPageNotFound = content.ErrPageNotFound

// Option overrides a constructed dependency before wiring completes.
type Option func(*Module)

// WithLoggerProvider supplies an external logger provider instead of the
// one built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithCacheStore substitutes the cache backing store; useful for tests and
// for hosts that want an in-memory cache.
func WithCacheStore(store interfaces.CacheStore) Option {
	return func(m *Module) {
		m.store = store
	}
}

// WithEngine injects a markdown engine. The renderer still falls back to
// the self-contained parser when the engine fails.
func WithEngine(engine interfaces.MarkdownEngine) Option {
	return func(m *Module) {
		m.engine = engine
	}
}

// Module is the top level wiki runtime facade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	store    interfaces.CacheStore
	engine   interfaces.MarkdownEngine

	logger    interfaces.Logger
	cache     *cache.Cache
	renderer  *markdown.Renderer
	repo      *content.Repository
	searchAPI *wikihttp.SearchAPI
}

// New validates cfg and wires the module. Failures are configuration
// errors; once New succeeds, every operation degrades gracefully instead
// of failing (missing pages report absence, cache errors fall back to
// recomputation).
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid wiki configuration")
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil && cfg.Logging.Enabled {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid wiki logging configuration")
		}
		m.provider = provider
	}
	m.logger = logging.ModuleLogger(m.provider, "")

	if m.store == nil && cfg.Cache.Enabled {
		store, err := cache.NewFileStore(cfg.Cache.Dir)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "create wiki cache store")
		}
		m.store = store
	}
	m.cache = cache.New(cache.Config{
		Store:      m.store,
		DefaultTTL: cfg.Cache.DefaultTTL,
		Logger:     logging.CacheLogger(m.provider),
	})

	strategy := cfg.Markdown.Strategy
	if m.engine == nil && strategy != StrategyFallback {
		m.engine = markdown.NewGoldmarkEngine(interfaces.EngineOptions{
			Extensions: cfg.Markdown.Extensions,
			HardWraps:  cfg.Markdown.HardWraps,
			Unsafe:     cfg.Markdown.Unsafe,
		})
	}
	m.renderer = markdown.NewRenderer(markdown.RendererConfig{
		Strategy: strategy,
		Engine:   m.engine,
		Logger:   logging.MarkdownLogger(m.provider),
	})

	m.repo = content.NewRepository(content.Config{
		ContentDir:        cfg.ContentDir,
		Renderer:          m.renderer,
		Cache:             m.cache,
		AllowedExtensions: cfg.Content.AllowedExtensions,
		ContentTTL:        cfg.Cache.ContentTTL,
		NavigationTTL:     cfg.Cache.NavigationTTL,
		SearchTTL:         cfg.Cache.SearchTTL,
		MaxSearchResults:  cfg.Search.MaxResults,
		SnippetLength:     cfg.Search.SnippetLength,
		Logger:            logging.ContentLogger(m.provider),
	})

	m.searchAPI = wikihttp.NewSearchAPI(wikihttp.SearchAPIConfig{
		Repository: m.repo,
		MaxResults: cfg.Search.APIMaxResults,
		Logger:     logging.SearchLogger(m.provider),
	})

	return m, nil
}

// Content returns the content repository.
func (m *Module) Content() *Repository {
	return m.repo
}

// Renderer returns the markdown renderer.
func (m *Module) Renderer() *Renderer {
	return m.renderer
}

// RendererInfo reports which rendering strategy is active.
func (m *Module) RendererInfo() interfaces.RendererInfo {
	return m.renderer.Info()
}

// CacheEnabled reports whether a backing cache store is wired.
func (m *Module) CacheEnabled() bool {
	return m.cache != nil
}

// CacheStats summarises the cache store contents.
func (m *Module) CacheStats() interfaces.CacheStats {
	return m.cache.Stats()
}

// ClearCache removes every cache entry and returns the count deleted.
func (m *Module) ClearCache() int {
	return m.cache.Clear()
}

// CleanupCache removes expired cache entries and returns the count deleted.
func (m *Module) CleanupCache() int {
	return m.cache.Cleanup()
}

// MaybeCleanupCache runs an expiry sweep with the configured per-request
// probability. Callers invoke it on request paths; nothing is scheduled.
func (m *Module) MaybeCleanupCache() int {
	return m.cache.MaybeCleanup(m.cfg.Cache.CleanupProbability)
}

// SearchHandler returns the live-search JSON endpoint.
func (m *Module) SearchHandler() nethttp.HandlerFunc {
	return m.searchAPI.HandleSearch
}

// RegisterRoutes mounts the module's HTTP endpoints on mux.
func (m *Module) RegisterRoutes(mux *nethttp.ServeMux) {
	m.searchAPI.Register(mux)
}
