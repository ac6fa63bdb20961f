package wiki

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-wiki/internal/cache"
)

func newTestModule(t *testing.T, files map[string]string, opts ...Option) *Module {
	t.Helper()

	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	cfg := DefaultConfig()
	cfg.ContentDir = root
	cfg.Cache.Dir = t.TempDir()

	module, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentDir = ""

	if _, err := New(cfg); err == nil {
		t.Fatalf("expected validation error for empty content dir")
	}

	cfg = DefaultConfig()
	cfg.ContentDir = t.TempDir()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = ""
	if _, err := New(cfg); !errors.Is(err, ErrCacheDirRequired) {
		t.Fatalf("expected ErrCacheDirRequired, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.ContentDir = t.TempDir()
	cfg.Cache.Dir = t.TempDir()
	cfg.Markdown.Strategy = "bogus"
	if _, err := New(cfg); !errors.Is(err, ErrRendererStrategyUnknown) {
		t.Fatalf("expected ErrRendererStrategyUnknown, got %v", err)
	}
}

func TestModuleEndToEnd(t *testing.T) {
	module := newTestModule(t, map[string]string{
		"index.md":      "# Welcome\n\nStart here.",
		"docs/guide.md": "# User Guide\n\nThe walrus appears once.",
	})

	repo := module.Content()

	if title := repo.GetPageTitle(""); title != "Welcome" {
		t.Fatalf("home title = %q, want Welcome", title)
	}

	html, err := repo.GetPageContent("")
	if err != nil {
		t.Fatalf("GetPageContent: %v", err)
	}
	if !strings.Contains(html, `<h1 id="welcome">Welcome</h1>`) {
		t.Fatalf("expected anchored home heading, got %q", html)
	}

	nav, err := repo.GetNavigation()
	if err != nil {
		t.Fatalf("GetNavigation: %v", err)
	}
	if len(nav) != 1 || nav[0].Path != "docs" {
		t.Fatalf("unexpected navigation: %#v", nav)
	}

	results, err := repo.Search("walrus")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "docs/guide" {
		t.Fatalf("unexpected search results: %#v", results)
	}

	if _, err := repo.GetPageContent("missing"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestModuleSearchHandler(t *testing.T) {
	module := newTestModule(t, map[string]string{
		"page.md": "# Page\n\nA heron waded by.",
	})

	mux := http.NewServeMux()
	module.RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=heron", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Total   int  `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Total != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestModuleCacheOperations(t *testing.T) {
	module := newTestModule(t, map[string]string{"index.md": "# Home"})

	if !module.CacheEnabled() {
		t.Fatalf("expected cache enabled by default config")
	}

	if _, err := module.Content().GetPageContent(""); err != nil {
		t.Fatalf("GetPageContent: %v", err)
	}

	stats := module.CacheStats()
	if stats.Total == 0 {
		t.Fatalf("expected cached entries, got %#v", stats)
	}

	if cleared := module.ClearCache(); cleared == 0 {
		t.Fatalf("expected entries cleared")
	}
	if stats := module.CacheStats(); stats.Total != 0 {
		t.Fatalf("expected empty cache after clear, got %#v", stats)
	}
}

func TestModuleCacheDisabled(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.md"), []byte("# Home"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := DefaultConfig()
	cfg.ContentDir = root
	cfg.Cache.Enabled = false
	cfg.Cache.Dir = ""

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if module.CacheEnabled() {
		t.Fatalf("expected cache disabled")
	}
	if _, err := module.Content().GetPageContent(""); err != nil {
		t.Fatalf("expected content without cache, got %v", err)
	}
	if got := module.MaybeCleanupCache(); got != 0 {
		t.Fatalf("expected no-op cleanup, got %d", got)
	}
}

func TestModuleWithMemoryStore(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.md"), []byte("# Home"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := DefaultConfig()
	cfg.ContentDir = root
	cfg.Cache.Dir = "ignored-when-store-injected"

	module, err := New(cfg, WithCacheStore(cache.NewMemoryStore()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := module.Content().GetPageContent(""); err != nil {
		t.Fatalf("GetPageContent: %v", err)
	}
	if stats := module.CacheStats(); stats.Total == 0 {
		t.Fatalf("expected injected store to hold entries, got %#v", stats)
	}
}

func TestModuleFallbackStrategy(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.md"), []byte("# Home"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := DefaultConfig()
	cfg.ContentDir = root
	cfg.Cache.Enabled = false
	cfg.Markdown.Strategy = StrategyFallback

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if info := module.RendererInfo(); info.Name != "fallback" {
		t.Fatalf("renderer info = %q, want fallback", info.Name)
	}
}

func TestModuleWithLoggingEnabled(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.md"), []byte("# Welcome\n\nA kestrel hovered."), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := DefaultConfig()
	cfg.ContentDir = root
	cfg.Cache.Dir = t.TempDir()
	cfg.Logging.Enabled = true
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html, err := module.Content().GetPageContent("")
	if err != nil {
		t.Fatalf("GetPageContent: %v", err)
	}
	if !strings.Contains(html, `<h1 id="welcome">Welcome</h1>`) {
		t.Fatalf("expected rendered home page, got %q", html)
	}

	results, err := module.Content().Search("kestrel")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("unexpected search results: %#v", results)
	}
}

func TestModuleRejectsBadLoggingFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentDir = t.TempDir()
	cfg.Cache.Dir = t.TempDir()
	cfg.Logging.Enabled = true
	cfg.Logging.Format = "xml"

	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unsupported logging format")
	}
}
