package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-wiki/internal/cache"
)

// writeTree lays out a content root in a temp directory. Keys are
// slash-separated relative paths.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return root
}

func newTestRepo(t *testing.T, files map[string]string) *Repository {
	t.Helper()
	return NewRepository(Config{ContentDir: writeTree(t, files)})
}

func TestCurrentPath(t *testing.T) {
	repo := newTestRepo(t, nil)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "docs/setup", "docs/setup"},
		{"traversal stripped", "../../etc/passwd", "etc/passwd"},
		{"windows traversal stripped", "..\\..\\secret", "secret"},
		{"dot slash stripped", "./docs/./setup", "docs/setup"},
		{"null bytes removed", "docs\x00/setup", "docs/setup"},
		{"unsafe characters removed", "docs/set up?!", "docs/setup"},
		{"slashes collapsed", "docs//setup", "docs/setup"},
		{"surrounding slashes trimmed", "/docs/setup/", "docs/setup"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := repo.CurrentPath(tc.in); got != tc.want {
				t.Fatalf("CurrentPath(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestGetPageContentHome(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"index.md": "# Welcome\n\nHello there.",
	})

	html, err := repo.GetPageContent("")
	if err != nil {
		t.Fatalf("GetPageContent: %v", err)
	}
	if !strings.Contains(html, `<h1 id="welcome">Welcome</h1>`) {
		t.Fatalf("expected rendered home heading, got %q", html)
	}
}

func TestGetPageContentNested(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"docs/setup.md": "# Setup Guide",
	})

	html, err := repo.GetPageContent("docs/setup")
	if err != nil {
		t.Fatalf("GetPageContent: %v", err)
	}
	if !strings.Contains(html, "Setup Guide") {
		t.Fatalf("expected nested page content, got %q", html)
	}
}

func TestGetPageContentCandidateResolution(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"guides/index.md":         "# Guides Landing",
		"impl/widget/widget.md":   "# Widget",
		"impl/widget/index.md":    "# Widget Index",
		"impl/another/another.md": "# Another",
	})

	// Directory path falls through to its index file.
	html, err := repo.GetPageContent("guides")
	if err != nil {
		t.Fatalf("GetPageContent(guides): %v", err)
	}
	if !strings.Contains(html, "Guides Landing") {
		t.Fatalf("expected index resolution, got %q", html)
	}

	// Repeated-segment candidate wins over the index file.
	html, err = repo.GetPageContent("impl/widget")
	if err != nil {
		t.Fatalf("GetPageContent(impl/widget): %v", err)
	}
	if !strings.Contains(html, "Widget") || strings.Contains(html, "Widget Index") {
		t.Fatalf("expected repeated-segment resolution, got %q", html)
	}

	html, err = repo.GetPageContent("impl/another")
	if err != nil {
		t.Fatalf("GetPageContent(impl/another): %v", err)
	}
	if !strings.Contains(html, "Another") {
		t.Fatalf("expected repeated-segment resolution, got %q", html)
	}
}

func TestGetPageContentMissing(t *testing.T) {
	repo := newTestRepo(t, map[string]string{"index.md": "# Home"})

	if _, err := repo.GetPageContent("no/such/page"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestGetPageContentStripsFrontMatter(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"page.md": "---\ntitle: Hidden\n---\n\n# Visible",
	})

	html, err := repo.GetPageContent("page")
	if err != nil {
		t.Fatalf("GetPageContent: %v", err)
	}
	if strings.Contains(html, "Hidden") {
		t.Fatalf("expected front matter stripped, got %q", html)
	}
	if !strings.Contains(html, "Visible") {
		t.Fatalf("expected body rendered, got %q", html)
	}
}

func TestGetPageContentRejectsSymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.md")
	if err := os.WriteFile(secret, []byte("# Secret"), 0o644); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	root := writeTree(t, map[string]string{"index.md": "# Home"})
	if err := os.Symlink(secret, filepath.Join(root, "leak.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	repo := NewRepository(Config{ContentDir: root})
	if _, err := repo.GetPageContent("leak"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected symlink escape rejected, got %v", err)
	}
}

func TestGetPageContentInvalidatesOnEdit(t *testing.T) {
	root := writeTree(t, map[string]string{"page.md": "# First"})
	repo := NewRepository(Config{
		ContentDir: root,
		Cache:      cache.New(cache.Config{Store: cache.NewMemoryStore(), DefaultTTL: time.Hour}),
	})

	html, err := repo.GetPageContent("page")
	if err != nil {
		t.Fatalf("GetPageContent: %v", err)
	}
	if !strings.Contains(html, "First") {
		t.Fatalf("expected first revision, got %q", html)
	}

	path := filepath.Join(root, "page.md")
	if err := os.WriteFile(path, []byte("# Second"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	html, err = repo.GetPageContent("page")
	if err != nil {
		t.Fatalf("GetPageContent after edit: %v", err)
	}
	if !strings.Contains(html, "Second") {
		t.Fatalf("expected fresh render after edit, got %q", html)
	}
}

func TestGetRawPageContent(t *testing.T) {
	source := "---\ntitle: Meta\n---\n\n# Raw"
	repo := newTestRepo(t, map[string]string{"page.md": source})

	raw, err := repo.GetRawPageContent("page")
	if err != nil {
		t.Fatalf("GetRawPageContent: %v", err)
	}
	if raw != source {
		t.Fatalf("expected untouched source, got %q", raw)
	}

	if _, err := repo.GetRawPageContent("absent"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestGetPageTitle(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"index.md":               "# Welcome",
		"docs/getting-started.md": "Just prose, no heading.",
		"docs/meta.md":            "---\ntitle: From Front Matter\n---\n\n# Ignored H1",
		"docs/headed.md":          "intro\n\n# Actual Title",
	})

	if got := repo.GetPageTitle(""); got != "Welcome" {
		t.Fatalf("home title = %q, want Welcome", got)
	}
	if got := repo.GetPageTitle("docs/headed"); got != "Actual Title" {
		t.Fatalf("H1 title = %q, want Actual Title", got)
	}
	if got := repo.GetPageTitle("docs/meta"); got != "From Front Matter" {
		t.Fatalf("front matter title = %q, want From Front Matter", got)
	}
	if got := repo.GetPageTitle("docs/getting-started"); got != "Getting Started" {
		t.Fatalf("fallback title = %q, want Getting Started", got)
	}
	if got := repo.GetPageTitle("absent"); got != "404 - Page Not Found" {
		t.Fatalf("missing title = %q, want 404 sentinel", got)
	}
}

func TestGetPageTitleEmptyRootWithoutIndex(t *testing.T) {
	repo := newTestRepo(t, map[string]string{"other.md": "# Other"})

	if got := repo.GetPageTitle(""); got != "Home" {
		t.Fatalf("home fallback = %q, want Home", got)
	}
}

func TestGetPageHeadings(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"page.md": "# Top\n\n## Middle Section\n\ntext",
	})

	headings := repo.GetPageHeadings("page")
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %#v", headings)
	}
	if headings[1].ID != "middle-section" {
		t.Fatalf("heading slug = %q, want middle-section", headings[1].ID)
	}

	if headings := repo.GetPageHeadings("absent"); len(headings) != 0 {
		t.Fatalf("expected no headings for missing page, got %#v", headings)
	}
}

func TestGetBreadcrumbs(t *testing.T) {
	repo := newTestRepo(t, nil)

	crumbs := repo.GetBreadcrumbs("a/b/c")
	want := []struct{ name, path string }{
		{"Home", ""},
		{"A", "a"},
		{"B", "a/b"},
		{"C", "a/b/c"},
	}
	if len(crumbs) != len(want) {
		t.Fatalf("expected %d crumbs, got %#v", len(want), crumbs)
	}
	for i, w := range want {
		if crumbs[i].Name != w.name || crumbs[i].Path != w.path {
			t.Fatalf("crumb %d = %#v, want %+v", i, crumbs[i], w)
		}
	}

	if crumbs := repo.GetBreadcrumbs(""); len(crumbs) != 1 || crumbs[0].Name != "Home" {
		t.Fatalf("expected lone Home crumb, got %#v", crumbs)
	}
}

func TestPageModified(t *testing.T) {
	repo := newTestRepo(t, map[string]string{"page.md": "# Page"})

	modified, err := repo.PageModified("page")
	if err != nil {
		t.Fatalf("PageModified: %v", err)
	}
	if modified.IsZero() {
		t.Fatalf("expected non-zero modification time")
	}

	if _, err := repo.PageModified("absent"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestHasContent(t *testing.T) {
	if repo := newTestRepo(t, map[string]string{"index.md": "# Home"}); !repo.HasContent() {
		t.Fatalf("expected content detected")
	}
	if repo := newTestRepo(t, nil); repo.HasContent() {
		t.Fatalf("expected empty root to report no content")
	}
	if repo := NewRepository(Config{ContentDir: filepath.Join(t.TempDir(), "absent")}); repo.HasContent() {
		t.Fatalf("expected missing root to report no content")
	}
}
