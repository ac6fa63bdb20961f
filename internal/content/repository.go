package content

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-wiki/internal/cache"
	"github.com/goliatone/go-wiki/internal/identity"
	"github.com/goliatone/go-wiki/internal/logging"
	"github.com/goliatone/go-wiki/internal/markdown"
	"github.com/goliatone/go-wiki/internal/util"
	"github.com/goliatone/go-wiki/pkg/interfaces"
)

// Config wires a Repository.
type Config struct {
	ContentDir        string
	Renderer          *markdown.Renderer
	Cache             *cache.Cache
	AllowedExtensions []string
	ContentTTL        time.Duration
	NavigationTTL     time.Duration
	SearchTTL         time.Duration
	MaxSearchResults  int
	SnippetLength     int
	Logger            interfaces.Logger
}

// Repository serves wiki pages from a directory tree of markdown files. It
// is the only component that touches the content root: every inbound path
// goes through CurrentPath before any filesystem access, and every resolved
// file is re-validated against the root to reject symlink escapes.
//
// All reads are cached best-effort; a nil cache simply recomputes.
type Repository struct {
	contentDir        string
	renderer          *markdown.Renderer
	cache             *cache.Cache
	allowedExtensions []string
	contentTTL        time.Duration
	navigationTTL     time.Duration
	searchTTL         time.Duration
	maxSearchResults  int
	snippetLength     int
	logger            interfaces.Logger
}

// NewRepository builds a repository over cfg.ContentDir.
func NewRepository(cfg Config) *Repository {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	renderer := cfg.Renderer
	if renderer == nil {
		renderer = markdown.NewRenderer(markdown.RendererConfig{Logger: logger})
	}

	exts := util.CloneStrings(cfg.AllowedExtensions)
	if len(exts) == 0 {
		exts = []string{"md"}
	}

	maxResults := cfg.MaxSearchResults
	if maxResults <= 0 {
		maxResults = 50
	}

	snippetLength := cfg.SnippetLength
	if snippetLength <= 0 {
		snippetLength = 200
	}

	return &Repository{
		contentDir:        cfg.ContentDir,
		renderer:          renderer,
		cache:             cfg.Cache,
		allowedExtensions: exts,
		contentTTL:        cfg.ContentTTL,
		navigationTTL:     cfg.NavigationTTL,
		searchTTL:         cfg.SearchTTL,
		maxSearchResults:  maxResults,
		snippetLength:     snippetLength,
		logger:            logger,
	}
}

// ContentDir returns the configured content root.
func (r *Repository) ContentDir() string {
	return r.contentDir
}

var (
	allowedPathCharsRe = regexp.MustCompile(`[^a-zA-Z0-9\-_/.]`)
	repeatedSlashRe    = regexp.MustCompile(`/+`)
)

// CurrentPath sanitizes an untrusted page path. Traversal sequences, null
// bytes, and characters outside the safe set are stripped rather than
// rejected, so a hostile path degrades to a not-found lookup instead of an
// error. This is the sole trust boundary in front of the content root.
func (r *Repository) CurrentPath(raw string) string {
	path := strings.Trim(raw, "/")

	path = strings.ReplaceAll(path, "../", "")
	path = strings.ReplaceAll(path, "..\\", "")
	path = strings.ReplaceAll(path, "./", "")
	path = strings.ReplaceAll(path, "\x00", "")
	path = allowedPathCharsRe.ReplaceAllString(path, "")
	path = repeatedSlashRe.ReplaceAllString(path, "/")

	return strings.Trim(path, "/")
}

// resolveCandidates lists the path variants tried when mapping a page path
// to a file: the path itself, the path with its last segment repeated
// (a directory and its same-named page), and the path's index file.
func (r *Repository) resolveCandidates(path string) []string {
	candidates := []string{path}

	parts := strings.Split(path, "/")
	if len(parts) >= 2 {
		if last := parts[len(parts)-1]; last != "" {
			candidates = append(candidates, path+"/"+last)
		}
	}

	candidates = append(candidates, path+"/index")

	seen := make(map[string]struct{}, len(candidates))
	var unique []string
	for _, candidate := range candidates {
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		unique = append(unique, candidate)
	}
	return unique
}

// filePath maps a candidate page path to its backing markdown file. The
// empty path is the content root's index page.
func (r *Repository) filePath(path string) string {
	if path == "" {
		return filepath.Join(r.contentDir, "index.md")
	}
	return filepath.Join(r.contentDir, path+".md")
}

// isValidFile accepts a path only when the file exists, its
// symlink-resolved location stays inside the resolved content root, and
// its extension is on the allow-list.
func (r *Repository) isValidFile(filePath string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}

	realRoot, err := filepath.EvalSymlinks(r.contentDir)
	if err != nil {
		return false
	}
	realPath, err := filepath.EvalSymlinks(filePath)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(realRoot, realPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	ext := strings.TrimPrefix(filepath.Ext(filePath), ".")
	for _, allowed := range r.allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// resolve returns the first candidate with a valid backing file, along
// with that file's filesystem path.
func (r *Repository) resolve(path string) (candidate, filePath string, ok bool) {
	for _, try := range r.resolveCandidates(path) {
		fp := r.filePath(try)
		if r.isValidFile(fp) {
			return try, fp, true
		}
	}
	return "", "", false
}

// GetPageContent renders the page at path to HTML. The result is cached
// keyed by the source file's modification time, so edits invalidate
// without explicit purges. Missing pages return ErrPageNotFound.
func (r *Repository) GetPageContent(path string) (string, error) {
	candidate, filePath, ok := r.resolve(path)
	if !ok {
		return "", ErrPageNotFound
	}

	return cache.RememberFile(r.cache, identity.ContentKey(candidate), filePath, r.contentTTL, func() (string, error) {
		data, err := os.ReadFile(filePath)
		if err != nil {
			r.logger.Error("content.read", "path", candidate, "error", err)
			return "", err
		}
		r.logger.Debug("content.render", "path", candidate)
		return r.renderSource(data), nil
	})
}

// renderSource strips any front matter block and renders the body.
func (r *Repository) renderSource(source []byte) string {
	body := source
	if _, stripped, err := markdown.ParseFrontMatter(source); err == nil {
		body = stripped
	}
	return r.renderer.Render(string(body))
}

// GetRawPageContent returns the page's markdown source, front matter
// included, with no rendering and no caching.
func (r *Repository) GetRawPageContent(path string) (string, error) {
	_, filePath, ok := r.resolve(path)
	if !ok {
		return "", ErrPageNotFound
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetPageTitle names the page at path: front matter title first, then the
// first H1, then a title derived from the last path segment. The empty
// path is the home page and falls back to "Home"; a missing page yields a
// sentinel title the presentation layer can show on a 404.
func (r *Repository) GetPageTitle(path string) string {
	raw, err := r.GetRawPageContent(path)
	if err != nil {
		if path == "" {
			return "Home"
		}
		return "404 - Page Not Found"
	}

	body := raw
	if fm, stripped, err := markdown.ParseFrontMatter([]byte(raw)); err == nil {
		if fm.Title != "" {
			return fm.Title
		}
		body = string(stripped)
	}
	if title := markdown.ExtractTitle(body); title != "" {
		return title
	}

	if path == "" {
		return "Home"
	}
	segments := strings.Split(path, "/")
	return util.TitleFromName(segments[len(segments)-1])
}

// GetPageHeadings lists the page's headings for a table of contents.
// Missing pages report no headings.
func (r *Repository) GetPageHeadings(path string) []interfaces.PageHeading {
	raw, err := r.GetRawPageContent(path)
	if err != nil {
		return nil
	}

	body := raw
	if _, stripped, err := markdown.ParseFrontMatter([]byte(raw)); err == nil {
		body = string(stripped)
	}
	return markdown.ExtractHeadings(body)
}

// GetBreadcrumbs builds the trail for path, starting from a synthetic
// Home entry and accumulating one entry per segment.
func (r *Repository) GetBreadcrumbs(path string) []interfaces.Breadcrumb {
	crumbs := []interfaces.Breadcrumb{{Name: "Home", Path: ""}}
	if path == "" {
		return crumbs
	}

	prefix := ""
	for _, part := range strings.Split(path, "/") {
		if prefix == "" {
			prefix = part
		} else {
			prefix = prefix + "/" + part
		}
		crumbs = append(crumbs, interfaces.Breadcrumb{
			Name: util.TitleFromName(part),
			Path: prefix,
		})
	}
	return crumbs
}

// PageModified reports the backing file's modification time. Missing
// pages return ErrPageNotFound.
func (r *Repository) PageModified(path string) (time.Time, error) {
	_, filePath, ok := r.resolve(path)
	if !ok {
		return time.Time{}, ErrPageNotFound
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// HasContent reports whether the content root exists and holds at least
// one entry.
func (r *Repository) HasContent() bool {
	entries, err := os.ReadDir(r.contentDir)
	if err != nil {
		return false
	}
	return len(entries) > 0
}

// shouldSkip hides dot-files and the repository README from navigation
// and search.
func shouldSkip(name string) bool {
	return strings.HasPrefix(name, ".") || name == "README.md"
}

func isMarkdownFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}

// pagePath maps a file's content-root-relative path to its page path: the
// extension drops, and index files collapse to their directory so a
// category and its landing page share one address.
func pagePath(relativeFilePath string) string {
	path := strings.TrimSuffix(relativeFilePath, filepath.Ext(relativeFilePath))
	if filepath.Base(path) == "index" {
		dir := filepath.Dir(path)
		if dir == "." {
			return ""
		}
		return filepath.ToSlash(dir)
	}
	return filepath.ToSlash(path)
}
