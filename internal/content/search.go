package content

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-wiki/internal/cache"
	"github.com/goliatone/go-wiki/internal/identity"
	"github.com/goliatone/go-wiki/internal/markdown"
	"github.com/goliatone/go-wiki/internal/util"
	"github.com/goliatone/go-wiki/pkg/interfaces"
)

// Search scans every markdown file under the content root for a
// case-insensitive substring match and returns at most MaxSearchResults
// hits in walk order. Queries shorter than two characters return no
// results rather than an error. Results are cached keyed by the deepest
// modification time under the root.
func (r *Repository) Search(query string) ([]interfaces.SearchResult, error) {
	if len(query) < 2 {
		return nil, nil
	}

	return cache.RememberDir(r.cache, identity.SearchKey(query), r.contentDir, r.searchTTL, func() ([]interfaces.SearchResult, error) {
		r.logger.Debug("search.scan", "query", query)
		results := r.searchInDirectory(r.contentDir, "", query)
		if len(results) > r.maxSearchResults {
			results = results[:r.maxSearchResults]
		}
		return results, nil
	})
}

// searchInDirectory recursively collects matches under dir. A missing or
// unreadable directory contributes nothing.
func (r *Repository) searchInDirectory(dir, relativePath, query string) []interfaces.SearchResult {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var results []interfaces.SearchResult
	for _, entry := range entries {
		name := entry.Name()
		if shouldSkip(name) {
			continue
		}

		fullPath := filepath.Join(dir, name)
		relativeFilePath := name
		if relativePath != "" {
			relativeFilePath = relativePath + "/" + name
		}

		if entry.IsDir() {
			results = append(results, r.searchInDirectory(fullPath, relativeFilePath, query)...)
			continue
		}
		if !isMarkdownFile(name) {
			continue
		}

		if result, ok := r.searchInFile(fullPath, relativeFilePath, query); ok {
			results = append(results, result)
		}
	}
	return results
}

// searchInFile reports whether the file matches query and, if so, builds
// its search result. A match anywhere in the content qualifies the whole
// file exactly once.
func (r *Repository) searchInFile(filePath, relativeFilePath, query string) (interfaces.SearchResult, bool) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return interfaces.SearchResult{}, false
	}

	content := string(data)
	if !strings.Contains(strings.ToLower(content), strings.ToLower(query)) {
		return interfaces.SearchResult{}, false
	}

	name := strings.TrimSuffix(filepath.Base(relativeFilePath), filepath.Ext(relativeFilePath))
	title := util.FirstNonEmpty(markdown.ExtractTitle(content), util.TitleFromName(name))

	return interfaces.SearchResult{
		Title:   title,
		Path:    pagePath(relativeFilePath),
		Snippet: markdown.SearchSnippet(content, query, r.snippetLength),
	}, true
}
