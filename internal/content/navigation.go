package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-wiki/internal/cache"
	"github.com/goliatone/go-wiki/internal/util"
	"github.com/goliatone/go-wiki/pkg/interfaces"
)

// GetNavigation returns the navigation tree mirroring the content root:
// directories become categories, markdown files become pages, and index
// files stay invisible because they are the implicit content of their
// category. The tree is cached keyed by the deepest modification time
// under the root, so any content change produces a fresh key.
func (r *Repository) GetNavigation() ([]interfaces.NavigationNode, error) {
	return cache.RememberDir(r.cache, "navigation", r.contentDir, r.navigationTTL, func() ([]interfaces.NavigationNode, error) {
		r.logger.Debug("navigation.rebuild", "root", r.contentDir)
		return r.buildNavTree(r.contentDir, ""), nil
	})
}

// buildNavTree walks dir recursively and returns its navigation nodes.
// Each level lists directories before files, both case-insensitively by
// name. A missing directory yields no nodes, not an error.
func (r *Repository) buildNavTree(dir, relativePath string) []interfaces.NavigationNode {
	entries := sortedDirEntries(dir)

	var nodes []interfaces.NavigationNode
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
			nodes = append(nodes, interfaces.NavigationNode{
				Type:     interfaces.NodeCategory,
				Name:     util.TitleFromName(name),
				Path:     relativeFilePath,
				Children: r.buildNavTree(fullPath, relativeFilePath),
			})
			continue
		}

		if !isMarkdownFile(name) {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base == "index" {
			continue
		}

		nodes = append(nodes, interfaces.NavigationNode{
			Type: interfaces.NodePage,
			Name: util.TitleFromName(base),
			Path: pagePath(relativeFilePath),
		})
	}
	return nodes
}

// sortedDirEntries lists dir with directories first, then files, each
// group ordered case-insensitively by name.
func sortedDirEntries(dir string) []os.DirEntry {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})
	return entries
}
