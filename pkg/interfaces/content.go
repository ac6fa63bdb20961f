package interfaces

// NodeType discriminates navigation tree nodes.
type NodeType string

const (
	// NodeCategory mirrors a directory under the content root.
	NodeCategory NodeType = "category"
	// NodePage mirrors a markdown file under the content root.
	NodePage NodeType = "page"
)

// NavigationNode is one entry in the hierarchical navigation tree. Page
// nodes carry a unique slash-separated path with no extension; category
// nodes carry their directory's relative path plus an ordered list of
// children (directories sort before files, case-insensitively by name).
type NavigationNode struct {
	Type     NodeType         `json:"type"`
	Name     string           `json:"name"`
	Path     string           `json:"path"`
	Children []NavigationNode `json:"children,omitempty"`
}

// SearchResult is one full-text search hit. Snippet contains plain text with
// the matched substring wrapped in <mark> markers; everything else is
// HTML-escaped.
type SearchResult struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Snippet string `json:"snippet"`
}

// PageHeading is a single ATX heading extracted from raw markdown, used for
// tables of contents and anchors. ID is produced by the shared slug
// algorithm; duplicate heading texts yield colliding IDs by design of the
// original system and are not disambiguated.
type PageHeading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Breadcrumb is one segment of the trail from the wiki home to a page.
type Breadcrumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}
