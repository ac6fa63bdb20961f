package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the metadata a wiki page can declare ahead of its body.
// Only title participates in rendering today; the rest is surfaced through
// Custom for callers that want it.
type FrontMatter struct {
	Title  string         `yaml:"title"`
	Custom map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits source into YAML front matter and the Markdown
// body without delimiters. Sources without a front matter block return an
// empty FrontMatter and the body unchanged.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}
