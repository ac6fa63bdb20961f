package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-wiki/pkg/interfaces"
)

// GoldmarkEngine implements interfaces.MarkdownEngine using the goldmark
// engine. The engine is intentionally stateless so callers can reuse a
// single instance across requests without additional locking.
type GoldmarkEngine struct {
	md goldmark.Markdown
}

// NewGoldmarkEngine constructs an engine with sensible defaults (GFM
// extensions, hard wraps disabled, raw HTML allowed). Auto heading IDs stay
// off: the renderer's post-processing step owns anchor generation so the
// slug algorithm stays identical across rendered pages and tables of
// contents.
func NewGoldmarkEngine(opts interfaces.EngineOptions) *GoldmarkEngine {
	exts := collectExtensions(opts.Extensions)

	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return &GoldmarkEngine{md: goldmark.New(engineOptions...)}
}

// Convert satisfies interfaces.MarkdownEngine by rendering Markdown into HTML.
func (e *GoldmarkEngine) Convert(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
