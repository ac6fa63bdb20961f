package markdown

import (
	"fmt"

	"github.com/goliatone/go-wiki/internal/logging"
	"github.com/goliatone/go-wiki/pkg/interfaces"
)

// Strategy names accepted by RendererConfig.
const (
	// StrategyFull delegates to the injected engine, falling back to the
	// self-contained parser for any call the engine cannot serve.
	StrategyFull = "full"
	// StrategyFallback pins the self-contained parser and never touches the
	// engine.
	StrategyFallback = "fallback"
)

// RendererConfig wires a renderer. Strategy is resolved once here, by the
// composition root, rather than through process-wide probing state.
type RendererConfig struct {
	Strategy string
	Engine   interfaces.MarkdownEngine
	Logger   interfaces.Logger
}

// Renderer converts markdown text to HTML. It never returns an error: a
// failing or panicking engine demotes the single call to the fallback
// parser, and a post-processing pass guarantees heading anchors regardless
// of which strategy produced the HTML.
type Renderer struct {
	engine   interfaces.MarkdownEngine
	strategy string
	logger   interfaces.Logger
}

// NewRenderer builds a renderer from cfg. Requesting StrategyFull without an
// engine quietly resolves to StrategyFallback so the renderer always works.
func NewRenderer(cfg RendererConfig) *Renderer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	strategy := cfg.Strategy
	if strategy == "" {
		strategy = StrategyFull
	}
	if strategy == StrategyFull && cfg.Engine == nil {
		logger.Debug("markdown engine not configured, using fallback parser")
		strategy = StrategyFallback
	}

	return &Renderer{
		engine:   cfg.Engine,
		strategy: strategy,
		logger:   logger,
	}
}

// Render converts markdown into HTML. Empty input yields empty output.
func (r *Renderer) Render(source string) string {
	if source == "" {
		return ""
	}

	var out string
	if r.strategy == StrategyFull {
		converted, err := r.convert(source)
		if err != nil {
			r.logger.Warn("markdown engine failed, falling back", "error", err)
		} else {
			out = converted
		}
	}

	if out == "" {
		out = FallbackParse(source)
	}

	return EnsureHeadingIDs(out)
}

// Info reports which strategy the renderer resolved to.
func (r *Renderer) Info() interfaces.RendererInfo {
	if r.strategy == StrategyFull {
		return interfaces.RendererInfo{
			Name: "goldmark",
			Features: []string{
				"CommonMark",
				"GitHub Flavored Markdown",
				"Tables",
				"Task Lists",
				"Strikethrough",
				"Autolinks",
				"Code Blocks",
			},
		}
	}
	return interfaces.RendererInfo{
		Name: "fallback",
		Features: []string{
			"Basic markdown",
			"Tables",
			"Code blocks",
			"Task lists",
		},
	}
}

func (r *Renderer) convert(source string) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("markdown engine panic: %v", rec)
		}
	}()

	rendered, err := r.engine.Convert([]byte(source))
	if err != nil {
		return "", err
	}
	return string(rendered), nil
}
