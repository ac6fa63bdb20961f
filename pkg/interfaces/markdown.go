package interfaces

// MarkdownEngine converts Markdown source into HTML. The wiki renderer only
// depends on this contract; the concrete engine (goldmark by default) is
// injected by the composition root so hosts can swap it or drop it entirely
// and rely on the self-contained fallback parser.
type MarkdownEngine interface {
	Convert(source []byte) ([]byte, error)
}

// EngineOptions customises how the default Markdown engine is assembled,
// keeping option names readable for configuration unmarshalling and CLI
// flags. Unsupported extension names are ignored.
type EngineOptions struct {
	Extensions []string
	HardWraps  bool
	Unsafe     bool
}

// RendererInfo describes the strategy a renderer resolved to, mainly for
// diagnostics commands and smoke tests.
type RendererInfo struct {
	Name     string   `json:"name"`
	Features []string `json:"features"`
}
