// Package markdown renders content bodies to HTML with syntax-highlighted code blocks.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultStyle is the chroma style used when Options.HighlightStyle is empty.
const DefaultStyle = "catppuccin-mocha"

// Options controls how markdown is rendered. Options are fixed per Renderer.
type Options struct {
	// SoftBreaks turns single newlines inside a paragraph into <br>.
	SoftBreaks bool `yaml:"soft_breaks"`
	// GithubFlavored enables tables, strikethrough, autolinks and task lists.
	GithubFlavored bool `yaml:"github_flavored"`
	// HighlightStyle names the chroma style for fenced code blocks.
	HighlightStyle string `yaml:"highlight_style"`
	// CSSClasses emits class names instead of inline styles; see StyleCSS.
	CSSClasses bool `yaml:"css_classes"`
	// AllowRawHTML passes raw HTML in the source through to the output.
	AllowRawHTML bool `yaml:"allow_raw_html"`
}

// DefaultOptions mirrors the site defaults: line breaks preserved, GFM on.
func DefaultOptions() Options {
	return Options{
		SoftBreaks:     true,
		GithubFlavored: true,
		HighlightStyle: DefaultStyle,
	}
}

// Renderer converts markdown to HTML. It holds no mutable state and is safe
// for concurrent use.
type Renderer struct {
	opts Options
	md   goldmark.Markdown
}

// New builds a Renderer for the given options.
func New(opts Options) *Renderer {
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = DefaultStyle
	}

	// Known fence languages use their lexer, anything else is guessed from
	// the code; lexing or formatting errors fall back to escaped <pre><code>.
	exts := []goldmark.Extender{
		highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
			highlighting.WithGuessLanguage(true),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(opts.CSSClasses),
				chromahtml.TabWidth(4),
			),
		),
	}
	if opts.GithubFlavored {
		exts = append(exts, extension.GFM)
	}

	var rendererOpts []renderer.Option
	if opts.SoftBreaks {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if opts.AllowRawHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return &Renderer{
		opts: opts,
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

// Options returns the configuration the renderer was built with.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render converts src to HTML. The same input always yields the same output.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return buf.String(), nil
}

// StyleCSS writes the stylesheet for the configured highlight style. It is
// only needed when CSSClasses is enabled.
func (r *Renderer) StyleCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, styles.Get(r.opts.HighlightStyle)); err != nil {
		return fmt.Errorf("markdown: write css: %w", err)
	}
	return nil
}

// KnownStyle reports whether chroma ships a style called name.
func KnownStyle(name string) bool {
	return slices.Contains(styles.Names(), name)
}
