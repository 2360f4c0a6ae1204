package markdown

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Idempotent(t *testing.T) {
	r := New(DefaultOptions())
	src := []byte("# Title\n\nSome *text*\nnext line\n\n```go\nfunc main() {}\n```\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")

	first, err := r.Render(src)
	require.NoError(t, err)
	second, err := r.Render(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := New(DefaultOptions()).Render(src)
	require.NoError(t, err)
	assert.Equal(t, first, other, "separate renderers with equal options must agree")
}

func TestRender_SoftBreaks(t *testing.T) {
	src := []byte("line one\nline two\n")

	on, err := New(Options{SoftBreaks: true}).Render(src)
	require.NoError(t, err)
	assert.Contains(t, on, "<br")

	off, err := New(Options{}).Render(src)
	require.NoError(t, err)
	assert.NotContains(t, off, "<br")
}

func TestRender_GithubFlavoredTables(t *testing.T) {
	src := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")

	gfm, err := New(Options{GithubFlavored: true}).Render(src)
	require.NoError(t, err)
	assert.Contains(t, gfm, "<table>")

	plain, err := New(Options{}).Render(src)
	require.NoError(t, err)
	assert.NotContains(t, plain, "<table>")
}

func TestRender_HighlightsKnownLanguage(t *testing.T) {
	out, err := New(DefaultOptions()).Render([]byte("```go\npackage main\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "<span")
	assert.Contains(t, out, "package")
}

func TestRender_UnknownLanguageStillEscaped(t *testing.T) {
	out, err := New(DefaultOptions()).Render([]byte("```nosuchlang\n<b>bold</b> & more\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "&lt;")
	assert.NotContains(t, out, "<b>bold</b>")
}

func TestRender_NoLanguageFence(t *testing.T) {
	out, err := New(DefaultOptions()).Render([]byte("```\nSELECT 1 FROM dual;\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "SELECT")
}

func TestRender_RawHTMLOmittedByDefault(t *testing.T) {
	src := []byte("<script>alert(1)</script>\n")

	safe, err := New(DefaultOptions()).Render(src)
	require.NoError(t, err)
	assert.NotContains(t, safe, "<script>")

	opts := DefaultOptions()
	opts.AllowRawHTML = true
	unsafe, err := New(opts).Render(src)
	require.NoError(t, err)
	assert.Contains(t, unsafe, "<script>")
}

func TestRender_ConcurrentUse(t *testing.T) {
	r := New(DefaultOptions())
	src := []byte("## Heading\n\n```python\nprint('hi')\n```\n")
	want, err := r.Render(src)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.Render(src)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestStyleCSS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(Options{CSSClasses: true}).StyleCSS(&buf))
	assert.True(t, strings.Contains(buf.String(), ".chroma"), "css = %q", buf.String())
}

func TestNew_DefaultsStyle(t *testing.T) {
	assert.Equal(t, DefaultStyle, New(Options{}).Options().HighlightStyle)
}

func TestKnownStyle(t *testing.T) {
	assert.True(t, KnownStyle(DefaultStyle))
	assert.True(t, KnownStyle("monokai"))
	assert.False(t, KnownStyle("no-such-style"))
}
