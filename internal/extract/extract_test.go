package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/extract"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	assert.True(t, extract.Allowed("story.txt"))
	assert.True(t, extract.Allowed("NOTES.MD"))
	assert.True(t, extract.Allowed("page.html"))
	assert.False(t, extract.Allowed("report.pdf"))
	assert.False(t, extract.Allowed("novel.docx"))
	assert.False(t, extract.Allowed("noextension"))
}

func TestTextPlain(t *testing.T) {
	t.Parallel()

	got, err := extract.Text("a.txt", []byte("  plain story text \n"))
	require.NoError(t, err)
	assert.Equal(t, "plain story text", got)
}

func TestTextMarkdown(t *testing.T) {
	t.Parallel()

	md := "# Title\n\nSome **bold** text with a [link](https://example.com).\n\n- item one\n- item two\n\n> a quote\n"

	got, err := extract.Text("doc.md", []byte(md))
	require.NoError(t, err)

	assert.Contains(t, got, "Title")
	assert.Contains(t, got, "bold")
	assert.Contains(t, got, "link")
	assert.Contains(t, got, "item one")
	assert.Contains(t, got, "a quote")
	assert.NotContains(t, got, "#")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "https://example.com")
}

func TestTextMarkdownStripsCodeFences(t *testing.T) {
	t.Parallel()

	md := "Intro.\n\n```go\nfunc secret() {}\n```\n\nOutro."

	got, err := extract.Text("doc.md", []byte(md))
	require.NoError(t, err)
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "Intro.")
	assert.Contains(t, got, "Outro.")
}

func TestTextHTML(t *testing.T) {
	t.Parallel()

	html := `<html><head><style>body{color:red}</style>
<script>alert("x")</script></head>
<body><h1>Chapter &amp; Verse</h1><p>Once upon a time.</p></body></html>`

	got, err := extract.Text("page.html", []byte(html))
	require.NoError(t, err)

	assert.Contains(t, got, "Chapter & Verse")
	assert.Contains(t, got, "Once upon a time.")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color:red")
	assert.NotContains(t, got, "<")
}

func TestTextUnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := extract.Text("file.pdf", []byte("%PDF-1.4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestTextEmptyContentIsError(t *testing.T) {
	t.Parallel()

	_, err := extract.Text("empty.txt", []byte("   \n\t"))
	assert.Error(t, err)
}
