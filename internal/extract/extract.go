// Package extract converts uploaded documents to plain narration text.
// Plain text, Markdown, and HTML are supported; binary document formats
// are rejected up front by the extension allow-list.
package extract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// allowedExtensions maps lowercase file extensions to their extractor.
var allowedExtensions = map[string]func(string) string{
	".txt":  fromPlain,
	".text": fromPlain,
	".md":   fromMarkdown,
	".html": fromHTML,
	".htm":  fromHTML,
}

// Allowed reports whether the filename's extension is extractable.
func Allowed(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Text extracts narration text from the named file's contents.
func Text(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := allowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	text := extractor(string(data))
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text could be extracted from %s", filename)
	}
	return text, nil
}

func fromPlain(content string) string {
	return strings.TrimSpace(content)
}

var (
	mdHeading   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdEmphasis  = regexp.MustCompile(`(\*{1,3}|_{1,3})([^*_]+)(\*{1,3}|_{1,3})`)
	mdLink      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdCodeFence = regexp.MustCompile("(?s)```.*?```")
	mdInline    = regexp.MustCompile("`([^`]*)`")
	mdListItem  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	mdBlockQuot = regexp.MustCompile(`(?m)^>\s?`)
)

func fromMarkdown(content string) string {
	text := mdCodeFence.ReplaceAllString(content, " ")
	text = mdHeading.ReplaceAllString(text, "")
	text = mdLink.ReplaceAllString(text, "$1")
	text = mdEmphasis.ReplaceAllString(text, "$2")
	text = mdInline.ReplaceAllString(text, "$1")
	text = mdListItem.ReplaceAllString(text, "")
	text = mdBlockQuot.ReplaceAllString(text, "")
	return normalize(text)
}

var (
	htmlScript = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</\s*(script|style)\s*>`)
	htmlTag    = regexp.MustCompile(`(?s)<[^>]+>`)
	htmlEntity = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

func fromHTML(content string) string {
	text := htmlScript.ReplaceAllString(content, " ")
	text = htmlTag.ReplaceAllString(text, " ")
	text = htmlEntity.Replace(text)
	return normalize(text)
}

func normalize(text string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}
