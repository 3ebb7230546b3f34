// Package local implements the terminal rule-based enhancement provider.
// It has no external dependencies and never declines outright: a style-keyed
// word substitution pass runs first, and if that leaves the text unchanged a
// sentence-level heuristic rewrite is applied.
package local

import (
	"context"
	"regexp"
	"strings"
)

// Provider is the local rule-based enhancer.
type Provider struct{}

// New creates the local provider.
func New() *Provider { return &Provider{} }

// Name returns the provider identifier.
func (p *Provider) Name() string { return "local" }

// longSentenceWords is the word count past which a sentence gets a trailing
// ellipsis for a dramatic pause.
const longSentenceWords = 10

type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// wholeWord compiles a whole-word pattern for w and its capitalized form.
func wholeWord(w, repl string) []substitution {
	return []substitution{
		{regexp.MustCompile(`\b` + w + `\b`), repl},
		{regexp.MustCompile(`\b` + capitalize(w) + `\b`), capitalize(repl)},
	}
}

func buildTable(pairs [][2]string) []substitution {
	var subs []substitution
	for _, p := range pairs {
		subs = append(subs, wholeWord(p[0], p[1])...)
	}
	return subs
}

// Substitution tables per style, applied in declaration order.
var styleTables = map[string][]substitution{
	"general": buildTable([][2]string{
		{"good", "excellent"},
		{"bad", "unfortunate"},
		{"big", "substantial"},
		{"small", "modest"},
		{"nice", "delightful"},
		{"said", "expressed"},
		{"went", "proceeded"},
		{"got", "obtained"},
	}),
	"creative": buildTable([][2]string{
		{"walked", "meandered gracefully"},
		{"looked", "gazed with wonder"},
		{"said", "whispered enchantingly"},
		{"felt", "experienced a profound sense of"},
		{"saw", "beheld the magnificent sight of"},
		{"heard", "was captivated by the sound of"},
	}),
	"formal": buildTable([][2]string{
		{"got", "obtained"},
		{"said", "stated"},
		{"told", "informed"},
		{"asked", "inquired"},
		{"showed", "demonstrated"},
		{"found", "discovered"},
		{"made", "created"},
	}),
}

// Enhance applies the style's substitution table, falling through to the
// sentence heuristic when substitution changed nothing. It never errors.
func (p *Provider) Enhance(_ context.Context, text, style string) (string, error) {
	table, ok := styleTables[style]
	if !ok {
		table = styleTables["general"]
	}

	result := text
	for _, sub := range table {
		result = sub.pattern.ReplaceAllString(result, sub.replacement)
	}

	if result == text {
		result = rewriteSentences(text)
	}
	return result, nil
}

// rewriteSentences splits on periods and decorates each sentence: long
// sentences get a trailing ellipsis, exclamations an "Indeed, " prefix, and
// questions a "One might wonder, " prefix.
func rewriteSentences(text string) string {
	var out []string
	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		switch {
		case len(strings.Fields(sentence)) > longSentenceWords:
			sentence += "..."
		case strings.HasSuffix(sentence, "!"):
			sentence = "Indeed, " + sentence
		case strings.HasSuffix(sentence, "?"):
			sentence = "One might wonder, " + sentence
		}
		out = append(out, sentence)
	}
	return strings.Join(out, ". ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
