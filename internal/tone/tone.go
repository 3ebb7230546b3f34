// Package tone rewrites text into a named narration tone. A remote
// transform service is tried first; on any failure the stage degrades to a
// deterministic local rule set, so Transform always returns usable text.
package tone

import (
	"context"
	"log/slog"
	"strings"
)

// Tones is the fixed set of supported narration tones.
var Tones = []string{
	"neutral", "suspenseful", "dramatic", "inspiring",
	"educational", "conversational", "formal", "calming",
}

// shortTextWords is the word count below which the local fallback wraps the
// result with the tone's prefix and suffix.
const shortTextWords = 50

// RemoteTransformer is the remote tone-transform dependency (the granite
// client in production, a test double in tests).
type RemoteTransformer interface {
	Transform(ctx context.Context, text, tone string) (string, error)
}

// Transformer applies tone transformations with remote-then-local fallback.
type Transformer struct {
	remote RemoteTransformer // nil means local rules only
}

// New creates a Transformer. remote may be nil.
func New(remote RemoteTransformer) *Transformer {
	return &Transformer{remote: remote}
}

// Result carries the transformed text and how it was produced.
type Result struct {
	Text         string
	UsedFallback bool
}

// Transform rewrites text in the given tone. Unknown tones are coerced to
// neutral with a warning; the method never fails and never returns an
// empty string for non-empty input.
func (t *Transformer) Transform(ctx context.Context, text, tone string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text}
	}

	if !Valid(tone) {
		slog.Warn("unknown tone, using neutral", "tone", tone)
		tone = "neutral"
	}

	if t.remote != nil {
		transformed, err := t.remote.Transform(ctx, text, tone)
		if err == nil {
			return Result{Text: transformed}
		}
		slog.Warn("remote tone transform failed, using local rules", "tone", tone, "error", err)
	}

	return Result{Text: Fallback(text, tone), UsedFallback: true}
}

// Valid reports whether tone is one of the supported tones.
func Valid(tone string) bool {
	for _, t := range Tones {
		if t == tone {
			return true
		}
	}
	return false
}

// rule is the local transformation for one tone: ordered word replacements
// plus a prefix/suffix wrapper for short texts.
type rule struct {
	prefix       string
	suffix       string
	replacements []replacement
}

type replacement struct {
	old string
	new string
}

// fallbackRules is the canonical local rule table, keyed by tone. Neutral
// has no entry: it passes text through unchanged.
var fallbackRules = map[string]rule{
	"suspenseful": {
		prefix: "In a spine-chilling turn of events, ",
		suffix: " The tension was palpable, leaving everyone on edge.",
		replacements: []replacement{
			{"walked", "crept cautiously"},
			{"said", "whispered ominously"},
			{"looked", "peered suspiciously"},
			{"went", "ventured carefully"},
		},
	},
	"dramatic": {
		prefix: "With overwhelming emotion, ",
		suffix: " The moment was filled with raw, powerful intensity.",
		replacements: []replacement{
			{"walked", "strode dramatically"},
			{"said", "declared passionately"},
			{"looked", "gazed intensely"},
			{"felt", "experienced deeply"},
		},
	},
	"inspiring": {
		prefix: "With hope and determination, ",
		suffix: " This moment would inspire generations to come.",
		replacements: []replacement{
			{"walked", "moved forward courageously"},
			{"said", "proclaimed with conviction"},
			{"looked", "envisioned a brighter future"},
			{"tried", "persevered with unwavering resolve"},
		},
	},
	"calming": {
		prefix: "In peaceful serenity, ",
		suffix: " A sense of tranquil calm settled over everything.",
		replacements: []replacement{
			{"walked", "strolled peacefully"},
			{"said", "spoke gently"},
			{"looked", "observed serenely"},
			{"moved", "flowed gracefully"},
		},
	},
	"educational": {
		prefix: "It is important to understand that ",
		suffix: " This knowledge forms the foundation for further learning.",
		replacements: []replacement{
			{"said", "explained clearly"},
			{"showed", "demonstrated effectively"},
			{"found", "discovered through research"},
			{"knew", "understood from evidence"},
		},
	},
	"formal": {
		prefix: "It should be noted that ",
		suffix: " This matter requires careful consideration.",
		replacements: []replacement{
			{"said", "stated formally"},
			{"told", "informed officially"},
			{"asked", "inquired respectfully"},
			{"got", "obtained through proper channels"},
		},
	},
	"conversational": {
		prefix: "You know, ",
		suffix: " Pretty interesting stuff, right?",
		replacements: []replacement{
			{"said", "mentioned casually"},
			{"told", "shared with me"},
			{"found", "came across"},
			{"learned", "picked up"},
		},
	},
}

// Fallback applies the local rule set for tone. Replacements run in table
// order, lower-case form first and then the capitalized variant. Texts
// shorter than 50 words after replacement are wrapped with the tone's
// prefix and suffix. Neutral and unrecognized tones return text unchanged.
func Fallback(text, tone string) string {
	r, ok := fallbackRules[tone]
	if !ok {
		return text
	}

	result := text
	for _, rep := range r.replacements {
		result = strings.ReplaceAll(result, rep.old, rep.new)
		result = strings.ReplaceAll(result, capitalize(rep.old), capitalize(rep.new))
	}

	if len(strings.Fields(result)) < shortTextWords {
		result = r.prefix + result + r.suffix
	}
	return result
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
