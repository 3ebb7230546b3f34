// Package analyze derives coarse genre, complexity, sentiment, and theme
// signals from raw text using keyword-frequency heuristics. Everything here
// is a pure function of its input: no remote calls, no shared state, and no
// error paths — malformed input degrades to the documented default analysis.
package analyze

import (
	"regexp"
	"sort"
	"strings"
)

// wordsPerMinute is the narration rate used for audio duration estimates.
const wordsPerMinute = 150.0

// Analysis is the full result of analyzing a piece of text.
type Analysis struct {
	WordCount         int      `json:"word_count"`
	SentenceCount     int      `json:"sentence_count"`
	ParagraphCount    int      `json:"paragraph_count"`
	AvgSentenceLength float64  `json:"avg_sentence_length"`
	DetectedGenre     string   `json:"detected_genre"`
	Complexity        string   `json:"complexity"`
	ReadingLevel      string   `json:"reading_level"`
	Sentiment         string   `json:"sentiment"`
	SentimentScore    float64  `json:"sentiment_confidence"`
	Themes            []string `json:"themes"`
	RecommendedVoice  string   `json:"recommended_voice"`
	RecommendedPace   string   `json:"recommended_pace"`
	// EstimatedDuration is the narration length in minutes at 150 wpm.
	EstimatedDuration float64 `json:"estimated_audio_duration_minutes"`
}

// genreKeywords scores genres by keyword hits. Order matters: ties are
// broken by declaration order, so the slice form is authoritative.
var genreOrder = []string{"mystery", "fantasy", "sci-fi", "romance", "adventure", "horror", "drama"}

var genreKeywords = map[string][]string{
	"mystery":   {"detective", "crime", "murder", "clue", "suspect", "investigation"},
	"fantasy":   {"magic", "wizard", "dragon", "spell", "enchanted", "quest"},
	"sci-fi":    {"space", "alien", "robot", "future", "technology", "planet"},
	"romance":   {"love", "heart", "kiss", "romance", "relationship", "passion"},
	"adventure": {"journey", "treasure", "explore", "adventure", "quest", "expedition"},
	"horror":    {"fear", "terror", "ghost", "haunted", "nightmare", "evil"},
	"drama":     {"emotion", "conflict", "family", "relationship", "struggle"},
}

var positiveWords = []string{"good", "great", "excellent", "wonderful", "amazing", "fantastic", "love", "happy", "joy"}

var negativeWords = []string{"bad", "terrible", "awful", "horrible", "hate", "sad", "angry", "fear", "worry"}

var themeStopwords = map[string]bool{
	"that": true, "this": true, "with": true, "have": true, "will": true,
	"been": true, "were": true, "said": true, "each": true, "which": true,
	"their": true, "time": true, "would": true, "there": true, "could": true,
	"other": true,
}

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	themeWord     = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)
)

// Analyze computes the full analysis for text. The empty string yields the
// default analysis (zero counts, "general" genre, neutral sentiment).
func Analyze(text string) Analysis {
	words := strings.Fields(text)
	if len(words) == 0 {
		return defaultAnalysis()
	}

	// The sentence count drops the empty trailing segment a terminating
	// "." or "!" produces; the average and the complexity thresholds
	// divide by the raw split count, trailing segment included.
	splits := sentenceSplit.Split(text, -1)
	sentences := nonEmptySegments(splits)
	paragraphs := nonEmptySegments(strings.Split(text, "\n\n"))

	complexity := assessComplexity(words, len(splits))
	sentiment, confidence := scoreSentiment(text)

	return Analysis{
		WordCount:         len(words),
		SentenceCount:     len(sentences),
		ParagraphCount:    len(paragraphs),
		AvgSentenceLength: float64(len(words)) / float64(max(len(splits), 1)),
		DetectedGenre:     DetectGenre(text),
		Complexity:        complexity,
		ReadingLevel:      readingLevel(complexity),
		Sentiment:         sentiment,
		SentimentScore:    confidence,
		Themes:            ExtractThemes(text),
		RecommendedPace:   recommendPace(complexity, sentiment),
		EstimatedDuration: float64(len(words)) / wordsPerMinute,
	}
}

// DetectGenre scores each genre by keyword occurrences in the lower-cased
// text and returns the best match, or "general" when nothing scores.
func DetectGenre(text string) string {
	lower := strings.ToLower(text)

	best := "general"
	bestScore := 0
	for _, genre := range genreOrder {
		score := 0
		for _, kw := range genreKeywords[genre] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = genre
			bestScore = score
		}
	}
	return best
}

// ExtractThemes returns up to three recurring words of length >= 4, ranked
// by frequency. A word must appear at least twice to count as a theme.
func ExtractThemes(text string) []string {
	matches := themeWord.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	var order []string
	for _, w := range matches {
		if themeStopwords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// Stable sort keeps first-occurrence order for equal frequencies.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	themes := make([]string, 0, 3)
	for _, w := range order {
		if counts[w] < 2 {
			continue
		}
		themes = append(themes, w)
		if len(themes) == 3 {
			break
		}
	}
	return themes
}

func scoreSentiment(text string) (string, float64) {
	lower := strings.ToLower(text)

	positive := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	negative := 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return "positive", confidence(positive - negative)
	case negative > positive:
		return "negative", confidence(negative - positive)
	default:
		return "neutral", 0.5
	}
}

func confidence(diff int) float64 {
	c := 0.5 + 0.1*float64(diff)
	if c > 0.9 {
		return 0.9
	}
	return c
}

func assessComplexity(words []string, splitCount int) string {
	totalLen := 0
	for _, w := range words {
		totalLen += len(w)
	}
	avgWordLen := float64(totalLen) / float64(len(words))
	avgSentLen := float64(len(words)) / float64(max(splitCount, 1))

	switch {
	case avgWordLen > 6 && avgSentLen > 20:
		return "complex"
	case avgWordLen > 4 && avgSentLen > 15:
		return "moderate"
	default:
		return "simple"
	}
}

func readingLevel(complexity string) string {
	switch complexity {
	case "simple":
		return "Elementary"
	case "complex":
		return "High School+"
	default:
		return "Middle School"
	}
}

func recommendPace(complexity, sentiment string) string {
	if complexity == "complex" {
		return "slow"
	}
	if sentiment == "positive" {
		return "fast"
	}
	return "normal"
}

func nonEmptySegments(segments []string) []string {
	var out []string
	for _, s := range segments {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func defaultAnalysis() Analysis {
	return Analysis{
		DetectedGenre:    "general",
		Complexity:       "moderate",
		ReadingLevel:     "Middle School",
		Sentiment:        "neutral",
		SentimentScore:   0.5,
		RecommendedVoice: "wise_narrator",
		RecommendedPace:  "normal",
	}
}
