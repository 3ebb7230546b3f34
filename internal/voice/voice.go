// Package voice maps analyzed content to narration personas. Scoring is a
// pure function of (text, genre): identical inputs always produce the same
// ranked list, and ties keep the archetype declaration order.
package voice

import (
	"sort"
	"strings"
)

// Recommendation is one scored narration persona.
type Recommendation struct {
	Archetype       string   `json:"archetype"`
	Description     string   `json:"description"`
	Score           int      `json:"score"`
	Characteristics []string `json:"characteristics"`
	SuitableGenres  []string `json:"suitable_genres"`
}

type archetype struct {
	name            string
	description     string
	suitableGenres  []string
	characteristics []string
}

var archetypes = []archetype{
	{
		name:            "wise_narrator",
		description:     "Thoughtful and knowledgeable, perfect for educational content",
		suitableGenres:  []string{"educational", "historical", "philosophical"},
		characteristics: []string{"measured pace", "clear articulation", "authoritative tone"},
	},
	{
		name:            "dramatic_storyteller",
		description:     "Passionate and expressive, ideal for emotional narratives",
		suitableGenres:  []string{"drama", "romance", "tragedy"},
		characteristics: []string{"dynamic range", "emotional depth", "theatrical delivery"},
	},
	{
		name:            "mysterious_voice",
		description:     "Enigmatic and suspenseful, perfect for thrillers",
		suitableGenres:  []string{"mystery", "thriller", "horror"},
		characteristics: []string{"lower register", "deliberate pacing", "subtle emphasis"},
	},
	{
		name:            "energetic_guide",
		description:     "Enthusiastic and engaging, great for adventures",
		suitableGenres:  []string{"adventure", "comedy", "children"},
		characteristics: []string{"upbeat tempo", "varied intonation", "friendly warmth"},
	},
	{
		name:            "gentle_companion",
		description:     "Soothing and comforting, ideal for relaxation",
		suitableGenres:  []string{"meditation", "self-help", "bedtime stories"},
		characteristics: []string{"soft tone", "slow pace", "calming presence"},
	},
	{
		name:            "professional_presenter",
		description:     "Clear and authoritative, perfect for business content",
		suitableGenres:  []string{"business", "technical", "news"},
		characteristics: []string{"crisp diction", "confident delivery", "neutral accent"},
	},
}

// keywordBonuses grants extra points when the text contains genre-specific
// keywords and the archetype is the designated match for that genre.
var keywordBonuses = []struct {
	genre     string
	keywords  []string
	archetype string
}{
	{"mystery", []string{"mystery", "detective", "clue", "suspect"}, "mysterious_voice"},
	{"adventure", []string{"adventure", "journey", "explore"}, "energetic_guide"},
	{"drama", []string{"emotion", "heart", "passion"}, "dramatic_storyteller"},
}

// Recommend scores every archetype against the content and genre and
// returns the top three. It never returns an empty list.
func Recommend(content, genre string) []Recommendation {
	lower := strings.ToLower(content)

	recs := make([]Recommendation, 0, len(archetypes))
	for _, a := range archetypes {
		score := 0
		if containsGenre(a.suitableGenres, genre) {
			score += 3
		} else if containsGenre(a.suitableGenres, "general") || len(a.suitableGenres) > 3 {
			score++
		}
		score += keywordBonus(lower, genre, a.name)

		recs = append(recs, Recommendation{
			Archetype:       a.name,
			Description:     a.description,
			Score:           score,
			Characteristics: a.characteristics,
			SuitableGenres:  a.suitableGenres,
		})
	}

	if len(recs) == 0 {
		return []Recommendation{{
			Archetype:   "wise_narrator",
			Description: "Default narrator",
			Score:       1,
		}}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs
}

func containsGenre(genres []string, genre string) bool {
	for _, g := range genres {
		if g == genre {
			return true
		}
	}
	return false
}

func keywordBonus(lowerContent, genre, archetypeName string) int {
	if lowerContent == "" {
		return 0
	}
	for _, b := range keywordBonuses {
		if b.genre != genre || b.archetype != archetypeName {
			continue
		}
		for _, kw := range b.keywords {
			if strings.Contains(lowerContent, kw) {
				return 2
			}
		}
	}
	return 0
}
