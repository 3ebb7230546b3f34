package analyze

import "strings"

// EmotionProfile maps emotion names to intensities in [0,1] and names the
// strongest one. Derived purely from keyword density; ties between equal
// intensities go to the earlier entry in the emotion table.
type EmotionProfile struct {
	Emotions   map[string]float64 `json:"emotions"`
	Primary    string             `json:"primary_emotion"`
	Intensity  float64            `json:"intensity"`
	Confidence float64            `json:"confidence"`
}

// emotionTable pairs each emotion with its indicator words. Declaration
// order breaks intensity ties, so this stays a slice.
var emotionTable = []struct {
	name  string
	words []string
}{
	{"joy", []string{"happy", "joy", "excited", "wonderful", "amazing", "great", "fantastic", "love", "smile", "laugh"}},
	{"sadness", []string{"sad", "cry", "tears", "sorrow", "grief", "depressed", "melancholy", "lonely", "lost"}},
	{"fear", []string{"afraid", "scared", "fear", "terror", "anxiety", "worried", "nervous", "panic", "danger"}},
	{"excitement", []string{"exciting", "thrilling", "adventure", "action", "fast", "quick", "rush", "energy"}},
	{"calm", []string{"peaceful", "calm", "serene", "quiet", "gentle", "soft", "tranquil", "relaxed"}},
}

// AnalyzeEmotions builds an emotion profile from text. Empty or all-miss
// input yields a neutral profile at intensity 0.5.
func AnalyzeEmotions(text string) EmotionProfile {
	words := strings.Fields(text)
	if len(words) == 0 {
		return neutralProfile()
	}
	lower := strings.ToLower(text)

	emotions := make(map[string]float64)
	primary := ""
	primaryIntensity := 0.0
	for _, entry := range emotionTable {
		hits := 0
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		intensity := float64(hits) / float64(len(words)) * 10
		if intensity > 1.0 {
			intensity = 1.0
		}
		emotions[entry.name] = intensity
		if intensity > primaryIntensity {
			primary = entry.name
			primaryIntensity = intensity
		}
	}

	if len(emotions) == 0 {
		return neutralProfile()
	}

	return EmotionProfile{
		Emotions:   emotions,
		Primary:    primary,
		Intensity:  primaryIntensity,
		Confidence: 0.8,
	}
}

func neutralProfile() EmotionProfile {
	return EmotionProfile{
		Emotions:   map[string]float64{"neutral": 0.5},
		Primary:    "neutral",
		Intensity:  0.5,
		Confidence: 0.8,
	}
}
