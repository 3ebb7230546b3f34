// Package story generates demo narration from per-theme templates,
// optionally polished by the enhancement chain.
package story

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/echoverse/echoverse/internal/enhance"
)

// DefaultCharacter is used when the request names no protagonist.
const DefaultCharacter = "a mysterious protagonist"

// Themes lists the available story themes.
var Themes = []string{"adventure", "mystery", "romance", "scifi", "fantasy", "horror"}

// templates keys theme to a template whose %[1]s slots take the character.
var templates = map[string]string{
	"adventure": "Once upon a time, %[1]s embarked on an extraordinary journey through uncharted territories. The path ahead was filled with challenges that would test their courage and determination. As they climbed the treacherous mountain peaks, they discovered ancient secrets that had been hidden for centuries. Each step forward revealed new mysteries, and with every obstacle overcome, %[1]s grew stronger and more determined. The adventure would change them forever, teaching valuable lessons about perseverance, friendship, and the power of believing in oneself.",

	"mystery": "In the quiet town of Willowbrook, %[1]s stumbled upon a puzzling case that would change everything. Strange occurrences had been reported throughout the neighborhood - mysterious lights in abandoned buildings, whispered conversations in empty streets, and clues that seemed to appear and disappear like shadows. As %[1]s delved deeper into the investigation, they uncovered a web of secrets that connected the town's past to its present. The truth, when finally revealed, was more shocking than anyone could have imagined.",

	"romance": "%[1]s never believed in love at first sight until that fateful autumn evening. The chance encounter at the old bookstore would spark a romance that transcended time and space. Their hearts beat in perfect harmony as they discovered the magic of true connection. Through seasons of joy and challenges, their love story unfolded like the pages of a beautiful novel, proving that sometimes the most unexpected meetings lead to the most extraordinary love stories.",

	"scifi": "In the year 2157, %[1]s was chosen for humanity's most important mission. The discovery of an alien signal had changed everything, and now they must venture into the unknown reaches of space. Advanced technology and alien civilizations awaited their arrival. As they traveled through galaxies far from Earth, %[1]s encountered wonders beyond imagination and faced challenges that would determine the fate of both human and alien species. The future of interstellar relations rested in their capable hands.",

	"fantasy": "In the mystical realm of Eldoria, %[1]s possessed a rare gift that could save or destroy the kingdom. Ancient magic flowed through their veins as they faced dragons, wizards, and enchanted forests. The prophecy spoke of a chosen one who would restore balance to the magical world. With a loyal band of companions and powerful artifacts, %[1]s embarked on a quest that would test not only their magical abilities but also their wisdom, compassion, and strength of character.",

	"horror": "%[1]s should never have entered the abandoned mansion on Elm Street. The creaking floors and whispering shadows held dark secrets that had been buried for decades. As night fell, they realized they were not alone in the house of horrors. Every room revealed new terrors, and every attempt to escape led deeper into the nightmare. The mansion seemed to have a life of its own, feeding on fear and trapping souls within its cursed walls. %[1]s would need all their courage to survive until dawn.",
}

// minEnhancedRatio is the floor for accepting an enhanced story over the
// template; heavily shortened rewrites are discarded.
const minEnhancedRatio = 0.8

// Story is a generated story with its parameters.
type Story struct {
	Text              string `json:"story"`
	Theme             string `json:"theme"`
	Length            string `json:"length"`
	Character         string `json:"character"`
	WordCount         int    `json:"word_count"`
	EstimatedDuration string `json:"estimated_duration"`
}

// Generator builds stories from the theme templates.
type Generator struct {
	enhancer *enhance.Chain
}

// NewGenerator returns a generator using the given enhancement chain.
// A nil chain skips enhancement and serves templates directly.
func NewGenerator(enhancer *enhance.Chain) *Generator {
	return &Generator{enhancer: enhancer}
}

// Generate produces a story for the theme, length ("short", "medium",
// "long") and character. Unknown themes fall back to adventure.
func (g *Generator) Generate(ctx context.Context, theme, length, character string) *Story {
	if character == "" {
		character = DefaultCharacter
	}
	if length == "" {
		length = "medium"
	}

	template, ok := templates[theme]
	if !ok {
		template = templates["adventure"]
	}
	base := fmt.Sprintf(template, character)

	text := base
	if g.enhancer != nil {
		enhanced := g.enhancer.Enhance(ctx, base, enhance.StyleCreative)
		if float64(len(enhanced.Text)) >= float64(len(base))*minEnhancedRatio {
			text = enhanced.Text
		} else {
			slog.Warn("enhanced story too short, using template", "theme", theme)
		}
	}

	switch length {
	case "short":
		text = halve(text) + "..."
	case "long":
		text += fmt.Sprintf(" The adventure continued as %s discovered even more challenges and wonders, each more incredible than the last. This was only the beginning of an epic tale that would be remembered for generations.", character)
	}

	words := len(strings.Fields(text))
	return &Story{
		Text:              text,
		Theme:             theme,
		Length:            length,
		Character:         character,
		WordCount:         words,
		EstimatedDuration: fmt.Sprintf("%d-%d minutes", words/150+1, words/100+2),
	}
}

// halve cuts text to roughly half its length without splitting a rune; the
// character name is caller input and may be multibyte.
func halve(text string) string {
	runes := []rune(text)
	return string(runes[:len(runes)/2])
}
