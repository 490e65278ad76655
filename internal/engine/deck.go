package engine

import (
	"encoding/json"
	"strings"

	"Mufasa-Assistant/server/internal/models"
)

const (
	// MinSlides and MaxSlides bound the requested slide count.
	MinSlides = 3
	MaxSlides = 12
	// DefaultSlides applies when a request names no slide count.
	DefaultSlides = 8

	fallbackTitle      = "Slideshow (unparsed)"
	fallbackTopicLen   = 80
	fallbackTextLen    = 1500
	fallbackSlideTitle = "Error"
)

// ClampSlides clamps a requested slide count to [MinSlides, MaxSlides].
// Zero means "not specified" and yields the default.
func ClampSlides(n int) int {
	if n == 0 {
		n = DefaultSlides
	}
	if n < MinSlides {
		return MinSlides
	}
	if n > MaxSlides {
		return MaxSlides
	}
	return n
}

// ShapeDeck parses the model's raw output into a Deck, truncating to
// maxSlides. When the output is not the expected JSON shape the failure is
// absorbed into a fallback deck holding the raw text in a single synthetic
// slide, so consumers always see the full deck shape.
func ShapeDeck(raw, question string, maxSlides int) models.Deck {
	bound := ClampSlides(maxSlides)

	var deck models.Deck
	if err := json.Unmarshal([]byte(stripFences(raw)), &deck); err != nil || len(deck.Slides) == 0 {
		return fallbackDeck(raw, question)
	}

	if len(deck.Slides) > bound {
		deck.Slides = deck.Slides[:bound]
	}
	for i := range deck.Slides {
		if deck.Slides[i].Bullets == nil {
			deck.Slides[i].Bullets = []string{}
		}
	}
	return deck
}

func fallbackDeck(raw, question string) models.Deck {
	return models.Deck{
		Title: fallbackTitle,
		Topic: truncate(strings.TrimSpace(question), fallbackTopicLen),
		Slides: []models.Slide{
			{
				Title:     fallbackSlideTitle,
				Bullets:   []string{},
				Narration: truncate(raw, fallbackTextLen),
			},
		},
	}
}

// stripFences removes a surrounding Markdown code fence. Models often wrap
// JSON in ```json blocks despite instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
