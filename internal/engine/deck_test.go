package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDeckJSON = `{
  "title": "The Mara",
  "topic": "Great migration",
  "audience": "students",
  "slides": [
    {"title": "Intro", "bullets": ["one", "two"], "narration": "Welcome."},
    {"title": "Rivers", "bullets": ["three"], "narration": "Crossing."}
  ]
}`

func TestClampSlides(t *testing.T) {
	cases := map[int]int{
		0:  DefaultSlides,
		1:  MinSlides,
		3:  3,
		8:  8,
		12: 12,
		50: MaxSlides,
		-5: MinSlides,
	}
	for in, want := range cases {
		assert.Equal(t, want, ClampSlides(in), "ClampSlides(%d)", in)
	}
}

func TestShapeDeck_ValidJSON(t *testing.T) {
	deck := ShapeDeck(validDeckJSON, "question", 8)

	assert.Equal(t, "The Mara", deck.Title)
	assert.Equal(t, "Great migration", deck.Topic)
	assert.Equal(t, "students", deck.Audience)
	require.Len(t, deck.Slides, 2)
	assert.Equal(t, []string{"one", "two"}, deck.Slides[0].Bullets)
}

func TestShapeDeck_StripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validDeckJSON + "\n```"
	deck := ShapeDeck(fenced, "question", 8)

	assert.Equal(t, "The Mara", deck.Title)
	require.Len(t, deck.Slides, 2)
}

func TestShapeDeck_TruncatesToBound(t *testing.T) {
	var slides []string
	for i := 0; i < 12; i++ {
		slides = append(slides, `{"title":"s","bullets":[],"narration":"n"}`)
	}
	raw := `{"title":"t","topic":"x","audience":"a","slides":[` + strings.Join(slides, ",") + `]}`

	deck := ShapeDeck(raw, "question", 1) // clamped up to 3
	assert.Len(t, deck.Slides, MinSlides)

	deck = ShapeDeck(raw, "question", 50) // clamped down to 12
	assert.Len(t, deck.Slides, MaxSlides)
}

func TestShapeDeck_FallbackOnGarbage(t *testing.T) {
	question := strings.Repeat("q", 100)
	raw := "I am sorry, I cannot do that. " + strings.Repeat("x", 2000)

	deck := ShapeDeck(raw, question, 8)

	assert.Equal(t, "Slideshow (unparsed)", deck.Title)
	assert.Equal(t, question[:80], deck.Topic)
	require.Len(t, deck.Slides, 1)
	assert.Equal(t, "Error", deck.Slides[0].Title)
	assert.Len(t, deck.Slides[0].Narration, 1500)
	assert.Equal(t, raw[:1500], deck.Slides[0].Narration)
}

func TestShapeDeck_FallbackOnEmptySlides(t *testing.T) {
	deck := ShapeDeck(`{"title":"t","topic":"x","slides":[]}`, "question", 8)

	assert.Equal(t, "Slideshow (unparsed)", deck.Title)
	require.Len(t, deck.Slides, 1)
	assert.Equal(t, "Error", deck.Slides[0].Title)
}

func TestShapeDeck_NeverErrors(t *testing.T) {
	for _, raw := range []string{"", "null", "[]", "{", "plain text"} {
		deck := ShapeDeck(raw, "question", 8)
		require.Len(t, deck.Slides, 1, "raw %q", raw)
		assert.Equal(t, "Error", deck.Slides[0].Title)
	}
}
