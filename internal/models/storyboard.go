package models

import "time"

// Slide represents a single slide in a generated deck
type Slide struct {
	Title     string   `json:"title"`
	Bullets   []string `json:"bullets"`
	Narration string   `json:"narration"`
}

// Deck represents the structured slideshow returned by storyboard generation
type Deck struct {
	Title    string  `json:"title"`
	Topic    string  `json:"topic"`
	Audience string  `json:"audience"`
	Slides   []Slide `json:"slides"`
}

// Storyboard wraps a Deck with creation metadata. The ID is derived from
// the creation timestamp and is the sole lookup key; storyboards are
// created once and never mutated.
type Storyboard struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Deck      Deck      `json:"deck"`
}

// StoryboardID derives a storyboard id from its creation time. Ids have
// second resolution; two generations in the same second collide and the
// later write wins, an accepted race given the request volume.
func StoryboardID(t time.Time) string {
	return "sb-" + t.Format("20060102-150405")
}
