package web

import "go.uber.org/atomic"

// Stats counts served operations for the /api/stats endpoint. Counters are
// the only mutable state shared across requests.
type Stats struct {
	Asks        atomic.Int64
	Storyboards atomic.Int64
	VoiceCalls  atomic.Int64
	Lessons     atomic.Int64
}

type statsSnapshot struct {
	Asks        int64 `json:"asks"`
	Storyboards int64 `json:"storyboards"`
	VoiceCalls  int64 `json:"voice_calls"`
	Lessons     int64 `json:"lessons"`
}

func (s *Stats) snapshot() statsSnapshot {
	return statsSnapshot{
		Asks:        s.Asks.Load(),
		Storyboards: s.Storyboards.Load(),
		VoiceCalls:  s.VoiceCalls.Load(),
		Lessons:     s.Lessons.Load(),
	}
}
