package lessons

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"Mufasa-Assistant/server/internal/apperr"
)

// Library serves the rotating daily lesson for each language track. Each
// track maps to a pre-authored JSON file holding an array of lesson
// entries, one entry per day of a repeating cycle (30 entries in the
// shipped sets). The entry structure is track-specific and opaque here.
type Library struct {
	dir    string
	tracks map[string]string
}

// NewLibrary builds a library over the given directory and track→file map.
func NewLibrary(dir string, tracks map[string]string) *Library {
	if tracks == nil {
		tracks = map[string]string{}
	}
	return &Library{dir: dir, tracks: tracks}
}

// Tracks returns the configured track names.
func (l *Library) Tracks() []string {
	names := make([]string, 0, len(l.tracks))
	for name := range l.tracks {
		names = append(names, name)
	}
	return names
}

// Today returns the lesson entry for the given calendar date. The file is
// re-read and re-parsed on every call; the hosting layer is the only cache.
func (l *Library) Today(track string, now time.Time) (json.RawMessage, error) {
	file, ok := l.tracks[track]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("unknown lesson track: %s", track))
	}

	path := filepath.Join(l.dir, file)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("missing lesson file: %s", file))
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageError, "failed to read lesson file", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperr.Wrap(apperr.KindCorruptRecord, fmt.Sprintf("lesson file %s is not valid JSON", file), err)
	}
	if len(entries) == 0 {
		return nil, apperr.New(apperr.KindCorruptRecord, fmt.Sprintf("lesson file %s is empty", file))
	}

	return entries[DayIndex(now, len(entries))], nil
}

// DayIndex selects the rotating lesson index for a date: day-of-year is
// 1-indexed (Jan 1 = 1) in the server's local calendar, so day 1 selects
// index 0 and day 31 wraps back to index 0 for a 30-entry set.
func DayIndex(now time.Time, size int) int {
	return (now.YearDay() - 1) % size
}
