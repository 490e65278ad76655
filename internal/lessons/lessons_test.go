package lessons

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Mufasa-Assistant/server/internal/apperr"
)

func writeLessonFile(t *testing.T, dir, name string, entries int) {
	t.Helper()
	items := make([]map[string]string, entries)
	for i := range items {
		items[i] = map[string]string{"day": fmt.Sprintf("%d", i+1), "phrase": fmt.Sprintf("phrase-%d", i)}
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func newTestLibrary(t *testing.T) (*Library, string) {
	t.Helper()
	dir := t.TempDir()
	lib := NewLibrary(dir, map[string]string{
		"swahili": "swahili_30days.json",
		"yoruba":  "yoruba_30days.json",
	})
	return lib, dir
}

func TestDayIndex(t *testing.T) {
	jan1 := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.Local)
	jan31 := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.Local)
	feb1 := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.Local)

	assert.Equal(t, 0, DayIndex(jan1, 30))
	assert.Equal(t, 29, DayIndex(time.Date(2026, time.January, 30, 0, 0, 0, 0, time.Local), 30))
	// Day 31 wraps back to the first entry for a 30-entry set.
	assert.Equal(t, 0, DayIndex(jan31, 30))
	assert.Equal(t, 1, DayIndex(feb1, 30))
}

func TestToday_SelectsRotatingEntry(t *testing.T) {
	lib, dir := newTestLibrary(t)
	writeLessonFile(t, dir, "swahili_30days.json", 30)

	day5 := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.Local)
	entry, err := lib.Today("swahili", day5)
	require.NoError(t, err)

	var lesson map[string]string
	require.NoError(t, json.Unmarshal(entry, &lesson))
	assert.Equal(t, "phrase-4", lesson["phrase"])

	// Deterministic for a fixed date.
	again, err := lib.Today("swahili", day5)
	require.NoError(t, err)
	assert.Equal(t, string(entry), string(again))
}

func TestToday_UnknownTrack(t *testing.T) {
	lib, _ := newTestLibrary(t)

	_, err := lib.Today("latin", time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestToday_MissingFile(t *testing.T) {
	lib, _ := newTestLibrary(t)

	_, err := lib.Today("yoruba", time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestToday_CorruptFile(t *testing.T) {
	lib, dir := newTestLibrary(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yoruba_30days.json"), []byte("nope"), 0644))

	_, err := lib.Today("yoruba", time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.KindCorruptRecord, apperr.KindOf(err))
}

func TestToday_EmptyFile(t *testing.T) {
	lib, dir := newTestLibrary(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yoruba_30days.json"), []byte("[]"), 0644))

	_, err := lib.Today("yoruba", time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.KindCorruptRecord, apperr.KindOf(err))
}

func TestToday_PicksUpFileChanges(t *testing.T) {
	lib, dir := newTestLibrary(t)
	writeLessonFile(t, dir, "swahili_30days.json", 30)

	day1 := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)
	first, err := lib.Today("swahili", day1)
	require.NoError(t, err)

	// No caching: a rewritten file is visible on the next call.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swahili_30days.json"),
		[]byte(`[{"phrase":"replaced"}]`), 0644))

	second, err := lib.Today("swahili", day1)
	require.NoError(t, err)
	assert.NotEqual(t, string(first), string(second))
	assert.Contains(t, string(second), "replaced")
}
