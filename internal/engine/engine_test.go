package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Mufasa-Assistant/server/internal/apperr"
	"Mufasa-Assistant/server/internal/logger"
	"Mufasa-Assistant/server/internal/models"
	"Mufasa-Assistant/server/internal/storage"
)

type fakeCompleter struct {
	answer     string
	err        error
	lastSystem string
	lastUser   string
	lastTemp   float64
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	f.lastTemp = temperature
	return f.answer, f.err
}

func newTestEngine(t *testing.T, completer Completer) (*Engine, string) {
	t.Helper()
	dataDir := t.TempDir()
	store, err := storage.NewFileStore(dataDir)
	require.NoError(t, err)
	return NewEngine(completer, store, logger.NewNop(), 0.7), dataDir
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

func TestAsk_PersistsRecord(t *testing.T) {
	completer := &fakeCompleter{answer: "Karibu, young one."}
	eng, dataDir := newTestEngine(t, completer)

	record, err := eng.Ask(context.Background(), AskInput{
		Question: "  How do I greet in Swahili?  ",
		UserID:   "u-7",
		Mode:     "chat",
	})
	require.NoError(t, err)

	assert.Equal(t, "How do I greet in Swahili?", record.Question)
	assert.Equal(t, "Karibu, young one.", record.Answer)
	assert.Equal(t, "u-7", record.UserID)
	assert.Equal(t, 0.7, completer.lastTemp)

	recordsDir := filepath.Join(dataDir, storage.CollectionRecords)
	require.Equal(t, 1, countFiles(t, recordsDir))

	var stored models.Record
	store, err := storage.NewFileStore(dataDir)
	require.NoError(t, err)
	require.NoError(t, store.Read(storage.CollectionRecords, models.RecordKey(record.Timestamp), &stored))
	assert.Equal(t, "How do I greet in Swahili?", stored.Question)
}

func TestAsk_DefaultsUserID(t *testing.T) {
	eng, _ := newTestEngine(t, &fakeCompleter{answer: "a"})

	record, err := eng.Ask(context.Background(), AskInput{Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserID, record.UserID)
	assert.Equal(t, "chat", record.Mode)
}

func TestAsk_EmptyQuestionWritesNothing(t *testing.T) {
	eng, dataDir := newTestEngine(t, &fakeCompleter{answer: "a"})

	_, err := eng.Ask(context.Background(), AskInput{Question: "   "})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	assert.Equal(t, 0, countFiles(t, filepath.Join(dataDir, storage.CollectionRecords)))
}

func TestAsk_UpstreamFailureWritesNothing(t *testing.T) {
	completer := &fakeCompleter{err: apperr.New(apperr.KindUpstreamError, "boom")}
	eng, dataDir := newTestEngine(t, completer)

	_, err := eng.Ask(context.Background(), AskInput{Question: "q"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstreamError, apperr.KindOf(err))
	assert.Equal(t, 0, countFiles(t, filepath.Join(dataDir, storage.CollectionRecords)))
}

func TestAsk_AnnotatesUserPrompt(t *testing.T) {
	completer := &fakeCompleter{answer: "a"}
	eng, _ := newTestEngine(t, completer)

	_, err := eng.Ask(context.Background(), AskInput{
		Question:  "q",
		PortalID:  "p1",
		SessionID: "s1",
		Context:   map[string]string{"course": "yoruba"},
	})
	require.NoError(t, err)
	assert.Equal(t, "[PORTAL_ID=p1] [SESSION=s1] q", completer.lastUser)
	assert.Contains(t, completer.lastSystem, "course: yoruba")
}

func TestGenerateStoryboard_RoundTrip(t *testing.T) {
	completer := &fakeCompleter{answer: validDeckJSON}
	eng, _ := newTestEngine(t, completer)

	created, err := eng.GenerateStoryboard(context.Background(), StoryboardInput{
		Question: "Tell me about the Mara",
		UserID:   "u-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 0.4, completer.lastTemp)

	got, err := eng.GetStoryboard(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Question, got.Question)
	assert.Equal(t, created.Deck, got.Deck)
}

func TestGenerateStoryboard_UnparsableOutputStillSucceeds(t *testing.T) {
	completer := &fakeCompleter{answer: "sorry, no JSON today"}
	eng, _ := newTestEngine(t, completer)

	created, err := eng.GenerateStoryboard(context.Background(), StoryboardInput{Question: "q"})
	require.NoError(t, err)

	require.Len(t, created.Deck.Slides, 1)
	assert.Equal(t, "Error", created.Deck.Slides[0].Title)

	got, err := eng.GetStoryboard(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Deck, got.Deck)
}

func TestGetStoryboard_UnknownID(t *testing.T) {
	eng, dataDir := newTestEngine(t, &fakeCompleter{})

	_, err := eng.GetStoryboard("sb-20200101-000000")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, 0, countFiles(t, filepath.Join(dataDir, storage.CollectionStoryboards)))
}
