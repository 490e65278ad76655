package engine

import (
	"context"
	"time"

	"Mufasa-Assistant/server/internal/logger"
	"Mufasa-Assistant/server/internal/models"
	"Mufasa-Assistant/server/internal/prompts"
	"Mufasa-Assistant/server/internal/storage"
)

// storyboardTemperature is lower than the chat default so deck JSON stays
// close to the requested shape.
const storyboardTemperature = 0.4

// AskInput carries one question through the assistant path.
type AskInput struct {
	Question  string
	UserID    string
	SessionID string
	PortalID  string
	Mode      string
	Context   map[string]string
}

// StoryboardInput carries one storyboard generation request.
type StoryboardInput struct {
	Question  string
	UserID    string
	MaxSlides int
}

// Engine orchestrates prompt assembly, the completion call, response
// shaping and persistence. It holds no per-request state.
type Engine struct {
	completer   Completer
	store       *storage.FileStore
	log         *logger.Logger
	temperature float64
}

// NewEngine wires the assistant engine. temperature is the sampling
// temperature for the chat path.
func NewEngine(completer Completer, store *storage.FileStore, log *logger.Logger, temperature float64) *Engine {
	return &Engine{
		completer:   completer,
		store:       store,
		log:         log,
		temperature: temperature,
	}
}

// Ask validates the question, calls the completion API and persists the
// resulting question/answer record.
func (e *Engine) Ask(ctx context.Context, in AskInput) (*models.Record, error) {
	question, err := prompts.NormalizeQuestion(in.Question)
	if err != nil {
		return nil, err
	}

	mode := in.Mode
	if mode == "" {
		mode = prompts.ModeChat
	}

	systemPrompt := prompts.SystemPrompt(mode, in.Context)
	userPrompt := prompts.UserPrompt(question, in.PortalID, in.SessionID)

	answer, err := e.completer.Complete(ctx, systemPrompt, userPrompt, e.temperature)
	if err != nil {
		return nil, err
	}

	record := &models.Record{
		Timestamp: time.Now(),
		UserID:    in.UserID,
		SessionID: in.SessionID,
		Mode:      mode,
		Question:  question,
		Answer:    answer,
	}
	if record.UserID == "" {
		record.UserID = models.DefaultUserID
	}

	key := models.RecordKey(record.Timestamp)
	if err := e.store.Write(storage.CollectionRecords, key, record); err != nil {
		e.log.Error("failed to persist record", "key", key, "error", err)
		return nil, err
	}

	e.log.Info("record persisted", "key", key, "user_id", record.UserID, "mode", mode)
	return record, nil
}

// GenerateStoryboard calls the completion API with the deck persona, shapes
// the output into a Deck and persists the storyboard. Malformed model
// output degrades into a fallback deck rather than an error.
func (e *Engine) GenerateStoryboard(ctx context.Context, in StoryboardInput) (*models.Storyboard, error) {
	question, err := prompts.NormalizeQuestion(in.Question)
	if err != nil {
		return nil, err
	}

	maxSlides := ClampSlides(in.MaxSlides)
	systemPrompt := prompts.StoryboardSystemPrompt(maxSlides)
	userPrompt := prompts.StoryboardUserPrompt(question)

	raw, err := e.completer.Complete(ctx, systemPrompt, userPrompt, storyboardTemperature)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	storyboard := &models.Storyboard{
		ID:        models.StoryboardID(now),
		CreatedAt: now,
		UserID:    in.UserID,
		Question:  question,
		Deck:      ShapeDeck(raw, question, maxSlides),
	}
	if storyboard.UserID == "" {
		storyboard.UserID = models.DefaultUserID
	}

	if err := e.store.Write(storage.CollectionStoryboards, storyboard.ID, storyboard); err != nil {
		e.log.Error("failed to persist storyboard", "id", storyboard.ID, "error", err)
		return nil, err
	}

	e.log.Info("storyboard persisted", "id", storyboard.ID, "slides", len(storyboard.Deck.Slides))
	return storyboard, nil
}

// GetStoryboard reads a stored storyboard by id, bypassing the LLM path.
func (e *Engine) GetStoryboard(id string) (*models.Storyboard, error) {
	var storyboard models.Storyboard
	if err := e.store.Read(storage.CollectionStoryboards, id, &storyboard); err != nil {
		return nil, err
	}
	return &storyboard, nil
}
