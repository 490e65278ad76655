package web

import (
	"encoding/json"
	"io"
	"net/http"

	"Mufasa-Assistant/server/internal/engine"
	"Mufasa-Assistant/server/internal/models"
)

const maxBodyBytes = 1 << 20

// AskRequest is the canonical question contract.
type AskRequest struct {
	Question  string            `json:"question"`
	UserID    string            `json:"user_id,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	PortalID  string            `json:"portal_id,omitempty"`
	Mode      string            `json:"mode,omitempty"`
	Context   map[string]string `json:"context,omitempty"`
}

// GenerateStoryboardRequest is the storyboard generation contract.
type GenerateStoryboardRequest struct {
	Question  string `json:"question"`
	UserID    string `json:"user_id,omitempty"`
	MaxSlides int    `json:"max_slides,omitempty"`
}

// StoryboardResponse wraps a stored storyboard for both the generate and
// get endpoints.
type StoryboardResponse struct {
	OK         bool               `json:"ok"`
	ID         string             `json:"id,omitempty"`
	Storyboard *models.Storyboard `json:"storyboard"`
}

// Ask forwards a question to the completion API and returns the persisted
// record.
func (h *Handlers) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.engine.Ask(r.Context(), engine.AskInput{
		Question:  req.Question,
		UserID:    req.UserID,
		SessionID: req.SessionID,
		PortalID:  req.PortalID,
		Mode:      req.Mode,
		Context:   req.Context,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.stats.Asks.Inc()
	writeJSON(w, http.StatusOK, record)
}

// GenerateStoryboard creates and persists a storyboard for a question.
func (h *Handlers) GenerateStoryboard(w http.ResponseWriter, r *http.Request) {
	var req GenerateStoryboardRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	storyboard, err := h.engine.GenerateStoryboard(r.Context(), engine.StoryboardInput{
		Question:  req.Question,
		UserID:    req.UserID,
		MaxSlides: req.MaxSlides,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.stats.Storyboards.Inc()
	writeJSON(w, http.StatusOK, StoryboardResponse{
		OK:         true,
		ID:         storyboard.ID,
		Storyboard: storyboard,
	})
}

// GetStoryboard returns a stored storyboard by id.
func (h *Handlers) GetStoryboard(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	storyboard, err := h.engine.GetStoryboard(id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StoryboardResponse{
		OK:         true,
		Storyboard: storyboard,
	})
}
