package web

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"Mufasa-Assistant/server/internal/apperr"
	"Mufasa-Assistant/server/internal/config"
	"Mufasa-Assistant/server/internal/engine"
	"Mufasa-Assistant/server/internal/generators"
	"Mufasa-Assistant/server/internal/lessons"
	"Mufasa-Assistant/server/internal/logger"
)

// Handlers holds the wiring every endpoint needs. All fields are set once
// at startup and read-only afterwards.
type Handlers struct {
	config  *config.Config
	log     *logger.Logger
	engine  *engine.Engine
	voice   *generators.VoiceClient
	lessons *lessons.Library
	stats   *Stats
}

func NewHandlers(cfg *config.Config, log *logger.Logger, eng *engine.Engine, voice *generators.VoiceClient, lib *lessons.Library) *Handlers {
	return &Handlers{
		config:  cfg,
		log:     log,
		engine:  eng,
		voice:   voice,
		lessons: lib,
		stats:   &Stats{},
	}
}

// NewRouter builds the chi router with all middleware and routes mounted.
func NewRouter(cfg *config.Config, log *logger.Logger, eng *engine.Engine, voice *generators.VoiceClient, lib *lessons.Library) *chi.Mux {
	h := NewHandlers(cfg, log, eng, voice, lib)

	r := chi.NewRouter()
	r.Use(requestLogger(log))
	r.Use(corsMiddleware(cfg.Web.AllowedOrigins))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/ask", h.Ask)

		r.Route("/storyboard", func(r chi.Router) {
			r.Post("/generate", h.GenerateStoryboard)
			r.Get("/get", h.GetStoryboard)
		})

		r.Route("/voice", func(r chi.Router) {
			r.Post("/tts", h.SynthesizeSpeech)
			r.Post("/stt", h.TranscribeSpeech)
		})

		r.Get("/lessons/{track}/today", h.TodayLesson)
		r.Get("/stats", h.GetStats)
	})

	// Static surface: the portal page, root-level pages and assets.
	r.Get("/", h.Home)
	r.Get("/assets/{filename}", h.Asset)
	r.Get("/{page}", h.StaticPage)

	return r
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "mufasa-assistant",
	})
}

func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.snapshot())
}

// TodayLesson returns the rotating lesson for a language track. The
// backing file is re-read on every call.
func (h *Handlers) TodayLesson(w http.ResponseWriter, r *http.Request) {
	track := chi.URLParam(r, "track")

	entry, err := h.lessons.Today(track, time.Now())
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.stats.Lessons.Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(entry)
}

// Home serves the main portal page.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, filepath.Join(h.config.Web.StaticDir, "index.html"))
}

// StaticPage serves root-level pages such as swahili.html or site CSS/JS.
func (h *Handlers) StaticPage(w http.ResponseWriter, r *http.Request) {
	page := filepath.Base(chi.URLParam(r, "page"))
	h.serveStatic(w, r, filepath.Join(h.config.Web.StaticDir, page))
}

// Asset serves files from the assets directory.
func (h *Handlers) Asset(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "filename"))
	h.serveStatic(w, r, filepath.Join(h.config.Web.AssetsDir, name))
}

func (h *Handlers) serveStatic(w http.ResponseWriter, r *http.Request, path string) {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, filepath.Base(path)+" not found")
		return
	}
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAppError converts a typed error into its JSON body and status code.
// No error escapes a handler.
func writeAppError(w http.ResponseWriter, err error) {
	writeError(w, apperr.HTTPStatus(err), err.Error())
}
