package web

import (
	"net/http"
	"strings"
)

const maxAudioBytes = 32 << 20

// SynthesizeSpeech proxies a text-to-speech request to the TTS sidecar and
// relays its response verbatim.
func (h *Handlers) SynthesizeSpeech(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	text := strings.TrimSpace(r.FormValue("text"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := h.voice.Synthesize(r.Context(), text)
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.stats.VoiceCalls.Inc()
	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(result.StatusCode)
	_, _ = w.Write(result.Body)
}

// TranscribeSpeech proxies an uploaded audio file to the STT sidecar and
// relays its transcript response verbatim.
func (h *Handlers) TranscribeSpeech(w http.ResponseWriter, r *http.Request) {
	// Reject before parsing the upload so an unconfigured sidecar answers
	// immediately.
	if !h.voice.STTConfigured() {
		writeError(w, http.StatusServiceUnavailable, "no STT sidecar configured")
		return
	}

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	result, err := h.voice.Transcribe(r.Context(), file, header.Filename,
		header.Header.Get("Content-Type"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.stats.VoiceCalls.Inc()
	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(result.StatusCode)
	_, _ = w.Write(result.Body)
}
