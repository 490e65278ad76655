package generators

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Mufasa-Assistant/server/internal/apperr"
	"Mufasa-Assistant/server/internal/config"
)

// VoiceClient forwards text-to-speech and speech-to-text requests to
// separately hosted sidecar services over plain HTTP. Both directions are
// pure passthrough: the sidecar's status code and body are relayed
// verbatim, success or error.
type VoiceClient struct {
	httpClient *http.Client
	ttsBaseURL string
	sttBaseURL string
}

// VoiceResult carries a relayed sidecar response.
type VoiceResult struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// NewVoiceClient builds the passthrough client. Empty base URLs disable
// the corresponding operation.
func NewVoiceClient(cfg config.VoiceConfig) *VoiceClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	return &VoiceClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		ttsBaseURL: strings.TrimRight(cfg.TTS.BaseURL, "/"),
		sttBaseURL: strings.TrimRight(cfg.STT.BaseURL, "/"),
	}
}

// TTSConfigured reports whether a TTS sidecar is configured.
func (c *VoiceClient) TTSConfigured() bool {
	return c.ttsBaseURL != ""
}

// STTConfigured reports whether an STT sidecar is configured.
func (c *VoiceClient) STTConfigured() bool {
	return c.sttBaseURL != ""
}

// Synthesize forwards text to the TTS sidecar and relays the audio
// response. A missing sidecar configuration fails before any request.
func (c *VoiceClient) Synthesize(ctx context.Context, text string) (*VoiceResult, error) {
	if !c.TTSConfigured() {
		return nil, apperr.New(apperr.KindServiceUnavailable, "no TTS sidecar configured")
	}

	form := url.Values{}
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ttsBaseURL+"/tts",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamError, "failed to create TTS request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.relay(req, "audio/wav")
}

// Transcribe forwards an audio upload to the STT sidecar and relays the
// transcript response.
func (c *VoiceClient) Transcribe(ctx context.Context, file io.Reader, filename, contentType string) (*VoiceResult, error) {
	if !c.STTConfigured() {
		return nil, apperr.New(apperr.KindServiceUnavailable, "no STT sidecar configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamError, "failed to build STT request", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamError, "failed to read audio upload", err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamError, "failed to build STT request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sttBaseURL+"/stt", &body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamError, "failed to create STT request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if contentType != "" {
		req.Header.Set("X-Audio-Content-Type", contentType)
	}

	return c.relay(req, "application/json")
}

// relay performs the forwarded call and captures the sidecar's response
// for verbatim replay to the original caller.
func (c *VoiceClient) relay(req *http.Request, defaultContentType string) (*VoiceResult, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamError, "sidecar request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamError, "failed to read sidecar response", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return &VoiceResult{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        data,
	}, nil
}
