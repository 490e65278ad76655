package prompts

import (
	"fmt"
	"sort"
	"strings"

	"Mufasa-Assistant/server/internal/apperr"
)

// ModeChat is the default persona used when a request names no mode.
const ModeChat = "chat"

// ModePortal annotates the user prompt with portal routing metadata.
const ModePortal = "portal"

const chatPersona = "You are Mufasa — a Pan-African teacher, " +
	"guiding with wisdom, love, and strength. " +
	"Speak clearly and motivate learning. " +
	"If the user asks about culture or languages, " +
	"answer in an inspiring but factual tone."

const portalPersona = "You are Mufasa Real Assistant, a guide using " +
	"Afrocentric, unpolarized knowledge schemas."

const storyboardPersona = "You are a presentation writer. " +
	"Respond with a single JSON object and nothing else. The object has " +
	"fields: title (string), topic (string), audience (string), and slides " +
	"(array). Each slide has fields: title (string), bullets (array of " +
	"strings), narration (string). Do not wrap the JSON in markdown fences."

// personas maps a mode selector to its system persona text. Unknown modes
// fall back to the chat persona.
var personas = map[string]string{
	ModeChat:   chatPersona,
	ModePortal: portalPersona,
}

// NormalizeQuestion trims the question and rejects empty input.
func NormalizeQuestion(question string) (string, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return "", apperr.New(apperr.KindInvalidInput, "question is required")
	}
	return q, nil
}

// SystemPrompt returns the persona text for mode, with the serialized
// context mapping appended when present. Deterministic: context keys are
// emitted in sorted order.
func SystemPrompt(mode string, context map[string]string) string {
	persona, ok := personas[mode]
	if !ok {
		persona = chatPersona
	}
	if len(context) == 0 {
		return persona
	}

	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nContext:\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s: %s\n", k, context[k]))
	}
	return strings.TrimRight(b.String(), "\n")
}

// UserPrompt returns the user-role message: the trimmed question, prefixed
// with portal/session annotations when routing metadata is present.
func UserPrompt(question, portalID, sessionID string) string {
	var annotations []string
	if portalID != "" {
		annotations = append(annotations, fmt.Sprintf("[PORTAL_ID=%s]", portalID))
	}
	if sessionID != "" {
		annotations = append(annotations, fmt.Sprintf("[SESSION=%s]", sessionID))
	}
	if len(annotations) == 0 {
		return question
	}
	return strings.Join(annotations, " ") + " " + question
}

// StoryboardSystemPrompt returns the deck-generation persona with the slide
// bound baked in. maxSlides is assumed already clamped by the caller.
func StoryboardSystemPrompt(maxSlides int) string {
	return fmt.Sprintf("%s The slides array must contain at most %d slides.",
		storyboardPersona, maxSlides)
}

// StoryboardUserPrompt returns the user-role message for deck generation.
func StoryboardUserPrompt(question string) string {
	return fmt.Sprintf("Create a slideshow that answers: %s", question)
}
