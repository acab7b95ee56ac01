// Package page owns the analyze interaction: the controls a front end
// exposes, the sample loader and the request orchestration.
package page

import (
	"github.com/f3rmion/baitlens/internal/render"
)

// Trigger labels.
const (
	LabelIdle = "Analyze"
	LabelBusy = "Analyzing..."
)

// Surface is the set of controls the controller drives. A front end binds
// its widgets behind it; State is the in-memory implementation.
type Surface interface {
	// Text returns the current input value.
	Text() string
	// SetText replaces the input value.
	SetText(text string)
	// EmbeddingsEnabled reports the embeddings toggle.
	EmbeddingsEnabled() bool

	// SetTrigger sets the analyze control's disabled state and label.
	SetTrigger(disabled bool, label string)

	ShowError(message string)
	HideError()

	// ReplaceResults swaps the whole results area. Nil clears it.
	ReplaceResults(cards []render.Card)
	SetMetaSummary(summary string)
	SetRaw(raw string)
}

// State is an in-memory Surface holding everything a front end draws.
// It is not safe for concurrent use; a single event loop owns it.
type State struct {
	text       string
	embeddings bool

	triggerDisabled bool
	triggerLabel    string

	lastError    string
	errorVisible bool

	cards   []render.Card
	summary string
	raw     string
}

// NewState returns the state of a freshly loaded page.
func NewState(embeddings bool) *State {
	return &State{
		embeddings:   embeddings,
		triggerLabel: LabelIdle,
	}
}

func (s *State) Text() string        { return s.text }
func (s *State) SetText(text string) { s.text = text }

func (s *State) EmbeddingsEnabled() bool { return s.embeddings }

// SetEmbeddings sets the embeddings toggle.
func (s *State) SetEmbeddings(on bool) { s.embeddings = on }

// ToggleEmbeddings flips the embeddings toggle.
func (s *State) ToggleEmbeddings() { s.embeddings = !s.embeddings }

func (s *State) SetTrigger(disabled bool, label string) {
	s.triggerDisabled = disabled
	s.triggerLabel = label
}

// Busy reports whether the trigger is disabled by an in-flight request.
func (s *State) Busy() bool { return s.triggerDisabled }

// TriggerLabel returns the analyze control's label.
func (s *State) TriggerLabel() string { return s.triggerLabel }

func (s *State) ShowError(message string) {
	s.lastError = message
	s.errorVisible = true
}

func (s *State) HideError() {
	s.errorVisible = false
}

// Error returns the banner text and whether the banner is visible.
func (s *State) Error() (string, bool) {
	return s.lastError, s.errorVisible
}

func (s *State) ReplaceResults(cards []render.Card) {
	s.cards = cards
}

// Cards returns the cards currently in the results area.
func (s *State) Cards() []render.Card { return s.cards }

func (s *State) SetMetaSummary(summary string) { s.summary = summary }

// MetaSummary returns the summary line.
func (s *State) MetaSummary() string { return s.summary }

func (s *State) SetRaw(raw string) { s.raw = raw }

// Raw returns the mirrored response body.
func (s *State) Raw() string { return s.raw }
