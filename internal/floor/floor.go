// Package floor tracks who holds the conversational floor for one session
// and turns classified transcripts into stop/respond decisions.
package floor

import (
	"time"

	"verba/agent/internal/classifier"
)

// Decision represents the action the floor manager wants the runtime to take
// for one transcript.
type Decision struct {
	Action classifier.Action
	Reason string

	// ShouldStop asks the runtime to cancel the active utterance.
	ShouldStop      bool
	StopUtteranceID string

	// ShouldRespond asks the runtime to forward the transcript to response
	// generation. Set for both Respond and Interrupt outcomes.
	ShouldRespond bool
}

// Manager owns the agent-speaking flag and the debounce state for a single
// session. Not safe for concurrent use; the loop dispatcher serializes
// access per session.
type Manager struct {
	cls *classifier.Classifier

	speaking           bool
	activeUtteranceID  string
	debounce           classifier.DebounceState
	lastTTSStartedTsMs int64
}

func New(cls *classifier.Classifier) *Manager { return &Manager{cls: cls} }

func (m *Manager) Speaking() bool { return m.speaking }

func (m *Manager) OnTTSStarted(utteranceID string, tsMs int64) {
	m.speaking = true
	m.activeUtteranceID = utteranceID
	m.lastTTSStartedTsMs = tsMs
	// New speaking epoch: the debounce clock restarts.
	m.debounce.Reset()
}

func (m *Manager) OnTTSStopped(utteranceID string, tsMs int64, reason string) {
	// Regardless of ID match, stopping clears speaking.
	m.speaking = false
	m.activeUtteranceID = ""
}

// OnTranscript classifies a finalized transcript against the current floor
// state and maps the result to runtime actions.
func (m *Manager) OnTranscript(text string, now time.Time) Decision {
	res := m.cls.Classify(text, m.speaking, now, &m.debounce)
	d := Decision{Action: res.Action, Reason: res.Reason}
	switch res.Action {
	case classifier.ActionInterrupt:
		d.ShouldStop = m.speaking
		d.StopUtteranceID = m.activeUtteranceID
		d.ShouldRespond = true
	case classifier.ActionRespond:
		d.ShouldRespond = true
	}
	return d
}
