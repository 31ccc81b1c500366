// Package classifier decides what to do with a user transcript that arrives
// while the agent may be speaking: swallow it as a backchannel, interrupt the
// agent's utterance, or hand it to normal response generation.
package classifier

import (
	"fmt"
	"time"

	"verba/agent/internal/lexicon"
)

// Action is the outcome of classifying one finalized transcript.
type Action int

const (
	// ActionSwallow discards the transcript (passive backchannel or noise).
	ActionSwallow Action = iota
	// ActionRespond forwards the transcript to response generation.
	ActionRespond
	// ActionInterrupt stops the agent's current utterance and then responds.
	ActionInterrupt
)

func (a Action) String() string {
	switch a {
	case ActionSwallow:
		return "swallow"
	case ActionRespond:
		return "respond"
	case ActionInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}

// Result pairs the chosen action with a human-readable justification citing
// the tokens that drove it. Reason is diagnostic text, not for branching.
type Result struct {
	Action Action
	Reason string
}

// DebounceState is the single-slot cooldown for one conversation session.
// It records when the last speaking-context decision was made so that rapid
// successive finals from streaming STT do not each re-trigger a stop.
// Not safe for concurrent use; the session owner must serialize Classify
// calls (the loop dispatcher holds a per-session lock).
type DebounceState struct {
	last time.Time
}

// Reset begins a new debounce epoch. Called when the agent starts a new
// utterance (silent -> speaking transition).
func (d *DebounceState) Reset() { d.last = time.Time{} }

func (d *DebounceState) cooling(now time.Time, window time.Duration) bool {
	return !d.last.IsZero() && now.Sub(d.last) < window
}

// Classifier applies the lexicon-driven interruption filter. It is stateless
// per call; the only mutable state is the caller-supplied DebounceState.
type Classifier struct {
	lex *lexicon.Lexicon
}

// New builds a classifier around an immutable lexicon. A nil lexicon is a
// contract violation by the caller.
func New(lex *lexicon.Lexicon) *Classifier {
	if lex == nil {
		panic("classifier: nil lexicon")
	}
	return &Classifier{lex: lex}
}

// Classify maps one finalized transcript to an action given whether the
// agent currently holds the floor. Every input, including empty and
// punctuation-only strings, produces a defined result; no errors.
//
// deb may be nil for one-shot use (no debounce gating), otherwise it must be
// the session's state and calls must be serialized per session.
func (c *Classifier) Classify(transcript string, agentSpeaking bool, now time.Time, deb *DebounceState) Result {
	tokens := c.Tokenize(transcript)
	metricTranscriptTokens.Observe(float64(len(tokens)))

	// VAD blips, pure punctuation, stop-word-only fragments.
	if len(tokens) == 0 {
		return c.emit(Result{ActionSwallow, "no tokens"})
	}

	// The filter only applies while the agent holds the floor.
	if !agentSpeaking {
		return c.emit(Result{ActionRespond, "agent silent, treat as normal input"})
	}

	// Debounced calls do not refresh the cooldown timestamp.
	if deb != nil && deb.cooling(now, c.lex.Debounce) {
		metricDebounced.Inc()
		return c.emit(Result{ActionSwallow,
			fmt.Sprintf("debounced: duplicate within %dms of prior decision", c.lex.Debounce.Milliseconds())})
	}

	res := c.classifySpeaking(tokens)
	if deb != nil {
		deb.last = now
	}
	return c.emit(res)
}

// classifySpeaking applies the speaking-agent rules in priority order:
// interrupt phrases dominate, then all-acceptable swallows, then anything
// unrecognized interrupts conservatively.
func (c *Classifier) classifySpeaking(tokens []string) Result {
	if matches := c.findInterrupts(tokens); len(matches) > 0 {
		return Result{ActionInterrupt, fmt.Sprintf("contains interrupt words: %v", matches)}
	}
	if c.allAcceptable(tokens) {
		return Result{ActionSwallow, fmt.Sprintf("only passive/filler words: %v", tokens)}
	}
	return Result{ActionInterrupt, fmt.Sprintf("mixed content detected: %v", tokens)}
}

// windowLimit bounds phrase matching to joins of up to three adjacent
// tokens. Longer lexicon phrases would be unmatchable; none exist today.
const windowLimit = 3

func (c *Classifier) maxWindow() int {
	n := c.lex.MaxPhraseWords()
	if n > windowLimit {
		n = windowLimit
	}
	return n
}

// findInterrupts returns every interrupt phrase found in the token stream,
// preferring the longest adjacent-token join at each position.
func (c *Classifier) findInterrupts(tokens []string) []string {
	maxN := c.maxWindow()
	var matches []string
	for i := 0; i < len(tokens); {
		matched := false
		for n := min(maxN, len(tokens)-i); n >= 1; n-- {
			if phrase := join(tokens[i : i+n]); c.lex.IsInterruptPhrase(phrase) {
				matches = append(matches, phrase)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return matches
}

// allAcceptable reports whether the whole token stream can be covered by
// ignore/filler phrases, again preferring longer joins.
func (c *Classifier) allAcceptable(tokens []string) bool {
	maxN := c.maxWindow()
next:
	for i := 0; i < len(tokens); {
		for n := min(maxN, len(tokens)-i); n >= 1; n-- {
			if c.lex.IsAcceptable(join(tokens[i : i+n])) {
				i += n
				continue next
			}
		}
		return false
	}
	return true
}

func join(tokens []string) string {
	if len(tokens) == 1 {
		return tokens[0]
	}
	s := tokens[0]
	for _, t := range tokens[1:] {
		s += " " + t
	}
	return s
}

func (c *Classifier) emit(res Result) Result {
	metricDecisions.WithLabelValues(res.Action.String()).Inc()
	return res
}
