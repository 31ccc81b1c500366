package lexicon

import (
	"strings"
	"time"
)

// PhraseSet is a set of lowercase phrases. A phrase is one or more
// space-separated words; membership is exact match.
type PhraseSet map[string]struct{}

func NewPhraseSet(phrases []string) PhraseSet {
	ps := make(PhraseSet, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		ps[p] = struct{}{}
	}
	return ps
}

func (ps PhraseSet) Contains(s string) bool {
	_, ok := ps[s]
	return ok
}

func (ps PhraseSet) Len() int { return len(ps) }

// MaxWords returns the word count of the longest phrase in the set.
func (ps PhraseSet) MaxWords() int {
	max := 0
	for p := range ps {
		if n := 1 + strings.Count(p, " "); n > max {
			max = n
		}
	}
	return max
}

// Lexicon holds the phrase sets and debounce window for the interruption
// filter. It is immutable after construction; build one at startup and pass
// it into the classifier.
type Lexicon struct {
	Ignore    PhraseSet
	Interrupt PhraseSet
	Filler    PhraseSet
	StopWords PhraseSet
	Debounce  time.Duration
}

// Callers are expected to pass already-lowercased tokens; lookups do not
// re-normalize.

func (l *Lexicon) IsIgnorePhrase(tok string) bool    { return l.Ignore.Contains(tok) }
func (l *Lexicon) IsInterruptPhrase(tok string) bool { return l.Interrupt.Contains(tok) }
func (l *Lexicon) IsFillerPhrase(tok string) bool    { return l.Filler.Contains(tok) }
func (l *Lexicon) IsStopWord(tok string) bool        { return l.StopWords.Contains(tok) }

// IsAcceptable reports whether a token is tolerable while the agent speaks:
// either a backchannel acknowledgement or a connective filler.
func (l *Lexicon) IsAcceptable(tok string) bool {
	return l.Ignore.Contains(tok) || l.Filler.Contains(tok)
}

// MaxPhraseWords returns the longest phrase length across the ignore,
// interrupt and filler sets. The classifier uses it to bound its
// adjacent-token join window.
func (l *Lexicon) MaxPhraseWords() int {
	max := l.Ignore.MaxWords()
	if n := l.Interrupt.MaxWords(); n > max {
		max = n
	}
	if n := l.Filler.MaxWords(); n > max {
		max = n
	}
	if max < 1 {
		max = 1
	}
	return max
}
