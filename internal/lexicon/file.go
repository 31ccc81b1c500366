package lexicon

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/afero"
)

// fileFormat is the on-disk JSON shape for a custom lexicon. Omitted fields
// fall back to the built-in defaults.
type fileFormat struct {
	Ignore     []string `json:"ignore"`
	Interrupt  []string `json:"interrupt"`
	Filler     []string `json:"filler"`
	StopWords  []string `json:"stop_words"`
	DebounceMS int      `json:"debounce_ms"`
}

// LoadFile reads a lexicon definition from fs, overlaying it on the
// defaults. Empty word lists in the file are rejected: a lexicon with no
// interrupt phrases would make barge-in unreachable.
func LoadFile(fs afero.Fs, path string) (*Lexicon, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	var f fileFormat
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	l := Default()
	if f.Ignore != nil {
		l.Ignore = NewPhraseSet(f.Ignore)
	}
	if f.Interrupt != nil {
		l.Interrupt = NewPhraseSet(f.Interrupt)
	}
	if f.Filler != nil {
		l.Filler = NewPhraseSet(f.Filler)
	}
	if f.StopWords != nil {
		l.StopWords = NewPhraseSet(f.StopWords)
	}
	if f.DebounceMS > 0 {
		l.Debounce = time.Duration(f.DebounceMS) * time.Millisecond
	}

	if l.Ignore.Len() == 0 {
		return nil, fmt.Errorf("lexicon %s: ignore set is empty", path)
	}
	if l.Interrupt.Len() == 0 {
		return nil, fmt.Errorf("lexicon %s: interrupt set is empty", path)
	}
	return l, nil
}
