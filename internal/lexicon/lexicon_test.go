package lexicon

import (
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestDefaultLookups(t *testing.T) {
	l := Default()

	if !l.IsIgnorePhrase("yeah") {
		t.Error("yeah should be an ignore phrase")
	}
	if !l.IsInterruptPhrase("stop") {
		t.Error("stop should be an interrupt phrase")
	}
	if !l.IsInterruptPhrase("hold on") {
		t.Error("hold on should be an interrupt phrase")
	}
	if !l.IsFillerPhrase("but") {
		t.Error("but should be a filler phrase")
	}
	if !l.IsStopWord("the") {
		t.Error("the should be a stop word")
	}
	if l.IsInterruptPhrase("yeah") {
		t.Error("yeah should not be an interrupt phrase")
	}
}

func TestIsAcceptableUnion(t *testing.T) {
	l := Default()
	if !l.IsAcceptable("yeah") {
		t.Error("ignore phrase should be acceptable")
	}
	if !l.IsAcceptable("but") {
		t.Error("filler phrase should be acceptable")
	}
	if l.IsAcceptable("stop") {
		t.Error("interrupt phrase should not be acceptable")
	}
	if l.IsAcceptable("weather") {
		t.Error("unknown word should not be acceptable")
	}
}

func TestMaxPhraseWords(t *testing.T) {
	l := Default()
	// "don't say that" is three words.
	if got := l.MaxPhraseWords(); got != 3 {
		t.Fatalf("expected max phrase length 3, got %d", got)
	}
}

func TestNewPhraseSetNormalizes(t *testing.T) {
	ps := NewPhraseSet([]string{" Hold On ", "STOP", ""})
	if !ps.Contains("hold on") {
		t.Error("expected lowercased trimmed phrase")
	}
	if !ps.Contains("stop") {
		t.Error("expected lowercased phrase")
	}
	if ps.Len() != 2 {
		t.Fatalf("empty input should be dropped, len=%d", ps.Len())
	}
}

func TestLoadFileOverlay(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `{"interrupt": ["halt", "enough"], "debounce_ms": 300}`
	if err := afero.WriteFile(fs, "/etc/lexicon.json", []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l, err := LoadFile(fs, "/etc/lexicon.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !l.IsInterruptPhrase("halt") {
		t.Error("custom interrupt phrase missing")
	}
	if l.IsInterruptPhrase("stop") {
		t.Error("default interrupt set should have been replaced")
	}
	if !l.IsIgnorePhrase("yeah") {
		t.Error("ignore set should fall back to defaults")
	}
	if l.Debounce != 300*time.Millisecond {
		t.Errorf("debounce should be 300ms, got %v", l.Debounce)
	}
}

func TestLoadFileRejectsEmptySets(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/lex.json", []byte(`{"interrupt": []}`), 0644)
	if _, err := LoadFile(fs, "/lex.json"); err == nil {
		t.Fatal("expected error for empty interrupt set")
	}
}

func TestLoadFileMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := LoadFile(fs, "/nope.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
