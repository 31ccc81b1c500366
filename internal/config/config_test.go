package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("FILTER_DEBOUNCE_MS")
	os.Unsetenv("FILTER_LEXICON_FILE")

	c := Load()

	if c.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", c.Server.Port)
	}
	if c.Server.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", c.Server.LogLevel)
	}
	if c.Filter.DebounceMS != 150 {
		t.Fatalf("expected default debounce 150ms, got %d", c.Filter.DebounceMS)
	}
	if c.Loop.TTSTimeoutSec != 60 {
		t.Fatalf("expected default tts timeout 60s, got %d", c.Loop.TTSTimeoutSec)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	os.Setenv("FILTER_DEBOUNCE_MS", "300")
	defer os.Unsetenv("FILTER_DEBOUNCE_MS")

	c := Load()
	if c.Filter.DebounceMS != 300 {
		t.Fatalf("expected debounce 300ms from env, got %d", c.Filter.DebounceMS)
	}
}
