package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"verba/agent/internal/classifier"
	"verba/agent/internal/config"
	"verba/agent/internal/lexicon"
	"verba/agent/internal/loop"
	"verba/agent/internal/store"
	"verba/agent/internal/workerws"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	os.Unsetenv("WORKER_TOKEN_SECRET")
	cfg := config.Load()
	st := store.New()
	lex := lexicon.Default()
	reg := workerws.NewRegistry()
	disp := loop.New(reg, st, classifier.New(lex), 60)
	h := NewHandlers(cfg, st, disp, reg, lex)
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, st
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	defer resp.Body.Close()
	var out struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.SessionID == "" {
		t.Fatal("empty session id")
	}
	return out.SessionID
}

func TestCreateSessionAndListEvents(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	resp, err := http.Get(srv.URL + "/sessions/" + id + "/events")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Events []struct {
			Type string `json:"type"`
		} `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Events) == 0 || out.Events[0].Type != "session_created" {
		t.Fatalf("expected session_created event, got %+v", out.Events)
	}
}

func TestUnknownSession404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/sessions/unknown/events")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/sessions/unknown/transcript", "application/json", bytes.NewBufferString(`{"text":"stop"}`))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestClassifyTranscriptEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	resp, err := http.Post(srv.URL+"/sessions/"+id+"/transcript", "application/json",
		bytes.NewBufferString(`{"text":"what is the weather"}`))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Decision map[string]any `json:"decision"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Agent is silent for a fresh session, so a content transcript responds.
	if out.Decision["action"] != "respond" {
		t.Fatalf("expected respond, got %v", out.Decision)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.OK {
		t.Fatal("expected healthy status")
	}
}

func TestMintWorkerTokenRequiresSecret(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createSession(t, srv)

	// No WORKER_TOKEN_SECRET configured in tests.
	resp, err := http.Post(srv.URL+"/sessions/"+id+"/worker-token", "application/json", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
