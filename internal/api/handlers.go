package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"verba/agent/internal/auth"
	"verba/agent/internal/config"
	"verba/agent/internal/health"
	"verba/agent/internal/lexicon"
	"verba/agent/internal/loop"
	"verba/agent/internal/store"
	"verba/agent/internal/types"
	"verba/agent/internal/workerws"
)

type Handlers struct {
	cfg   config.Config
	store *store.Store
	disp  *loop.Dispatcher
	reg   *workerws.Registry
	lex   *lexicon.Lexicon
}

func NewHandlers(cfg config.Config, st *store.Store, disp *loop.Dispatcher, reg *workerws.Registry, lex *lexicon.Lexicon) *Handlers {
	return &Handlers{cfg: cfg, store: st, disp: disp, reg: reg, lex: lex}
}

func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	sess := &types.Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Status:    "created",
	}
	_ = h.store.CreateSession(sess)
	h.store.AppendEvent(id, "session_created", nil)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id": id,
		"created_at": sess.CreatedAt,
	})
}

func (h *Handlers) HandleListEvents(w http.ResponseWriter, r *http.Request, id string) {
	sess := h.store.GetSession(id)
	if sess == nil {
		http.NotFound(w, r)
		return
	}
	events := h.store.ListEvents(id)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id": id,
		"events":     events,
	})
}

func (h *Handlers) HandleMintWorkerToken(w http.ResponseWriter, r *http.Request, id string) {
	sess := h.store.GetSession(id)
	if sess == nil {
		http.NotFound(w, r)
		return
	}
	if h.cfg.Worker.TokenSecret == "" {
		http.Error(w, "worker auth not configured", http.StatusBadRequest)
		return
	}
	exp := time.Now().Add(time.Duration(h.cfg.Worker.TokenExpMin) * time.Minute).Unix()
	token := auth.GenerateWorkerToken(h.cfg.Worker.TokenSecret, id, exp)
	h.store.AppendEvent(id, "worker_token_minted", nil)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"token": token, "expires_at": exp})
}

// HandleClassifyTranscript injects a finalized transcript into the session's
// dispatch loop and returns the recorded decision. Debug surface; the normal
// path is the worker websocket.
func (h *Handlers) HandleClassifyTranscript(w http.ResponseWriter, r *http.Request, id string) {
	sess := h.store.GetSession(id)
	if sess == nil {
		http.NotFound(w, r)
		return
	}
	var body struct {
		Text string `json:"text"`
		TsMs int64  `json:"ts_ms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.TsMs == 0 {
		body.TsMs = time.Now().UnixMilli()
	}

	h.disp.OnMessage(id, workerws.Message{Type: "transcript_final", SessionID: id, Text: body.Text, TsMs: body.TsMs})

	// The decision is the most recent decision event for this session.
	var decision map[string]any
	events := h.store.ListEvents(id)
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == "decision" {
			decision = events[i].Payload
			break
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"session_id": id, "decision": decision})
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	st := health.CheckAll(h.lex, h.reg.Count())
	w.Header().Set("Content-Type", "application/json")
	if !st.OK {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(st)
}
