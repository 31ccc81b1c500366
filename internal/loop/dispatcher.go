// Package loop dispatches worker messages for each session: it tracks TTS
// playback state, runs the interruption filter on finalized transcripts and
// sends stop/respond commands back to the worker.
package loop

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"verba/agent/internal/classifier"
	"verba/agent/internal/floor"
	"verba/agent/internal/store"
	"verba/agent/internal/workerws"
)

type Dispatcher struct {
	reg   *workerws.Registry
	store *store.Store
	cls   *classifier.Classifier

	ttsTimeoutSec int

	mu       sync.Mutex
	sessions map[string]*sessState
}

type sessState struct {
	// mu serializes message handling per session; the debounce state inside
	// the floor manager must never see concurrent classification calls.
	mu sync.Mutex

	fsm          *floor.Manager
	stopping     bool
	pendingCmdID string
	ttsStartRecv time.Time
	bargeInArmed bool

	lastStopTsMs   int64
	lastStopRecvMs int64
}

func New(reg *workerws.Registry, st *store.Store, cls *classifier.Classifier, ttsTimeoutSec int) *Dispatcher {
	return &Dispatcher{reg: reg, store: st, cls: cls, ttsTimeoutSec: ttsTimeoutSec, sessions: make(map[string]*sessState)}
}

func (d *Dispatcher) state(sessionID string) *sessState {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.sessions[sessionID]
	if s == nil {
		s = &sessState{fsm: floor.New(d.cls)}
		d.sessions[sessionID] = s
		gaugeSessions.Set(float64(len(d.sessions)))
	}
	return s
}

// OnMessage processes a worker message and may send commands to the worker.
func (d *Dispatcher) OnMessage(sessionID string, msg workerws.Message) {
	s := d.state(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	nowRecvMs := time.Now().UnixMilli()

	switch msg.Type {
	case "tts_started":
		s.fsm.OnTTSStarted(msg.UtteranceID, msg.TsMs)
		s.ttsStartRecv = time.Now()
		s.bargeInArmed = false
		d.store.AppendEvent(sessionID, "tts_started", map[string]any{"utterance_id": msg.UtteranceID})
	case "tts_first_audio":
		// Arm barge-in only after first audio is emitted, to avoid prebuffer cut-offs
		s.bargeInArmed = true
		d.store.AppendEvent(sessionID, "tts_first_audio", nil)
	case "tts_stopped":
		reason := ""
		if msg.Payload != nil {
			if v, ok := msg.Payload["reason"].(string); ok {
				reason = v
			}
		}
		s.fsm.OnTTSStopped(msg.UtteranceID, msg.TsMs, reason)
		s.bargeInArmed = false
		s.ttsStartRecv = time.Time{}
		if reason == "interrupted" && s.lastStopTsMs > 0 {
			d.store.AppendEvent(sessionID, "barge_in_latency", map[string]any{
				"worker_ms":    msg.TsMs - s.lastStopTsMs,
				"backend_ms":   nowRecvMs - s.lastStopRecvMs,
				"utterance_id": msg.UtteranceID,
			})
		}
		s.stopping = false
		s.pendingCmdID = ""
		d.store.AppendEvent(sessionID, "tts_stopped", map[string]any{"utterance_id": msg.UtteranceID, "reason": reason})
	case "transcript_interim":
		// Interims are logged only; classification runs on finals.
		metricTranscripts.WithLabelValues("interim").Inc()
	case "transcript_final":
		metricTranscripts.WithLabelValues("final").Inc()
		d.handleFinal(s, sessionID, msg, nowRecvMs)
	case "cmd_ack":
		if msg.CommandID != "" && msg.CommandID == s.pendingCmdID {
			d.store.AppendEvent(sessionID, "cmd_ack", map[string]any{"command_id": msg.CommandID})
		} else {
			d.store.AppendEvent(sessionID, "cmd_ack", map[string]any{"command_id": msg.CommandID, "note": "unexpected"})
		}
	case "worker_hello":
		// Reset floor state; worker restates playback if any
		s.fsm = floor.New(d.cls)
		s.stopping = false
		s.pendingCmdID = ""
		s.bargeInArmed = false
	}

	// Safety timeout: a worker that never reports tts_stopped would pin the
	// speaking flag forever.
	if !s.ttsStartRecv.IsZero() && time.Since(s.ttsStartRecv) > time.Duration(d.ttsTimeoutSec)*time.Second {
		s.fsm = floor.New(d.cls)
		s.stopping = false
		s.pendingCmdID = ""
		s.ttsStartRecv = time.Time{}
		s.bargeInArmed = false
		d.store.AppendEvent(sessionID, "tts_timeout_reset", nil)
	}
}

// handleFinal runs the filter on a finalized transcript and acts on the
// decision: stop the active utterance, forward to response generation, or
// discard. Caller holds s.mu.
func (d *Dispatcher) handleFinal(s *sessState, sessionID string, msg workerws.Message, nowRecvMs int64) {
	dec := s.fsm.OnTranscript(msg.Text, time.Now())
	d.store.AppendEvent(sessionID, "decision", map[string]any{
		"action": dec.Action.String(),
		"reason": dec.Reason,
		"text":   msg.Text,
	})
	log.Printf("[loop] decision sid=%s action=%s reason=%s", sessionID, dec.Action, dec.Reason)

	if dec.ShouldStop && s.bargeInArmed && !s.stopping {
		s.stopping = true
		cmdID := uuid.New().String()
		s.pendingCmdID = cmdID
		s.lastStopTsMs = msg.TsMs
		s.lastStopRecvMs = nowRecvMs
		out := workerws.Message{
			Type:        "stop_tts",
			TsMs:        time.Now().UnixMilli(),
			SessionID:   sessionID,
			CommandID:   cmdID,
			UtteranceID: dec.StopUtteranceID,
			Payload:     map[string]any{"mode": "current"},
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = d.reg.SendJSON(ctx, sessionID, out)
		cancel()
		metricStopSent.Inc()
		d.store.AppendEvent(sessionID, "stop_tts_sent", map[string]any{"command_id": cmdID, "utterance_id": dec.StopUtteranceID})
	}

	if dec.ShouldRespond {
		out := workerws.Message{
			Type:      "respond",
			TsMs:      time.Now().UnixMilli(),
			SessionID: sessionID,
			Text:      msg.Text,
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = d.reg.SendJSON(ctx, sessionID, out)
		cancel()
		metricRespondSent.Inc()
		d.store.AppendEvent(sessionID, "respond_sent", map[string]any{"text": msg.Text})
	}
}
