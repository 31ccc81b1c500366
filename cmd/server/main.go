package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"

	"verba/agent/internal/api"
	"verba/agent/internal/classifier"
	"verba/agent/internal/config"
	"verba/agent/internal/lexicon"
	"verba/agent/internal/loop"
	"verba/agent/internal/store"
	"verba/agent/internal/workerws"
)

func main() {
	// Load .env file if present (ignored if missing)
	_ = godotenv.Load()

	cfg := config.Load()

	lex := loadLexicon(cfg)
	cls := classifier.New(lex)

	st := store.New()
	reg := workerws.NewRegistry()
	disp := loop.New(reg, st, cls, cfg.Loop.TTSTimeoutSec)

	wss := workerws.NewServer(cfg, st, reg)
	wss.OnMessage = disp.OnMessage

	h := api.NewHandlers(cfg, st, disp, reg, lex)
	mux := http.NewServeMux()
	mux.Handle("/", api.NewRouter(h))
	mux.HandleFunc("/ws/worker", wss.HandleWorkerWS)
	mux.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           logMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Printf("shutdown signal received; stopping server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Printf("server starting on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Println("server error:", err)
		os.Exit(1)
	}
}

// loadLexicon builds the filter lexicon: the built-in sets, optionally
// replaced from FILTER_LEXICON_FILE, with the configured debounce window.
func loadLexicon(cfg config.Config) *lexicon.Lexicon {
	lex := lexicon.Default()
	if cfg.Filter.LexiconFile != "" {
		var err error
		lex, err = lexicon.LoadFile(afero.NewOsFs(), cfg.Filter.LexiconFile)
		if err != nil {
			log.Fatalf("lexicon: %v", err)
		}
	}
	if cfg.Filter.DebounceMS > 0 {
		lex.Debounce = time.Duration(cfg.Filter.DebounceMS) * time.Millisecond
	}
	return lex
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
