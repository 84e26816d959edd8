// Package server exposes the claim pipeline over a websocket session
// endpoint. A client streams finalized transcript events in and receives
// claim-state updates out; each connection owns its own pipeline.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hearsay-live/hearsay/internal/model"
	"github.com/hearsay-live/hearsay/internal/pipeline"
)

// TranscriptEvent is the inbound wire format. Only final fragments feed
// the claim pipeline; interim text is display-only on the client.
type TranscriptEvent struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"is_final"`

	// Claim, when set, is a manually submitted claim instead of
	// transcript text.
	Claim string `json:"claim,omitempty"`
	Force bool   `json:"force,omitempty"`
}

// Message is the outbound wire format. Every message is a claim-state
// update; each connection owns a fresh pipeline, so there is no backlog
// to replay on connect.
type Message struct {
	Type  string           `json:"type"` // "claim"
	Claim *model.ClaimView `json:"claim"`
}

// PipelineFactory builds a fresh pipeline for each session.
type PipelineFactory func() *pipeline.Pipeline

// Server runs the websocket session endpoint.
type Server struct {
	cfg      model.ServerConfig
	log      *zap.SugaredLogger
	factory  PipelineFactory
	upgrader websocket.Upgrader
}

// New creates a session server.
func New(cfg model.ServerConfig, factory PipelineFactory, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{
		cfg:     cfg,
		log:     log,
		factory: factory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browser clients connect from arbitrary origins; auth is the
			// deployment's concern, not the session protocol's.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler for the session endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/session", s.handleSession)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Run serves until the context ends.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Infow("session server listening", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	if s.cfg.MaxMessageBytes > 0 {
		conn.SetReadLimit(s.cfg.MaxMessageBytes)
	}

	p := s.factory()
	p.Start()
	defer p.Close()

	s.log.Infow("session started", "remote", r.RemoteAddr)

	// Single writer goroutine; gorilla connections do not allow
	// concurrent writes.
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case view := <-p.Updates():
				if err := conn.WriteJSON(Message{Type: "claim", Claim: &view}); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	var limiter *rate.Limiter
	if s.cfg.FragmentsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.FragmentsPerSecond), int(s.cfg.FragmentsPerSecond)+1)
	}

	for {
		var event TranscriptEvent
		if err := conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warnw("session read error", "remote", r.RemoteAddr, "error", err)
			}
			break
		}

		if limiter != nil && !limiter.Allow() {
			s.log.Debugw("dropping fragment over rate limit", "remote", r.RemoteAddr)
			continue
		}

		if event.Claim != "" {
			p.SubmitClaim(event.Claim, event.Force, event.Force)
			continue
		}
		p.Ingest(event.Text, event.IsFinal)
	}

	s.log.Infow("session ended", "remote", r.RemoteAddr)
}
