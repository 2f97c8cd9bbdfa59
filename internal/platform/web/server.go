package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

//go:embed static/index.html
var indexHTML []byte

// Handler returns the spectator routes: the viewer page at /, the feed at
// /ws, and the latest snapshot at /snapshot.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.serveIndex)
	mux.HandleFunc("GET /ws", h.ServeWS)
	mux.HandleFunc("GET /snapshot", h.serveSnapshot)
	return mux
}

func (h *Hub) serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML) //nolint:errcheck // Client went away
}

func (h *Hub) serveSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.Latest()
	if !ok {
		http.Error(w, "no game in progress", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		h.logger.Warn("write snapshot", "error", err)
	}
}

// Server runs a hub and its HTTP routes on one address.
type Server struct {
	hub  *Hub
	http *http.Server
	ln   net.Listener
}

// Listen binds addr for hub. Serve must be called to accept connections.
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("web: listen %s: %w", addr, err)
	}
	return &Server{
		hub: hub,
		ln:  ln,
		http: &http.Server{
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Serve runs the hub and the HTTP server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	hubCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(s.ln)
	}()

	s.hub.logger.Info("spectator feed listening", "address", s.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	}
}
