// cmd/brasilviral/server.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// StatusServer exposes health and run-counter endpoints while the
// daemon is running.
type StatusServer struct {
	pipeline *Pipeline
	srv      *http.Server
}

// NewStatusServer builds the HTTP status surface on addr.
func NewStatusServer(addr string, pipeline *Pipeline) *StatusServer {
	s := &StatusServer{pipeline: pipeline}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Start serves in the background; ListenAndServe errors other than a
// clean shutdown are logged.
func (s *StatusServer) Start() {
	go func() {
		GetLogger().Info("Status server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			GetLogger().Error("Status server: %v", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *StatusServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *StatusServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "ok",
		"version": AppVersion,
	})
}

func (s *StatusServer) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.pipeline.StateSnapshot())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		GetLogger().Warning("Status response encode: %v", err)
	}
}
