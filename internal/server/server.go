// Package server provides the HTTP REST API over one profile store handle.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-autofill/internal/config"
	"github.com/jonathan/resume-autofill/internal/store"
)

// Server exposes the profile store, reconciler and mutation applier over
// REST. It owns exactly one store handle, passed in at construction; there is
// no package-level profile state.
type Server struct {
	httpServer *http.Server
	store      *store.Store
	jwtService *JWTService // nil when the bearer guard is disabled
}

// Config holds server configuration.
type Config struct {
	Port      int
	JWTSecret string // empty disables authentication
}

// New creates a server over an already-constructed store.
func New(cfg Config, st *store.Store) (*Server, error) {
	s := &Server{store: st}

	if cfg.JWTSecret != "" {
		jwtConfig, err := config.NewJWTConfigWithSecret(cfg.JWTSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /profile", s.requireAuth(s.handleGetProfile))
	mux.HandleFunc("PUT /profile", s.requireAuth(s.handlePutProfile))
	mux.HandleFunc("DELETE /profile", s.requireAuth(s.handleDeleteProfile))
	mux.HandleFunc("PATCH /profile/field", s.requireAuth(s.handlePatchField))
	mux.HandleFunc("GET /profile/unknown", s.requireAuth(s.handleUnknownFields))
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      withRequestID(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s, nil
}

type contextKey int

const requestIDKey contextKey = iota

// requestID returns the request's ID tag, set by the withRequestID
// middleware.
func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// statusRecorder captures the status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestID tags every request with a UUID, echoes it in the
// X-Request-ID response header, and logs one completion line per request so
// handler log lines can be correlated.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
		log.Printf("[%s] %s %s -> %d", id, r.Method, r.URL.Path, rec.status)
	})
}

// Handler returns the configured HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until an interrupt or termination signal arrives,
// then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
