// Package httpapi exposes the security service over its HTTP/JSON boundary
// and hosts the access gate that fronts every protected operation.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/cryptox"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/logging"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/audit"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/protocols"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/users"
)

type Server struct {
	address       string
	logger        logging.Logger
	users         *users.Service
	protocols     *protocols.Service
	audit         *audit.Service
	envelope      *cryptox.Envelope
	jwtSecret     []byte
	tokenValidity time.Duration
	metrics       *Metrics
	handler       http.Handler
}

func NewServer(
	address string,
	logger logging.Logger,
	us *users.Service,
	ps *protocols.Service,
	as *audit.Service,
	envelope *cryptox.Envelope,
	secretKey string,
	tokenValidity time.Duration,
) *Server {
	s := &Server{
		address:       address,
		logger:        logger.With("module", "http_server"),
		users:         us,
		protocols:     ps,
		audit:         as,
		envelope:      envelope,
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
		metrics:       NewMetrics(),
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully composed route tree; tests serve it directly.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Unwrapped: register, login, health (and the metrics scrape).
	mux.Handle("GET /health", s.instrument("/health", s.handleHealth))
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.Handle("POST /register", s.instrument("/register", s.handleRegister))
	mux.Handle("POST /login", s.instrument("/login", s.handleLogin))

	// Everything else passes through the access gate first.
	mux.Handle("POST /encrypt", s.instrument("/encrypt", s.authenticated(s.handleEncrypt)))
	mux.Handle("POST /decrypt", s.instrument("/decrypt", s.authenticated(s.handleDecrypt)))
	mux.Handle("POST /create-protocol", s.instrument("/create-protocol", s.authenticated(s.handleCreateProtocol)))
	mux.Handle("POST /apply-protocol/{id}", s.instrument("/apply-protocol", s.authenticated(s.handleApplyProtocol)))
	mux.Handle("GET /security-logs", s.instrument("/security-logs", s.authenticated(s.handleSecurityLogs)))
	mux.Handle("GET /protocols", s.instrument("/protocols", s.authenticated(s.handleListProtocols)))

	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(context.Background(), "response encoding failed", "error", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError converts sentinel errors to their HTTP representation.
// Unexpected errors are logged and sanitized to a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUnauthorized):
		s.writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrForbidden):
		s.writeError(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, common.ErrAlreadyExists):
		s.writeError(w, http.StatusConflict, "Already exists")
	case errors.Is(err, common.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "Not found")
	default:
		s.logger.Error(r.Context(), "internal error", "path", r.URL.Path, "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
