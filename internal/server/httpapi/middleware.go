package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/audit"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/auth"
)

// authedHandler is a protected endpoint. The resolved user id is passed as
// an explicit parameter; handlers never pull identity out of the request.
type authedHandler func(w http.ResponseWriter, r *http.Request, userID string)

const bearerPrefix = "Bearer "

// authenticated is the access gate: it verifies the bearer token, records an
// UnauthorizedAccess audit event on every failure, and only then invokes the
// wrapped handler with the resolved user id.
func (s *Server) authenticated(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			s.audit.Append(r.Context(), audit.EventUnauthorizedAccess, "",
				map[string]any{"reason": "missing_token", "path": r.URL.Path}, r.RemoteAddr)
			s.writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, common.ErrTokenExpired) {
				reason = "expired_token"
			}
			s.audit.Append(r.Context(), audit.EventUnauthorizedAccess, "",
				map[string]any{"reason": reason, "path": r.URL.Path}, r.RemoteAddr)
			s.writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next(w, r, userID)
	}
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with panic recovery and request metrics. Panics
// become sanitized 500s so no internal state reaches the client.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(r.Context(), "panic in handler", "route", route, "panic", p)
				if rec.status == http.StatusOK {
					s.writeError(rec, http.StatusInternalServerError, "Internal server error")
				}
			}
			s.metrics.observe(route, rec.status, time.Since(start).Seconds())
		}()

		next(rec, r)
	}
}
