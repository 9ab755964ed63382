package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessGate_MissingToken(t *testing.T) {
	s := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/encrypt"},
		{http.MethodPost, "/decrypt"},
		{http.MethodPost, "/create-protocol"},
		{http.MethodPost, "/apply-protocol/abc"},
		{http.MethodGet, "/security-logs"},
		{http.MethodGet, "/protocols"},
	} {
		rec, body := doJSON(t, s, route.method, route.path, "", map[string]any{"data": "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
		assert.Equal(t, "Authentication required", body["error"])
	}
}

func TestAccessGate_InvalidToken(t *testing.T) {
	s := newTestServer(t)

	rec, body := doJSON(t, s, http.MethodPost, "/encrypt", "garbage", map[string]any{"data": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestAccessGate_ExpiredToken(t *testing.T) {
	s := newTestServer(t)

	expired, err := auth.GenerateToken("user-1", []byte("test-secret"), -time.Minute)
	require.NoError(t, err)

	rec, body := doJSON(t, s, http.MethodPost, "/encrypt", expired, map[string]any{"data": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestAccessGate_WrongSigningKey(t *testing.T) {
	s := newTestServer(t)

	forged, err := auth.GenerateToken("user-1", []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	rec, _ := doJSON(t, s, http.MethodPost, "/encrypt", forged, map[string]any{"data": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccessGate_FailuresAreAudited(t *testing.T) {
	s := newTestServer(t)

	// Three distinct failure reasons.
	doJSON(t, s, http.MethodGet, "/protocols", "", nil)
	doJSON(t, s, http.MethodGet, "/protocols", "garbage", nil)
	expired, err := auth.GenerateToken("user-1", []byte("test-secret"), -time.Minute)
	require.NoError(t, err)
	doJSON(t, s, http.MethodGet, "/protocols", expired, nil)

	events, err := s.audit.QueryByUser(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, events, 3)

	reasons := []string{
		events[0].Details["reason"].(string),
		events[1].Details["reason"].(string),
		events[2].Details["reason"].(string),
	}
	assert.Equal(t, []string{"missing_token", "invalid_token", "expired_token"}, reasons)
}

func TestInstrument_PanicBecomesSanitized500(t *testing.T) {
	s := newTestServer(t)

	h := s.instrument("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("secret internal state")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret internal state")
}
