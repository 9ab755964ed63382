package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/cryptox"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/logging"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/audit"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/protocols"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := logging.NewDiscard()

	envelope, err := cryptox.NewEnvelope(cryptox.NewKey())
	require.NoError(t, err)

	return NewServer(
		":0",
		logger,
		users.NewService(users.NewMemoryRepository(), bcrypt.MinCost, 4),
		protocols.NewService(protocols.NewMemoryRepository()),
		audit.NewService(audit.NewMemoryRepository(), logger),
		envelope,
		"test-secret",
		time.Hour,
	)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	payload := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), "body: %s", rec.Body.String())
	}
	return rec, payload
}

func registerAndLogin(t *testing.T, s *Server, username, password string) string {
	t.Helper()

	rec, _ := doJSON(t, s, http.MethodPost, "/register", "",
		map[string]any{"username": username, "password": password, "email": username + "@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, s, http.MethodPost, "/login", "",
		map[string]any{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec, body := doJSON(t, s, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "security", body["service"])
}

// The full end-to-end scenario: register, bad login, good login, encrypt,
// decrypt.
func TestRegisterLoginEncryptDecrypt(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doJSON(t, s, http.MethodPost, "/register", "",
		map[string]any{"username": "alice", "password": "Secr3t!", "email": "a@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, s, http.MethodPost, "/login", "",
		map[string]any{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, body["error"])

	rec, body = doJSON(t, s, http.MethodPost, "/login", "",
		map[string]any{"username": "alice", "password": "Secr3t!"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := body["token"].(string)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@x.com", user["email"])

	rec, body = doJSON(t, s, http.MethodPost, "/encrypt", token,
		map[string]any{"data": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	encrypted := body["encrypted_data"].(string)
	assert.NotEqual(t, "hello", encrypted)
	// The envelope key must never appear in the response.
	_, leaked := body["encryption_key"]
	assert.False(t, leaked)

	rec, body = doJSON(t, s, http.MethodPost, "/decrypt", token,
		map[string]any{"data": encrypted})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", body["decrypted_data"])
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doJSON(t, s, http.MethodPost, "/register", "",
		map[string]any{"username": "", "password": "p", "email": "e@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{broken")))
	rec2 := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestRegister_DuplicateConflict(t *testing.T) {
	s := newTestServer(t)

	body := map[string]any{"username": "bob", "password": "pw", "email": "b@x.com"}
	rec, _ := doJSON(t, s, http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, payload := doJSON(t, s, http.MethodPost, "/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotEmpty(t, payload["error"])
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "carol", "pw")

	rec, body := doJSON(t, s, http.MethodPost, "/encrypt", token, map[string]any{"data": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	encrypted := body["encrypted_data"].(string)

	// Corrupt the base64 payload but keep it decodable.
	mutated := []byte(encrypted)
	if mutated[0] == 'A' {
		mutated[0] = 'B'
	} else {
		mutated[0] = 'A'
	}

	rec, body = doJSON(t, s, http.MethodPost, "/decrypt", token, map[string]any{"data": string(mutated)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Decryption failed", body["error"])

	rec, _ = doJSON(t, s, http.MethodPost, "/decrypt", token, map[string]any{"data": "!!!not-base64!!!"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtocolLifecycle(t *testing.T) {
	s := newTestServer(t)
	aliceToken := registerAndLogin(t, s, "alice", "pw")
	bobToken := registerAndLogin(t, s, "bob", "pw")

	rec, body := doJSON(t, s, http.MethodPost, "/create-protocol", aliceToken, map[string]any{
		"name":                  "Quantum Shield",
		"encryption_algorithm":  "AES",
		"key_length":            256,
		"authentication_method": "OAuth 2.0",
		"bypass_security":       true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	protocolID := body["protocol_id"].(string)
	require.NotEmpty(t, protocolID)

	// Re-creating the same owner+name collides.
	rec, _ = doJSON(t, s, http.MethodPost, "/create-protocol", aliceToken, map[string]any{
		"name": "quantum  shield",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Owner applies successfully; bypass_security grants nothing to others.
	rec, body = doJSON(t, s, http.MethodPost, "/apply-protocol/"+protocolID, aliceToken,
		map[string]any{"data": "payload"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Secured payload with AES, 256-bit key, and OAuth 2.0 authentication.", body["secured_data"])

	rec, _ = doJSON(t, s, http.MethodPost, "/apply-protocol/"+protocolID, bobToken,
		map[string]any{"data": "payload"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, s, http.MethodPost, "/apply-protocol/deadbeefdeadbeefdeadbeefdeadbeef", aliceToken,
		map[string]any{"data": "payload"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, s, http.MethodPost, "/apply-protocol/"+protocolID, aliceToken,
		map[string]any{"data": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProtocols_OnlyOwnInCreationOrder(t *testing.T) {
	s := newTestServer(t)
	aliceToken := registerAndLogin(t, s, "alice", "pw")
	bobToken := registerAndLogin(t, s, "bob", "pw")

	for i := 0; i < 3; i++ {
		rec, _ := doJSON(t, s, http.MethodPost, "/create-protocol", aliceToken,
			map[string]any{"name": fmt.Sprintf("proto-%d", i)})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, _ := doJSON(t, s, http.MethodPost, "/create-protocol", bobToken,
		map[string]any{"name": "bobs-proto"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, s, http.MethodGet, "/protocols", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["protocol_count"])

	list := body["protocols"].([]any)
	for i, item := range list {
		p := item.(map[string]any)
		assert.Equal(t, fmt.Sprintf("proto-%d", i), p["name"])
	}
}

func TestSecurityLogs_FilteredByUser(t *testing.T) {
	s := newTestServer(t)
	aliceToken := registerAndLogin(t, s, "alice", "pw")
	bobToken := registerAndLogin(t, s, "bob", "pw")

	rec, _ := doJSON(t, s, http.MethodPost, "/encrypt", aliceToken, map[string]any{"data": "x"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, s, http.MethodGet, "/security-logs", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	logs := body["security_logs"].([]any)
	require.NotEmpty(t, logs)
	types := make([]string, 0, len(logs))
	for _, item := range logs {
		types = append(types, item.(map[string]any)["event_type"].(string))
	}
	assert.Contains(t, types, "encryption_operation")
	assert.Contains(t, types, "login_success")

	// Bob sees his own trail, not Alice's encryption operation.
	rec, body = doJSON(t, s, http.MethodGet, "/security-logs", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, item := range body["security_logs"].([]any) {
		assert.NotEqual(t, "encryption_operation", item.(map[string]any)["event_type"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doJSON(t, s, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec2 := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec2, req)

	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Contains(t, rec2.Body.String(), "security_http_requests_total")
}
