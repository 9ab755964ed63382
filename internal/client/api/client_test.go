package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])

		json.NewEncoder(w).Encode(map[string]string{"token": "tok123"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	token, err := c.Login(t.Context(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)
	assert.Equal(t, "tok123", c.token)
}

func TestEncrypt_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"encrypted_data": "abc"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok123")

	got, err := c.Encrypt(t.Context(), "payload")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestDo_NonOKBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "Username already exists"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Register(t.Context(), "alice", "pw", "a@example.com")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Username already exists", apiErr.Message)
}

func TestApplyProtocol_PathAndResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/apply-protocol/deadbeef", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"secured_data": "Secured x"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok")

	got, err := c.ApplyProtocol(t.Context(), "deadbeef", "x")
	require.NoError(t, err)
	assert.Equal(t, "Secured x", got)
}
