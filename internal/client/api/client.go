// Package api is the HTTP client for the security service, used by the
// interactive CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks JSON over HTTP to the security service. The bearer token
// obtained at login is held for the lifetime of the session.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used for protected calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, authorized bool, body any, out any) error {

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", false, nil, nil)
}

func (c *Client) Register(ctx context.Context, username, password, email string) error {
	body := map[string]string{"username": username, "password": password, "email": email}
	return c.do(ctx, http.MethodPost, "/register", false, body, nil)
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", false, body, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

func (c *Client) Encrypt(ctx context.Context, data string) (string, error) {
	var out struct {
		EncryptedData string `json:"encrypted_data"`
	}
	if err := c.do(ctx, http.MethodPost, "/encrypt", true, map[string]string{"data": data}, &out); err != nil {
		return "", err
	}
	return out.EncryptedData, nil
}

func (c *Client) Decrypt(ctx context.Context, data string) (string, error) {
	var out struct {
		DecryptedData string `json:"decrypted_data"`
	}
	if err := c.do(ctx, http.MethodPost, "/decrypt", true, map[string]string{"data": data}, &out); err != nil {
		return "", err
	}
	return out.DecryptedData, nil
}

// Protocol mirrors the service's protocol representation.
type Protocol struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	EncryptionAlgorithm  string `json:"encryption_algorithm"`
	KeyLength            int    `json:"key_length"`
	AuthenticationMethod string `json:"authentication_method"`
	BypassSecurity       bool   `json:"bypass_security"`
	CreatedAt            string `json:"created_at"`
}

type CreateProtocolParams struct {
	Name                 string `json:"name"`
	EncryptionAlgorithm  string `json:"encryption_algorithm"`
	KeyLength            int    `json:"key_length"`
	AuthenticationMethod string `json:"authentication_method"`
	BypassSecurity       bool   `json:"bypass_security"`
}

func (c *Client) CreateProtocol(ctx context.Context, params CreateProtocolParams) (string, error) {
	var out struct {
		ProtocolID string `json:"protocol_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/create-protocol", true, params, &out); err != nil {
		return "", err
	}
	return out.ProtocolID, nil
}

func (c *Client) ApplyProtocol(ctx context.Context, protocolID, data string) (string, error) {
	var out struct {
		SecuredData string `json:"secured_data"`
	}
	if err := c.do(ctx, http.MethodPost, "/apply-protocol/"+protocolID, true, map[string]string{"data": data}, &out); err != nil {
		return "", err
	}
	return out.SecuredData, nil
}

func (c *Client) ListProtocols(ctx context.Context) ([]Protocol, error) {
	var out struct {
		Protocols []Protocol `json:"protocols"`
	}
	if err := c.do(ctx, http.MethodGet, "/protocols", true, nil, &out); err != nil {
		return nil, err
	}
	return out.Protocols, nil
}

// Event mirrors one audit record as returned by /security-logs.
type Event struct {
	Timestamp string         `json:"timestamp"`
	EventType string         `json:"event_type"`
	UserID    string         `json:"user_id"`
	Details   map[string]any `json:"details"`
	SourceIP  string         `json:"source_ip"`
}

func (c *Client) SecurityLogs(ctx context.Context) ([]Event, error) {
	var out struct {
		SecurityLogs []Event `json:"security_logs"`
	}
	if err := c.do(ctx, http.MethodGet, "/security-logs", true, nil, &out); err != nil {
		return nil, err
	}
	return out.SecurityLogs, nil
}
