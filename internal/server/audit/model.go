package audit

import "time"

// EventType enumerates the security-relevant actions recorded in the trail.
type EventType string

const (
	EventLoginAttempt       EventType = "login_attempt"
	EventLoginSuccess       EventType = "login_success"
	EventLoginFailure       EventType = "login_failure"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventEncryptionOp       EventType = "encryption_operation"
	EventProtocolUsage      EventType = "custom_protocol_usage"
)

// Event is one immutable audit record. UserID is empty for unauthenticated
// failures. Seq is assigned by the repository and defines insertion order.
type Event struct {
	Seq           int64          `json:"-"`
	Timestamp     time.Time      `json:"timestamp"`
	EventType     EventType      `json:"event_type"`
	UserID        string         `json:"user_id,omitempty"`
	Details       map[string]any `json:"details"`
	SourceAddress string         `json:"source_ip,omitempty"`
}
