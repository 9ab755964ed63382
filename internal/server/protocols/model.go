package protocols

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Protocol is a user-defined security protocol description. Records are
// immutable after creation and owned exclusively by their creator.
//
// BypassSecurity is declarative metadata: the registry stores and reports it
// but it never weakens authentication or ownership enforcement.
type Protocol struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	EncryptionAlgorithm  string    `json:"encryption_algorithm"`
	KeyLength            int       `json:"key_length"`
	AuthenticationMethod string    `json:"authentication_method"`
	BypassSecurity       bool      `json:"bypass_security"`
	OwnerID              string    `json:"user_id"`
	CreatedAt            time.Time `json:"created_at"`
}

// NormalizeName lowercases the protocol name and collapses whitespace runs
// to single underscores, so "My  Proto" and "my proto" share an identity.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

// DeriveID computes the deterministic protocol id from the owner and the
// normalized name. Re-creating the same owner+name pair therefore collides.
func DeriveID(ownerID, name string) string {
	h := sha256.New()
	h.Write([]byte(ownerID))
	h.Write([]byte{0x1f})
	h.Write([]byte(NormalizeName(name)))
	return hex.EncodeToString(h.Sum(nil))[:32]
}
