// Package cryptox implements the symmetric-encryption envelope used by the
// secure-channel endpoints: AES-256-GCM with a random per-call nonce. The
// ciphertext wire format is nonce || sealed data.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
)

const KeySize = 32

// Envelope performs authenticated symmetric encryption with a process-wide
// key. The key is provisioned once at startup and is read-only afterwards;
// it must never travel through the encrypt/decrypt response path.
type Envelope struct {
	aead cipher.AEAD
}

// NewEnvelope builds an Envelope from a 32-byte AES key.
func NewEnvelope(key []byte) (*Envelope, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Envelope{aead: aead}, nil
}

// NewKey returns a fresh random 32-byte key.
func NewKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// ParseKey decodes a hex-encoded 32-byte key as accepted by configuration.
func ParseKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key encoding: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	return key, nil
}

// Encrypt seals plaintext under a fresh random nonce. Repeated calls with
// identical plaintext produce different ciphertext. Empty plaintext is valid
// and round-trips to empty.
func (e *Envelope) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return e.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext produced by Encrypt. Any tampering, truncation or
// key mismatch yields common.ErrDecryptionFailed; garbage plaintext is never
// returned.
func (e *Envelope) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < e.aead.NonceSize() {
		return nil, common.ErrDecryptionFailed
	}
	nonce, sealed := ciphertext[:e.aead.NonceSize()], ciphertext[e.aead.NonceSize():]
	plaintext, err := e.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, common.ErrDecryptionFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
