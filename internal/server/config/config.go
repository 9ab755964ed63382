// Package config handles configuration for the security service,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
)

// Config holds runtime settings for the security service.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenValidityDuration: bearer token lifetime.
//   - EncryptionKeyHex: hex-encoded 32-byte AES key for the envelope.
//   - HashCost: bcrypt cost (0 = library default).
//   - MaxConcurrentHashes: size of the password-hashing worker pool.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     S3-compatible backend for audit snapshots; empty bucket disables it.
//   - AuditArchiveInterval: time between audit snapshots.
//
// SecretKey and EncryptionKeyHex are generated randomly when left empty.
// A restart without pinning them invalidates all outstanding tokens and
// previously encrypted data; this is a deliberate scope limit of a
// single-process identity authority, not a bug.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	EncryptionKeyHex      string
	HashCost              int
	MaxConcurrentHashes   int64
	S3RootUser            string
	S3RootPassword        string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
	AuditArchiveInterval  time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8005"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 24 * time.Hour
	c.EncryptionKeyHex = ""
	c.HashCost = 0
	c.MaxConcurrentHashes = 8
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.AuditArchiveInterval = 5 * time.Minute
}

// generateSecrets fills in the process-wide secrets that were not provided.
// This is the single initialization step that owns secret material; nothing
// else in the process creates or rotates keys.
func (c *Config) generateSecrets() error {
	if c.SecretKey == "" {
		s, err := common.MakeRandHexString(32)
		if err != nil {
			return err
		}
		c.SecretKey = s
	}
	if c.EncryptionKeyHex == "" {
		s, err := common.MakeRandHexString(32)
		if err != nil {
			return err
		}
		c.EncryptionKeyHex = s
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags. Missing
// secrets are generated last.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	if err := cfg.generateSecrets(); err != nil {
		return nil, err
	}
	return cfg, nil
}
