package config

import (
	"encoding/json"
	"os"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/flagx"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// Interval fields use timex.Duration, which accepts both duration strings
// such as "24h" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	EncryptionKey         string         `json:"encryption_key"`
	HashCost              int            `json:"hash_cost"`
	MaxConcurrentHashes   int64          `json:"max_concurrent_hashes"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	AuditArchiveInterval  timex.Duration `json:"audit_archive_interval"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When the flag is absent, no
// file is loaded. A file that cannot be read or parsed panics: starting an
// identity authority on a half-applied configuration is worse than not
// starting.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	jc := &JsonConfig{}
	if err := json.Unmarshal(data, jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = jc.EndpointAddrHTTP
	}
	if jc.DatabaseDSN != "" {
		config.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		config.SecretKey = jc.SecretKey
	}
	if jc.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.EncryptionKey != "" {
		config.EncryptionKeyHex = jc.EncryptionKey
	}
	if jc.HashCost != 0 {
		config.HashCost = jc.HashCost
	}
	if jc.MaxConcurrentHashes != 0 {
		config.MaxConcurrentHashes = jc.MaxConcurrentHashes
	}
	if jc.S3RootUser != "" {
		config.S3RootUser = jc.S3RootUser
	}
	if jc.S3RootPassword != "" {
		config.S3RootPassword = jc.S3RootPassword
	}
	if jc.S3Bucket != "" {
		config.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		config.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.AuditArchiveInterval.Duration != 0 {
		config.AuditArchiveInterval = jc.AuditArchiveInterval.Duration
	}
}
