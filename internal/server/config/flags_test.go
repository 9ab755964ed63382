package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server",
		"-a", ":9001",
		"-d", "postgres://localhost/sec",
		"-t", "12",
		"-w", "4",
		"-b", "audit-bucket",
		"-i", "10",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9001", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://localhost/sec", cfg.DatabaseDSN)
	assert.Equal(t, 12*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, int64(4), cfg.MaxConcurrentHashes)
	assert.Equal(t, "audit-bucket", cfg.S3Bucket)
	assert.Equal(t, 10*time.Minute, cfg.AuditArchiveInterval)
}

func TestParseFlags_UnknownFlagsIgnored(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-zzz", "whatever", "-a", ":9002"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9002", cfg.EndpointAddrHTTP)
}
