package config

import (
	"flag"
	"os"
	"time"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8005")
//	-d string   PostgreSQL DSN (empty = in-memory store)
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-k string   hex-encoded 32-byte envelope encryption key
//	-w int      password-hash worker pool size
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket for audit snapshots (empty disables archiving)
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-i int      audit archive interval, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-k", "-w", "-u", "-p", "-b", "-g", "-e", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.EncryptionKeyHex, "k", config.EncryptionKeyHex, "envelope encryption key (hex)")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	hashWorkers := fs.Int("w", int(config.MaxConcurrentHashes), "password hash worker pool size")
	archiveInterval := fs.Int("i", int(config.AuditArchiveInterval.Minutes()), "audit archive interval (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket for audit snapshots")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
	config.MaxConcurrentHashes = int64(*hashWorkers)
	config.AuditArchiveInterval = time.Duration(*archiveInterval) * time.Minute
}
