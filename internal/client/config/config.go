// Package config loads runtime configuration for the security service CLI.
package config

// Config holds runtime settings for the CLI.
//
// ServerEndpointAddr is the base URL of the security service, including
// the scheme (e.g. http://127.0.0.1:8005).
type Config struct {
	ServerEndpointAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8005"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}
