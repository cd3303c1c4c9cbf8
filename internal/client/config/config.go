package config

import "time"

// Config holds runtime settings for the gigbook CLI.
//
// OnlineCheckInterval is how often the client probes the server. CachePath
// is the SQLite file holding the last jobs and clients seen online.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	CachePath           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.CachePath = "gigbook-cache.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
