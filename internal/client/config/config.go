package config

import "time"

// Config holds the CLI settings.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	// OnlineCheckInterval is how often the REPL pings the server to
	// refresh its online/offline status.
	OnlineCheckInterval time.Duration
}

// LoadDefaults targets a server on localhost.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 5 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
