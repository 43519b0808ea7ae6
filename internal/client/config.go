package client

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the CLI configuration loaded from a TOML file.
type Config struct {
	Server ServerConfig `toml:"server"`
}

// ServerConfig contains the API endpoint settings.
type ServerConfig struct {
	URL            string `toml:"url"`             // Base URL of the watchlist API
	TimeoutSeconds int    `toml:"timeout_seconds"` // Per-request timeout; 0 means the transport default
}

// DefaultConfig returns a Config pointing at a local development server.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:            "http://localhost:4000",
			TimeoutSeconds: 10,
		},
	}
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// NewClient builds a Client from the configuration.
func (c *Config) NewClient() *Client {
	httpClient := &http.Client{
		Timeout: time.Duration(c.Server.TimeoutSeconds) * time.Second,
	}
	return New(c.Server.URL, httpClient)
}
