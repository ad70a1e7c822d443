package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig represents the server runtime configuration.
type ServerConfig struct {
	Listener ListenerConfig `yaml:"listener"`
	Logging  LoggingConfig  `yaml:"logging"`
	Upstream UpstreamConfig `yaml:"upstream"`
	// Optional path to a TTF file used for all card text. When empty or
	// unloadable the bundled Go fonts are used instead.
	FontPath string `yaml:"font_path"`
}

// ListenerConfig holds HTTP server listener settings.
type ListenerConfig struct {
	// The listen address, defaults to :8080
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Minimum log level: debug, info, warn, error. Defaults to info.
	Level string `yaml:"level"`
	// Output format: json or text. Defaults to json.
	Format string `yaml:"format"`
}

// UpstreamConfig holds the base URLs of the Roblox APIs and the request
// timeout applied to every outbound call. The base URLs are overridable so
// tests can point the client at local servers.
type UpstreamConfig struct {
	UsersBaseURL      string `yaml:"users_base_url"`
	PresenceBaseURL   string `yaml:"presence_base_url"`
	GamesBaseURL      string `yaml:"games_base_url"`
	ThumbnailsBaseURL string `yaml:"thumbnails_base_url"`
	// Timeout for each upstream request, in seconds. Defaults to 10.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Load reads the YAML config file at the given path and returns a
// ServerConfig with defaults applied.
func Load(path string) (*ServerConfig, error) {
	var cfg ServerConfig
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open server config file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode YAML server config: %w", err)
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// Default returns a config with every field set to its default value, used
// when no config file is supplied.
func Default() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults sets reasonable default values for unset fields.
func (c *ServerConfig) SetDefaults() {
	if c.Listener.Addr == "" {
		c.Listener.Addr = ":8080"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Upstream.UsersBaseURL == "" {
		c.Upstream.UsersBaseURL = "https://users.roblox.com"
	}
	if c.Upstream.PresenceBaseURL == "" {
		c.Upstream.PresenceBaseURL = "https://presence.roblox.com"
	}
	if c.Upstream.GamesBaseURL == "" {
		c.Upstream.GamesBaseURL = "https://games.roblox.com"
	}
	if c.Upstream.ThumbnailsBaseURL == "" {
		c.Upstream.ThumbnailsBaseURL = "https://thumbnails.roblox.com"
	}
	if c.Upstream.TimeoutSeconds == 0 {
		c.Upstream.TimeoutSeconds = 10
	}
}
