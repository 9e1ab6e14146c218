// ABOUTME: Configuration loading and parsing for sonic-gateway
// ABOUTME: Supports YAML files with environment variable expansion

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file omits optional fields.
const (
	DefaultAPIVersion = "1.15.0"
	DefaultClientID   = "sonic-mcp"
)

// Config represents the complete sonic-gateway configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Subsonic SubsonicConfig `yaml:"subsonic"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// SubsonicConfig holds the upstream music server connection settings.
// Works with any Subsonic-compatible server (Airsonic, Navidrome, Subsonic).
type SubsonicConfig struct {
	ServerURL  string `yaml:"server_url"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	APIVersion string `yaml:"api_version"`
	ClientID   string `yaml:"client_id"`

	// UseTokenAuth selects salted-token auth (default) over plaintext
	// password auth. Pointer so an absent key means true, not false.
	UseTokenAuth *bool `yaml:"use_token_auth"`
}

// TokenAuth reports whether salted-token authentication should be used.
func (s *SubsonicConfig) TokenAuth() bool {
	if s.UseTokenAuth == nil {
		return true
	}
	return *s.UseTokenAuth
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyDefaults fills in optional fields the config file may omit.
func (c *Config) applyDefaults() {
	if c.Subsonic.APIVersion == "" {
		c.Subsonic.APIVersion = DefaultAPIVersion
	}
	if c.Subsonic.ClientID == "" {
		c.Subsonic.ClientID = DefaultClientID
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Subsonic.ServerURL == "" {
		return fmt.Errorf("subsonic.server_url is required")
	}
	if c.Subsonic.Username == "" {
		return fmt.Errorf("subsonic.username is required")
	}
	if c.Subsonic.Password == "" {
		return fmt.Errorf("subsonic.password is required")
	}

	return nil
}
