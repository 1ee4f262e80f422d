// Package internal holds the application-level configuration shared by the
// CLI, the HTTP server, and the MCP server.
package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Realm RealmConfig       `yaml:"realm"`
	Scan  ScanConfig        `yaml:"scan"`
	Auth  AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Realm.Validate(); err != nil {
		return err
	}
	if err := c.Scan.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for the serve command.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP server listen address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// RealmConfig describes how node files are recognized within a realm.
type RealmConfig struct {
	// Marker is the directory whose presence marks a realm root.
	Marker string `yaml:"marker"`
	// DefaultExtension is used when creating new node files.
	DefaultExtension string `yaml:"default_extension"`
	// Extensions lists recognized node file extensions, without the dot.
	Extensions []string `yaml:"extensions"`
	// HiddenPrefix prunes directory entries whose name starts with it.
	HiddenPrefix string `yaml:"hidden_prefix"`
	// Editor overrides $VISUAL/$EDITOR for the edit command.
	Editor string `yaml:"editor"`
}

// Validate validates the realm configuration.
func (c *RealmConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Marker, validation.Required),
		validation.Field(&c.DefaultExtension, validation.Required),
		validation.Field(&c.Extensions, validation.Required, validation.Length(1, 0)),
	); err != nil {
		return err
	}
	for _, ext := range c.Extensions {
		if ext == "" {
			return fmt.Errorf("realm: extensions must be non-empty")
		}
	}
	return nil
}

// ScanConfig tunes the link-extraction machinery.
type ScanConfig struct {
	// Workers bounds the back-link fan-out pool.
	Workers int `yaml:"workers"`
	// BufferSize is the scanner's internal read buffer in bytes.
	BufferSize int `yaml:"buffer_size"`
}

// Validate validates the scan configuration.
func (c *ScanConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Required, validation.Min(1), validation.Max(256)),
		validation.Field(&c.BufferSize, validation.Required, validation.Min(16)),
	)
}

// AuthConfig holds authentication configuration for the serve command.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled".
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Realm: RealmConfig{
			Marker:           ".nous",
			DefaultExtension: "md",
			Extensions:       []string{"md", "markdown", "org", "txt", "text"},
			HiddenPrefix:     ".",
		},
		Scan: ScanConfig{
			Workers:    8,
			BufferSize: 64 * 1024,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
