package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/feather-contrib/internal/daemon"
	"github.com/starford/feather-contrib/internal/heights"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Docs    DocsConfig        `yaml:"docs"`
	Daemon  DaemonConfig      `yaml:"daemon"`
	Preview PreviewConfig     `yaml:"preview"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Docs.Validate(); err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	if err := c.Daemon.Validate(); err != nil {
		return fmt.Errorf("daemon: %w", err)
	}
	if err := c.Preview.Validate(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// DocsConfig holds the guide source and the generated output directories.
type DocsConfig struct {
	SourceDir string `yaml:"source_dir"`
	OutputDir string `yaml:"output_dir"`
}

// Validate validates the docs configuration.
func (c *DocsConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.SourceDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
	); err != nil {
		return err
	}
	if filepath.Clean(c.SourceDir) == filepath.Clean(c.OutputDir) {
		return fmt.Errorf("output_dir must differ from source_dir")
	}
	return nil
}

// DaemonConfig holds the daemon RPC address and the sampling interval.
type DaemonConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Interval uint64 `yaml:"interval"`
}

// Validate validates the daemon configuration.
func (c *DaemonConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Interval, validation.Required),
	)
}

// PreviewConfig controls the HTTP preview served by watch mode.
type PreviewConfig struct {
	Enabled bool       `yaml:"enabled"`
	HTTP    HTTPConfig `yaml:"http"`
}

// Validate validates the preview configuration. The port is only checked
// when the preview is enabled.
func (c *PreviewConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// NewDefaultConfig returns a new Config with the repository's default layout.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Docs: DocsConfig{
			SourceDir: "external/feather-docs/content/_guides",
			OutputDir: "src/assets/docs",
		},
		Daemon: DaemonConfig{
			Host:     daemon.DefaultHost,
			Port:     daemon.DefaultPort,
			Interval: heights.DefaultInterval,
		},
		Preview: PreviewConfig{
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
	}
}
