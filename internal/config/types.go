package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .cpubars.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// URL is the backend base URL. Pull and push endpoints are derived
	// from it unless overridden in Endpoints.
	URL string `yaml:"url" mapstructure:"url"`

	Endpoints EndpointsConfig `yaml:"endpoints,omitempty" mapstructure:"endpoints"`

	// Mode selects the data source: "pull" (HTTP poll every second) or
	// "push" (WebSocket stream).
	Mode string `yaml:"mode" mapstructure:"mode"`

	// Style selects the per-core rendering: "plain" or "decorated".
	Style string `yaml:"style" mapstructure:"style"`

	// Timeout bounds a single pull request. It does not change the
	// refresh interval.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log,omitempty" mapstructure:"log"`
}

// EndpointsConfig holds explicit endpoint URLs that win over the ones
// derived from Config.URL.
type EndpointsConfig struct {
	Pull string `yaml:"pull,omitempty" mapstructure:"pull"`
	Push string `yaml:"push,omitempty" mapstructure:"push"`
}

// OutputConfig controls where the view is rendered.
type OutputConfig struct {
	// Format is "tui" (interactive dashboard), "text" (one plain frame per
	// update) or "html" (host page written to Out).
	Format string `yaml:"format" mapstructure:"format"`

	// Page is an optional HTML host page. Empty uses the built-in page.
	Page string `yaml:"page,omitempty" mapstructure:"page"`

	// Out is the HTML output file. Empty or "-" writes to stdout.
	Out string `yaml:"out,omitempty" mapstructure:"out"`

	// MountID is the id of the div the list is rendered into.
	MountID string `yaml:"mount_id" mapstructure:"mount_id"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// File receives log lines. The dashboard owns the terminal, so
	// without a file nothing is logged in tui mode.
	File string `yaml:"file,omitempty" mapstructure:"file"`
}

// Output formats.
const (
	FormatTUI  = "tui"
	FormatText = "text"
	FormatHTML = "html"
)

// Defaults.
const (
	DefaultURL     = "http://localhost:3000"
	DefaultMode    = "pull"
	DefaultStyle   = "decorated"
	DefaultFormat  = FormatTUI
	DefaultMountID = "app"
	DefaultTimeout = 5 * time.Second
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		URL:     DefaultURL,
		Mode:    DefaultMode,
		Style:   DefaultStyle,
		Timeout: DefaultTimeout,
		Output: OutputConfig{
			Format:  DefaultFormat,
			MountID: DefaultMountID,
		},
	}
}
