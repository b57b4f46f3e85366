package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/refresh"
	"github.com/rileyhilliard/cpubars/internal/view"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but cpubars only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade cpubars or lower the version field")
	}

	if _, err := refresh.ParseMode(cfg.Mode); err != nil {
		return err
	}
	if _, err := view.ParseStyle(cfg.Style); err != nil {
		return err
	}

	if cfg.URL == "" && (cfg.Endpoints.Pull == "" || cfg.Endpoints.Push == "") {
		return errors.New(errors.ErrConfig,
			"No backend URL configured",
			"Set 'url' in .cpubars.yaml or pass --url http://host:3000")
	}
	urls := []struct{ field, raw string }{
		{"url", cfg.URL},
		{"endpoints.pull", cfg.Endpoints.Pull},
		{"endpoints.push", cfg.Endpoints.Push},
	}
	for _, u := range urls {
		if err := validateURL(u.field, u.raw); err != nil {
			return err
		}
	}

	if cfg.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Timeout can't be negative (got %s)", cfg.Timeout),
			"Use a positive duration like 5s, or leave it unset")
	}
	if cfg.Timeout > 0 && cfg.Timeout < 10*time.Millisecond {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Timeout %s is too short for a network request", cfg.Timeout),
			"Use at least 10ms; the default is "+DefaultTimeout.String())
	}

	return validateOutput(cfg.Output)
}

func validateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' is not a valid URL: %q", field, raw),
			"Use a full URL like http://localhost:3000")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ws", "wss":
		return nil
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("'%s' has unsupported scheme %q", field, u.Scheme),
		"Use http, https, ws or wss")
}

func validateOutput(out OutputConfig) error {
	switch out.Format {
	case FormatTUI, FormatText, FormatHTML:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown output format '%s'", out.Format),
			"Use 'tui', 'text' or 'html'")
	}

	if out.Format != FormatHTML && (out.Page != "" || out.Out != "") {
		return errors.New(errors.ErrConfig,
			"'output.page' and 'output.out' only apply to html output",
			"Set output.format to 'html' or remove them")
	}

	if strings.ContainsAny(out.MountID, " \t\n") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Mount id %q contains whitespace", out.MountID),
			"Use a plain element id like 'app'")
	}

	return nil
}
