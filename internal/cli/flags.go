package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rileyhilliard/cpubars/internal/config"
	"github.com/rileyhilliard/cpubars/internal/errors"
)

// flagKeys maps command-line flag names to the config keys they override.
var flagKeys = map[string]string{
	"url":      "url",
	"pull-url": "endpoints.pull",
	"push-url": "endpoints.push",
	"timeout":  "timeout",
	"mode":     "mode",
	"style":    "style",
	"output":   "output.format",
	"page":     "output.page",
	"out":      "output.out",
	"mount-id": "output.mount_id",
	"log-file": "log.file",
}

// addSourceFlags registers the flags that pick the backend.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "backend base URL (e.g. http://localhost:3000)")
	cmd.Flags().String("pull-url", "", "explicit pull endpoint, overrides the one derived from --url")
	cmd.Flags().Duration("timeout", 0, "per-request timeout for pulls (e.g. 2s)")
}

// addViewFlags registers the flags that shape and place the rendered view.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("style", "", "per-core rendering: plain or decorated")
	cmd.Flags().String("page", "", "HTML host page to render into (html output)")
	cmd.Flags().String("out", "", "HTML output file, '-' for stdout (html output)")
	cmd.Flags().String("mount-id", "", "id of the div the list is mounted into")
}

// loadConfig resolves the effective config for cmd: defaults, then the
// config file, then environment, then flags the user actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.NewViper()

	path, err := config.Find(cfgFile)
	if err != nil {
		return nil, err
	}
	source := "built-in defaults"
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file "+path,
				"Check the file exists and is valid YAML")
		}
		source = path
	}

	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	cfg, err := config.Decode(v, source)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot bind --"+name, "")
		}
	}
	return nil
}
