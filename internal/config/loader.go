package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/cpubars/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".cpubars.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/cpubars"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := NewViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'cpubars init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return Decode(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .cpubars.yaml in current directory
// 3. ~/.config/cpubars/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// EnvPrefix namespaces environment overrides: CPUBARS_URL, CPUBARS_MODE,
// CPUBARS_OUTPUT_FORMAT and so on.
const EnvPrefix = "CPUBARS"

// NewViper returns a viper instance with every default registered, so
// bound flags, environment and config values layer over the same keys.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Decode converts viper state into a Config. source names where the
// values came from for error messages.
func Decode(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.Style = strings.ToLower(strings.TrimSpace(cfg.Style))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Output.Page = ExpandTilde(cfg.Output.Page)
	cfg.Output.Out = ExpandTilde(cfg.Output.Out)
	cfg.Log.File = ExpandTilde(cfg.Log.File)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", CurrentConfigVersion)
	v.SetDefault("url", DefaultURL)
	v.SetDefault("mode", DefaultMode)
	v.SetDefault("style", DefaultStyle)
	v.SetDefault("timeout", DefaultTimeout.String())
	v.SetDefault("output.format", DefaultFormat)
	v.SetDefault("output.mount_id", DefaultMountID)

	// Keys without a default still need registering, or AutomaticEnv
	// never looks them up.
	for _, key := range []string{"endpoints.pull", "endpoints.push", "output.page", "output.out", "log.file"} {
		v.SetDefault(key, "")
	}
}

// ExpandTilde replaces ~ or ~/path with the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
