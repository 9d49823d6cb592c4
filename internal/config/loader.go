package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/rileyhilliard/sitewatch/internal/errors"
	"github.com/rileyhilliard/sitewatch/internal/logger"
)

const (
	// GlobalConfigDir is the directory for the per-user config, relative to home.
	GlobalConfigDir = ".config/sitewatch"
	// GlobalConfigFile is the per-user config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. SITEWATCH_REFRESH_INTERVAL.
	EnvPrefix = "SITEWATCH"
)

// LocalConfigFiles are looked for in the current directory, in order.
// sites.json is the historical format: {"refresh_interval": 30, "sites": [...]}.
var LocalConfigFiles = []string{"sites.json", "sitewatch.yaml", "sitewatch.yml"}

// Load reads config from the specified path. JSON and YAML are both accepted,
// chosen by file extension. Settings missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Run 'sitewatch init' to create one, or point --config at an existing file")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file "+path,
			"Check the file is valid JSON or YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. sites.json, sitewatch.yaml or sitewatch.yml in the current directory
// 3. ~/.config/sitewatch/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
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

	for _, name := range LocalConfigFiles {
		local := filepath.Join(cwd, name)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if global := GlobalConfigPath(); global != "" {
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// GlobalConfigPath returns ~/.config/sitewatch/config.yaml, or "" without a home directory.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// LoadOrDefault finds and loads the config, repairing what it can. It never
// fails: a missing, unreadable or malformed file yields the built-in defaults,
// and problems are reported through log. Returns the config and the path it
// came from ("" for defaults).
func LoadOrDefault(explicit string, log logger.Logger) (*Config, string) {
	if log == nil {
		log = logger.Noop()
	}

	path, err := Find(explicit)
	if err != nil {
		log.Warn("%s, using built-in sites", errors.Message(err))
		return DefaultConfig(), ""
	}
	if path == "" {
		log.Info("no config file found, using built-in sites")
		return DefaultConfig(), ""
	}

	cfg, err := Load(path)
	if err != nil {
		log.Warn("%s, using built-in sites", errors.Message(err))
		return DefaultConfig(), ""
	}

	log.Debug("loaded config from %s", path)
	return Sanitize(cfg, log), path
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := &Config{}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the syntax in "+path)
	}

	for i := range cfg.Sites {
		cfg.Sites[i].Name = strings.TrimSpace(cfg.Sites[i].Name)
		cfg.Sites[i].URL = Expand(strings.TrimSpace(cfg.Sites[i].URL))
	}

	return cfg, nil
}

// setDefaults registers every setting so env overrides apply even when the file omits them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", CurrentConfigVersion)
	v.SetDefault("refresh_interval", DefaultRefreshInterval)
	v.SetDefault("max_workers", DefaultMaxWorkers)
	v.SetDefault("probe_timeout", DefaultProbeTimeout)
	v.SetDefault("task_timeout", DefaultTaskTimeout)
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDurationHook lets timeouts be written as plain numbers of seconds
// ("probe_timeout: 5") as well as Go durations ("probe_timeout: 5s").
func secondsToDurationHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != durationType {
			return data, nil
		}
		switch n := data.(type) {
		case int:
			return time.Duration(n) * time.Second, nil
		case int64:
			return time.Duration(n) * time.Second, nil
		case float64:
			return time.Duration(n * float64(time.Second)), nil
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return time.Duration(f * float64(time.Second)), nil
			}
		}
		return data, nil
	}
}
