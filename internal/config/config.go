// Package config handles settings and customer record files for churn.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/f3rmion/churn/internal/predict"
	"github.com/spf13/viper"
)

// Setting keys.
const (
	KeyEndpoint = "endpoint"
	KeyTimeout  = "timeout"
	KeyLogLevel = "log.level"
	KeyLogFile  = "log.file"
	KeyLogMode  = "log.mode"
	KeyVerbose  = "verbose"
)

// EnvPrefix is prepended to every environment override, e.g. CHURN_ENDPOINT.
const EnvPrefix = "CHURN"

// Settings holds everything read from flags, environment and config file.
type Settings struct {
	Endpoint string
	Timeout  time.Duration // 0 waits indefinitely
	Log      LogSettings
	Verbose  bool
}

// LogSettings selects the log destination and verbosity.
type LogSettings struct {
	Level string
	File  string
	Mode  string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEndpoint, predict.DefaultEndpoint)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMode, "dev")
	v.SetDefault(KeyVerbose, false)
}

// Load reads the config file at path into v, if it exists, and returns the
// resolved settings. An empty path looks for config.yaml in the default
// directory.
func Load(v *viper.Viper, path string) (Settings, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if dir, err := GetConfigDir(); err == nil {
			path = filepath.Join(dir, "config.yaml")
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Settings{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	s := Settings{
		Endpoint: v.GetString(KeyEndpoint),
		Timeout:  v.GetDuration(KeyTimeout),
		Log: LogSettings{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
			Mode:  v.GetString(KeyLogMode),
		},
		Verbose: v.GetBool(KeyVerbose),
	}
	if s.Timeout < 0 {
		return Settings{}, fmt.Errorf("timeout must not be negative, got %s", s.Timeout)
	}
	return s, nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "churn"), nil
}

const defaultTemplate = `# churn configuration
# Every key can also be set with a CHURN_ environment variable,
# e.g. CHURN_ENDPOINT or CHURN_LOG_LEVEL.

# Prediction service URL.
endpoint: ` + predict.DefaultEndpoint + `

# Request timeout such as 30s. 0 waits until the service answers.
timeout: 0s

log:
  # debug, info, warn or error
  level: info
  # File to write logs to. Empty disables logging in the interactive form.
  file: ""
  # dev or prod (JSON)
  mode: dev
`

// WriteDefault writes the template config to path. It refuses to replace an
// existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultTemplate), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
