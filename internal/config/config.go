package config

import (
	"os"
	"path/filepath"

	"github.com/pders01/formtree/internal/remote"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Keys
const (
	KeyEndpointURL       = "endpoint.url"
	KeyCacheDir          = "cache.dir"
	KeyBundlePath        = "bundle.path"
	KeySimulationEnabled = "simulation.enabled"
	KeySettingsPath      = "settings.path"
	KeyLogLevel          = "log.level"
)

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEndpointURL, remote.DefaultURL)
	v.SetDefault(KeyCacheDir, DefaultCacheDir())
	v.SetDefault(KeyBundlePath, "")
	v.SetDefault(KeySimulationEnabled, false)
	v.SetDefault(KeySettingsPath, filepath.Join(DefaultConfigDir(), "settings.toml"))
	v.SetDefault(KeyLogLevel, "warn")
}

// DefaultConfigDir returns $HOME/.config/formtree
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".formtree")
	}
	return filepath.Join(home, ".config", "formtree")
}

// DefaultCacheDir returns the per-platform user cache directory for formtree
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "formtree")
	}
	return filepath.Join(dir, "formtree")
}

// GetEndpointURL returns the form endpoint
func GetEndpointURL() string {
	return viper.GetString(KeyEndpointURL)
}

// GetCacheDir returns the directory holding the cached snapshot
func GetCacheDir() string {
	return viper.GetString(KeyCacheDir)
}

// GetBundlePath returns an override for the bundled form, or "" for the
// embedded one
func GetBundlePath() string {
	return viper.GetString(KeyBundlePath)
}

// GetSimulationEnabled reports whether the stored simulation mode applies
func GetSimulationEnabled() bool {
	return viper.GetBool(KeySimulationEnabled)
}

// GetSettingsPath returns the preferences file location
func GetSettingsPath() string {
	return viper.GetString(KeySettingsPath)
}

// GetLogLevel returns the configured log level, falling back to warn
func GetLogLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(viper.GetString(KeyLogLevel))
	if err != nil {
		return zapcore.WarnLevel
	}
	return level
}
