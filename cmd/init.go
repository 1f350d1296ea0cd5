package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pders01/formtree/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration",
	Long: `Create the configuration directory and a default config file.

This command:
  - Writes config.toml with the default endpoint, cache and log settings
  - Leaves an existing config untouched

Settings can also be given as FORMTREE_* environment variables, for
example FORMTREE_ENDPOINT_URL.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// configFile mirrors the keys in internal/config for writing a default file
type configFile struct {
	Endpoint struct {
		URL string `toml:"url"`
	} `toml:"endpoint"`
	Cache struct {
		Dir string `toml:"dir"`
	} `toml:"cache"`
	Bundle struct {
		Path string `toml:"path"`
	} `toml:"bundle"`
	Simulation struct {
		Enabled bool `toml:"enabled"`
	} `toml:"simulation"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

func defaultConfigFile() configFile {
	var c configFile
	c.Endpoint.URL = config.GetEndpointURL()
	c.Cache.Dir = config.GetCacheDir()
	c.Bundle.Path = config.GetBundlePath()
	c.Log.Level = "warn"
	return c
}

func runInit(cmd *cobra.Command, args []string) error {
	out := stdout(cmd)

	configDir := config.DefaultConfigDir()
	configPath := filepath.Join(configDir, "config.toml")

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "Config already exists: %s\n", configPath)
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(defaultConfigFile()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(out, "✓ Created default config: %s\n", configPath)
	fmt.Fprintln(out, "  You can now use: formtree fetch")

	return nil
}
