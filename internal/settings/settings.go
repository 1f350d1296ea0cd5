// Package settings persists user preferences that outlive a single run. The
// only preference today is the simulation mode picked for the fetch pipeline;
// it is read once when the pipeline is built, so changes apply on next start.
package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pders01/formtree/internal/simulation"
	"github.com/spf13/afero"
)

// LoadSimulationKey is the preference key holding the simulation mode
const LoadSimulationKey = "loadSimulation"

// Settings reads and writes a small TOML preferences file
type Settings struct {
	fs   afero.Fs
	path string
}

// New creates a settings file handle
func New(fs afero.Fs, path string) *Settings {
	return &Settings{fs: fs, path: path}
}

// NewOS creates a settings file handle on the real filesystem
func NewOS(path string) *Settings {
	return New(afero.NewOsFs(), path)
}

// Path returns the settings file location
func (s *Settings) Path() string {
	return s.path
}

func (s *Settings) read() (map[string]any, error) {
	values := map[string]any{}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if _, err := toml.Decode(string(data), &values); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", s.path, err)
	}
	return values, nil
}

// LoadSimulation returns the stored simulation mode. A missing file, missing
// key or unrecognized value yields simulation.Default.
func (s *Settings) LoadSimulation() (simulation.Mode, error) {
	values, err := s.read()
	if err != nil {
		return simulation.Default, err
	}

	raw, ok := values[LoadSimulationKey].(string)
	if !ok {
		return simulation.Default, nil
	}
	mode, err := simulation.Parse(raw)
	if err != nil {
		return simulation.Default, nil
	}
	return mode, nil
}

// SetLoadSimulation stores mode, keeping any other keys in the file
func (s *Settings) SetLoadSimulation(mode simulation.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid simulation mode: %q", mode)
	}

	values, err := s.read()
	if err != nil {
		return err
	}
	values[LoadSimulationKey] = string(mode)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(values); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
