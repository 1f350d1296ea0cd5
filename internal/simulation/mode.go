package simulation

import (
	"fmt"
	"strings"
)

// Mode selects a deterministic outcome for the fetch pipeline
type Mode string

const (
	// LoadCached serves the bundled tree and reports it as cached
	LoadCached Mode = "loadCached"
	// LoadNormal serves the bundled tree and reports it as live
	LoadNormal Mode = "loadNormal"
	// LoadWithError fails every fetch as if the device were offline
	LoadWithError Mode = "loadWithError"
)

// Default is used when no mode has been stored
const Default = LoadNormal

// All returns every mode in display order
func All() []Mode {
	return []Mode{LoadCached, LoadNormal, LoadWithError}
}

// Description returns a human label for the mode
func (m Mode) Description() string {
	switch m {
	case LoadCached:
		return "Load Cached Data"
	case LoadNormal:
		return "Load Normal Data"
	case LoadWithError:
		return "Simulate Error"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the known modes
func (m Mode) Valid() bool {
	switch m {
	case LoadCached, LoadNormal, LoadWithError:
		return true
	default:
		return false
	}
}

// Parse converts a stored value into a Mode
func Parse(s string) (Mode, error) {
	m := Mode(strings.TrimSpace(s))
	if !m.Valid() {
		return "", fmt.Errorf("invalid simulation mode: %q (must be: loadCached, loadNormal, loadWithError)", s)
	}
	return m, nil
}
