package cmd

import (
	"fmt"

	"github.com/pders01/formtree/internal/bundle"
	"github.com/pders01/formtree/internal/config"
	"github.com/pders01/formtree/internal/remote"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show endpoint, cache and simulation status",
	Long: `Report what a fetch would have to work with:
  - Whether the form endpoint answers
  - Where the cached form lives and whether one is stored
  - Which bundled form is used as the last resort
  - The stored simulation mode and whether it is applied`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := stdout(cmd)

	endpoint := config.GetEndpointURL()
	fmt.Fprintf(out, "Endpoint: %s\n", endpoint)
	if remote.IsAvailable(endpoint) {
		fmt.Fprintln(out, "  ✓ reachable")
	} else {
		fmt.Fprintln(out, "  ✗ unreachable (fetch will fall back to the cache)")
	}

	st := openStore()
	fmt.Fprintf(out, "Cache: %s\n", st.Path())
	if st.Exists() {
		fmt.Fprintln(out, "  ✓ cached form present")
	} else {
		fmt.Fprintln(out, "  - no cached form")
	}

	if path := config.GetBundlePath(); path != "" {
		fmt.Fprintf(out, "Bundle: %s\n", path)
	} else {
		fmt.Fprintf(out, "Bundle: embedded %s\n", bundle.DefaultName)
	}

	set := openSettings()
	mode, err := set.LoadSimulation()
	if err != nil {
		logger.Warn("failed to read settings", zap.String("path", set.Path()), zap.Error(err))
	}
	enabled := "disabled"
	if config.GetSimulationEnabled() {
		enabled = "enabled"
	}
	fmt.Fprintf(out, "Simulation: %s (%s)\n", enabled, set.Path())
	fmt.Fprintf(out, "  mode: %s - %s\n", mode, mode.Description())

	return nil
}
