package cmd

import (
	"fmt"

	"github.com/pders01/formtree/internal/config"
	"github.com/pders01/formtree/internal/simulation"
	"github.com/spf13/cobra"
)

var simulationCmd = &cobra.Command{
	Use:   "simulation",
	Short: "Manage the load simulation mode",
	Long: `The simulation mode replaces the network with a fixed outcome:

  loadCached     serve the bundled form, marked as cached
  loadNormal     serve the bundled form, marked as live
  loadWithError  fail every fetch as if offline

The mode is stored in the settings file and only applies when
simulation.enabled is set or --simulate is passed. It is read once when a
command starts, so changes take effect on the next run.`,
}

var simulationGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored simulation mode",
	Args:  cobra.NoArgs,
	RunE:  runSimulationGet,
}

var simulationSetCmd = &cobra.Command{
	Use:       "set <mode>",
	Short:     "Store a simulation mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(simulation.LoadCached), string(simulation.LoadNormal), string(simulation.LoadWithError)},
	RunE:      runSimulationSet,
}

var simulationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available simulation modes",
	Args:  cobra.NoArgs,
	RunE:  runSimulationList,
}

func init() {
	rootCmd.AddCommand(simulationCmd)
	simulationCmd.AddCommand(simulationGetCmd, simulationSetCmd, simulationListCmd)
}

func runSimulationGet(cmd *cobra.Command, args []string) error {
	mode, err := openSettings().LoadSimulation()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout(cmd), "%s - %s\n", mode, mode.Description())
	if !config.GetSimulationEnabled() {
		fmt.Fprintln(stdout(cmd), "(not applied: set simulation.enabled or pass --simulate)")
	}
	return nil
}

func runSimulationSet(cmd *cobra.Command, args []string) error {
	mode, err := simulation.Parse(args[0])
	if err != nil {
		return err
	}

	set := openSettings()
	if err := set.SetLoadSimulation(mode); err != nil {
		return err
	}

	fmt.Fprintf(stdout(cmd), "✓ Simulation mode set to %s (%s)\n", mode, mode.Description())
	fmt.Fprintln(stdout(cmd), "  Takes effect on the next run")
	return nil
}

func runSimulationList(cmd *cobra.Command, args []string) error {
	current, _ := openSettings().LoadSimulation()

	for _, m := range simulation.All() {
		marker := " "
		if m == current {
			marker = "*"
		}
		fmt.Fprintf(stdout(cmd), "%s %-14s %s\n", marker, m, m.Description())
	}
	return nil
}
