package cmd

import (
	"fmt"

	"github.com/pders01/formtree/internal/render"
	"github.com/spf13/cobra"
)

var cacheShowFormat string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the cached form",
	Long: `The cache holds the last form fetched from the network. It is used
when the endpoint cannot be reached.`,
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache file location",
	Args:  cobra.NoArgs,
	RunE:  runCachePath,
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cached form without touching the network",
	Args:  cobra.NoArgs,
	RunE:  runCacheShow,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cached form",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePathCmd, cacheShowCmd, cacheClearCmd)

	cacheShowCmd.Flags().StringVar(&cacheShowFormat, "format", "outline", "Output format: outline|json|toon")
}

func runCachePath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(stdout(cmd), openStore().Path())
	return nil
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(cacheShowFormat)
	if err != nil {
		return err
	}

	tree, ok := openStore().Load()
	if !ok {
		return fmt.Errorf("no cached form (run 'formtree fetch' while online)")
	}

	return render.Write(stdout(cmd), tree, format, render.Options{})
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	st := openStore()
	if !st.Exists() {
		fmt.Fprintln(stdout(cmd), "Cache is already empty")
		return nil
	}

	if err := st.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(stdout(cmd), "✓ Removed %s\n", st.Path())
	return nil
}
