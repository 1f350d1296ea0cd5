package cmd

import (
	"fmt"

	"github.com/pders01/formtree/internal/render"
	"github.com/spf13/cobra"
)

var (
	fetchFormat   string
	fetchDepth    int
	fetchSimulate bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the current form and print it",
	Long: `Fetch the form tree from the configured endpoint and print it.

If the endpoint cannot be reached, the last successfully fetched form is
shown instead, and failing that the form bundled with formtree. Either
way an "Offline Mode" banner is printed to stderr.

Formats:
  outline (default) - indented pages, sections and questions
  json              - the wire format, suitable for the bundle.path setting
  toon              - compact Token-Oriented Object Notation

Examples:
  formtree fetch
  formtree fetch --format json > form.json
  formtree fetch --simulate`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchFormat, "format", "outline", "Output format: outline|json|toon")
	fetchCmd.Flags().IntVar(&fetchDepth, "depth", 0, "Collapse containers below this depth (outline only, 0 = all)")
	fetchCmd.Flags().BoolVar(&fetchSimulate, "simulate", false, "Apply the stored simulation mode for this run")
}

func runFetch(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(fetchFormat)
	if err != nil {
		return err
	}
	if fetchDepth < 0 {
		return fmt.Errorf("--depth must not be negative")
	}

	pipeline := newPipeline(fetchSimulate)

	res, err := pipeline.Fetch(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to load form: %w\nRun 'formtree fetch' again to retry", err)
	}

	if res.CacheSourced {
		fmt.Fprintln(stderr(cmd), "Offline Mode - Using Cached Data")
	}

	return render.Write(stdout(cmd), res.Tree, format, render.Options{MaxDepth: fetchDepth})
}
