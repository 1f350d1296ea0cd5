package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pders01/formtree/internal/fetch"
	"github.com/pders01/formtree/internal/models"
	"github.com/pders01/formtree/internal/render"
	"github.com/spf13/cobra"
)

var (
	statsJSON     bool
	statsToon     bool
	statsSimulate bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the current form",
	Long: `Load the form the same way 'fetch' does and summarize it:
  - Pages, sections and questions by kind
  - Nesting depth
  - Nodes without a visible title
  - Where the form came from (network, cache or bundle)

Examples:
  formtree stats
  formtree stats --json
  formtree stats --toon`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
	statsCmd.Flags().BoolVar(&statsSimulate, "simulate", false, "Apply the stored simulation mode for this run")
}

type formStats struct {
	models.Stats
	Total        int          `json:"total"`
	Origin       fetch.Origin `json:"origin"`
	CacheSourced bool         `json:"cache_sourced"`
	Simulated    bool         `json:"simulated"`
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsJSON && statsToon {
		return fmt.Errorf("--json and --toon are mutually exclusive")
	}

	res, err := newPipeline(statsSimulate).Fetch(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to load form: %w", err)
	}

	s := models.CollectStats(res.Tree)
	stats := formStats{
		Stats:        s,
		Total:        s.Total(),
		Origin:       res.Origin,
		CacheSourced: res.CacheSourced,
		Simulated:    res.Simulated,
	}

	out := stdout(cmd)

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if statsToon {
		data, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		return render.TOONFromJSON(out, data)
	}

	title := models.DisplayTitle(res.Tree)
	if title == "" {
		title = "(untitled)"
	}

	fmt.Fprintf(out, "Form: %s\n", title)
	fmt.Fprintf(out, "Source: %s", res.Origin)
	if res.Simulated {
		fmt.Fprint(out, " (simulated)")
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Pages:            %d\n", s.Pages)
	fmt.Fprintf(out, "  Sections:         %d\n", s.Sections)
	fmt.Fprintf(out, "  Text questions:   %d\n", s.TextQuestions)
	fmt.Fprintf(out, "  Image questions:  %d\n", s.ImageQuestions)
	fmt.Fprintf(out, "  Total nodes:      %d\n", s.Total())
	fmt.Fprintf(out, "  Max depth:        %d\n", s.MaxDepth)
	fmt.Fprintf(out, "  Untitled:         %d\n", s.Untitled)

	return nil
}
