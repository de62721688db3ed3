package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var convertCmd = &cobra.Command{
	Use:   "convert [work-id]",
	Short: "Convert a work's source document into markdown artifacts",
	Long: `Convert the work's source document into markdown artifacts.

By default only the style-normalised rendering (style.md) is written.
Use --hier for the hierarchical rendering, --compare for both, and
--titles to additionally emit the title lists.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

// Conversion flags.
var (
	convertHier    bool
	convertCompare bool
	convertGPU     bool
	convertTitles  bool
)

func init() {
	convertCmd.Flags().BoolVar(&convertHier, "hier", false, "Produce the hierarchical rendering (hier.md)")
	convertCmd.Flags().BoolVar(&convertCompare, "compare", false, "Produce both renderings for comparison")
	convertCmd.Flags().BoolVar(&convertGPU, "gpu", false, "Use the GPU layout engine when available")
	convertCmd.Flags().BoolVar(&convertTitles, "titles", false, "Also emit titles.md and toc_titles.md")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	opts := domain.ConvertOptions{
		Hierarchical: convertHier,
		Compare:      convertCompare,
		UseGPU:       convertGPU,
		Titles:       convertTitles,
	}

	report, err := conversionService.Convert(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	cmd.Printf("Converted work %s\n", report.WorkID)
	for _, name := range report.Written {
		cmd.Printf("  wrote %s\n", name)
	}
	for _, d := range report.Degradations {
		cmd.Printf("  warning: %s\n", d)
	}
	return nil
}
