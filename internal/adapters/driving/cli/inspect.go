package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [work-id]",
	Short: "Report which processing stages are available for a work",
	Long: `Evaluate the processing checks against the work's current artifacts.

Each check reports available or unavailable based purely on which
artifact files exist right now. With --watch, inspection re-runs
whenever the work's artifact directory changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// inspectWatch keeps inspecting as artifacts change.
var inspectWatch bool

func init() {
	inspectCmd.Flags().BoolVarP(&inspectWatch, "watch", "w", false, "Re-run inspection on artifact changes")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}

	workID := args[0]

	if inspectWatch {
		err := inspectionService.Watch(cmd.Context(), workID, func(results []domain.InspectionResult) {
			printResults(cmd, workID, results)
			cmd.Println()
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	results, err := inspectionService.Inspect(cmd.Context(), workID)
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	printResults(cmd, workID, results)
	return nil
}

func printResults(cmd *cobra.Command, workID string, results []domain.InspectionResult) {
	checksByName := make(map[string]domain.InspectionCheck, len(domain.DefaultChecks))
	for _, c := range domain.DefaultChecks {
		checksByName[c.Name] = c
	}

	cmd.Printf("Inspection for work %s\n", workID)
	for _, r := range results {
		marker := "[--]"
		if r.Available {
			marker = "[ok]"
		}
		check := checksByName[r.Check]
		requires := make([]string, len(check.Requires))
		for i, name := range check.Requires {
			requires[i] = string(name)
		}
		cmd.Printf("  %s %-16s %s of: %s\n", marker, check.Name, check.Policy, strings.Join(requires, ", "))
	}
}
