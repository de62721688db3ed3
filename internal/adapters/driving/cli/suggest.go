package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Manage chunk suggestion tables",
	Long: `Generate, review, edit, and apply chunk suggestion tables.

A suggestion table is derived from a work's hierarchical rendering and
lists one row per heading. Rows marked for vectorisation become chunks
when the table is applied.`,
}

var suggestGenerateCmd = &cobra.Command{
	Use:   "generate [work-id]",
	Short: "Derive a fresh suggestion table from hier.md",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestGenerate,
}

var suggestShowCmd = &cobra.Command{
	Use:   "show [work-id]",
	Short: "Show the current suggestion table",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestShow,
}

var suggestSetCmd = &cobra.Command{
	Use:   "set [work-id] [index]",
	Short: "Edit a single suggestion row",
	Long: `Edit one row of the suggestion table.

The edit is validated and versioned: it fails if the table changed
since it was last read (pass --version to assert the expected one).`,
	Args: cobra.ExactArgs(2),
	RunE: runSuggestSet,
}

var suggestApplyCmd = &cobra.Command{
	Use:   "apply [work-id]",
	Short: "Apply the suggestion table, replacing the work's chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestApply,
}

// Flags for the set command.
var (
	setVectorize string
	setHeading   string
	setVersion   int64
)

func init() {
	suggestSetCmd.Flags().StringVar(&setVectorize, "vectorize", "", "Mark the row for vectorisation (true/false)")
	suggestSetCmd.Flags().StringVar(&setHeading, "heading", "", "Replace the row's heading text")
	suggestSetCmd.Flags().Int64Var(&setVersion, "version", 0, "Expected table version (0 uses the current one)")

	suggestCmd.AddCommand(suggestGenerateCmd)
	suggestCmd.AddCommand(suggestShowCmd)
	suggestCmd.AddCommand(suggestSetCmd)
	suggestCmd.AddCommand(suggestApplyCmd)
	rootCmd.AddCommand(suggestCmd)
}

func runSuggestGenerate(cmd *cobra.Command, args []string) error {
	if curationService == nil {
		return errors.New("curation service not configured")
	}

	table, err := curationService.Generate(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to generate suggestions: %w", err)
	}

	cmd.Printf("Generated %d suggestions for work %s (version %d)\n", len(table.Rows), table.WorkID, table.Version)
	return nil
}

func runSuggestShow(cmd *cobra.Command, args []string) error {
	if curationService == nil {
		return errors.New("curation service not configured")
	}

	table, err := curationService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get suggestions: %w", err)
	}

	cmd.Printf("Suggestions for work %s (version %d)\n\n", table.WorkID, table.Version)
	for _, row := range table.Rows {
		marker := " "
		if row.Vectorize {
			marker = "x"
		}
		indent := strings.Repeat("  ", row.Level-1)
		cmd.Printf("  %3d [%s] %s%s (lines %d-%d)\n",
			row.Index, marker, indent, row.Heading, row.Span.StartLine, row.Span.EndLine)
	}
	return nil
}

func runSuggestSet(cmd *cobra.Command, args []string) error {
	if curationService == nil {
		return errors.New("curation service not configured")
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid row index %q", args[1])
	}

	ctx := context.Background()
	table, err := curationService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get suggestions: %w", err)
	}
	if index < 0 || index >= len(table.Rows) {
		return fmt.Errorf("row index %d out of range (table has %d rows)", index, len(table.Rows))
	}

	rows := make([]domain.SuggestionRow, len(table.Rows))
	copy(rows, table.Rows)

	if setVectorize != "" {
		v, err := strconv.ParseBool(setVectorize)
		if err != nil {
			return fmt.Errorf("invalid --vectorize value %q", setVectorize)
		}
		rows[index].Vectorize = v
	}
	if setHeading != "" {
		rows[index].Heading = setHeading
	}

	expected := table.Version
	if setVersion != 0 {
		expected = setVersion
	}

	newVersion, err := curationService.Update(ctx, args[0], rows, expected)
	if err != nil {
		return fmt.Errorf("failed to update suggestions: %w", err)
	}

	cmd.Printf("Updated row %d (table now at version %d)\n", index, newVersion)
	return nil
}

func runSuggestApply(cmd *cobra.Command, args []string) error {
	if curationService == nil {
		return errors.New("curation service not configured")
	}

	chunks, err := curationService.Apply(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to apply suggestions: %w", err)
	}

	cmd.Printf("Applied suggestions for work %s: %d chunks\n", args[0], len(chunks))
	for _, chunk := range chunks {
		cmd.Printf("  %d: %s (lines %d-%d)\n", chunk.Position, strings.Join(chunk.HeadingPath, " > "), chunk.StartLine, chunk.EndLine)
	}
	return nil
}
