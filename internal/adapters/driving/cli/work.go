package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Manage works",
	Long:  `Register, list, inspect, or remove works (source documents).`,
}

var workAddCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Register a source document as a new work",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkAdd,
}

var workListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered works",
	RunE:  runWorkList,
}

var workShowCmd = &cobra.Command{
	Use:   "show [work-id]",
	Short: "Show work info",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkShow,
}

var workRemoveCmd = &cobra.Command{
	Use:   "remove [work-id]",
	Short: "Remove a work and all derived state",
	Long:  `Removes the work together with its artifacts, suggestion table, and chunks.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkRemove,
}

// workTitle is a flag for the add command.
var workTitle string

func init() {
	workAddCmd.Flags().StringVarP(&workTitle, "title", "t", "", "Title for the work (defaults to the filename stem)")

	workCmd.AddCommand(workAddCmd)
	workCmd.AddCommand(workListCmd)
	workCmd.AddCommand(workShowCmd)
	workCmd.AddCommand(workRemoveCmd)
	rootCmd.AddCommand(workCmd)
}

func runWorkAdd(cmd *cobra.Command, args []string) error {
	if workService == nil {
		return errors.New("work service not configured")
	}

	work, err := workService.Ingest(context.Background(), workTitle, args[0])
	if err != nil {
		return fmt.Errorf("failed to add work: %w", err)
	}

	cmd.Printf("Added work %s\n", work.ID)
	cmd.Printf("  Title: %s\n", work.Title)
	cmd.Printf("  Source: %s\n", work.SourceURI)
	return nil
}

func runWorkList(cmd *cobra.Command, _ []string) error {
	if workService == nil {
		return errors.New("work service not configured")
	}

	works, err := workService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list works: %w", err)
	}

	if len(works) == 0 {
		cmd.Println("No works registered")
		return nil
	}

	for i := range works {
		cmd.Printf("  %s\n", works[i].ID)
		cmd.Printf("    Title: %s\n", works[i].Title)
		cmd.Printf("    Source: %s\n", works[i].SourceURI)
		cmd.Println()
	}

	cmd.Printf("Total: %d works\n", len(works))
	return nil
}

func runWorkShow(cmd *cobra.Command, args []string) error {
	if workService == nil {
		return errors.New("work service not configured")
	}

	work, err := workService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get work: %w", err)
	}

	cmd.Printf("Work: %s\n\n", work.ID)
	cmd.Printf("  Title:    %s\n", work.Title)
	cmd.Printf("  Source:   %s\n", work.SourceURI)
	cmd.Printf("  Stem:     %s\n", work.Stem)
	cmd.Printf("  Created:  %s\n", work.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:  %s\n", work.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runWorkRemove(cmd *cobra.Command, args []string) error {
	if workService == nil {
		return errors.New("work service not configured")
	}

	if err := workService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to remove work: %w", err)
	}

	cmd.Printf("Removed work %s\n", args[0])
	return nil
}
