package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui"
)

var curateCmd = &cobra.Command{
	Use:   "curate [work-id]",
	Short: "Edit the suggestion table interactively",
	Long: `Launch the interactive curation editor for a work.

The editor shows the suggestion table derived from the hierarchical
rendering. Toggle which rows become chunks, save the table, and apply
it without leaving the terminal.

Controls:
  ↑/k, ↓/j - Navigate rows
  Space    - Toggle vectorize mark
  s        - Save the table
  a        - Apply (save first if edited)
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runCurate,
}

func init() {
	rootCmd.AddCommand(curateCmd)
}

func runCurate(cmd *cobra.Command, args []string) error {
	if curationService == nil {
		return errors.New("curation service not configured")
	}

	// Panic recovery keeps a stack trace visible when the terminal is
	// restored from the alt screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in editor: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	editor, err := tui.NewEditor(curationService, args[0])
	if err != nil {
		return fmt.Errorf("failed to create editor: %w", err)
	}
	editor.WithContext(cmd.Context())

	p := tea.NewProgram(editor, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor error: %w", err)
	}

	return nil
}
