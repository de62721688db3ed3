// Package tui implements the interactive curation editor using
// Bubbletea. The editor shows a work's suggestion table, lets the
// operator toggle which rows become chunks, and saves or applies the
// result through the curation port.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Messages produced by editor commands.
type (
	tableLoadedMsg struct{ table *domain.SuggestionTable }
	tableSavedMsg  struct{ version int64 }
	errMsg         struct{ err error }

	// tableAppliedMsg carries the saved version when the apply also
	// persisted pending edits; version is 0 for a clean apply.
	tableAppliedMsg struct {
		chunks  int
		version int64
	}
)

// Editor is the curation editor model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type Editor struct {
	curation driving.CurationService
	workID   string

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the editor styles.
	styles *styles.Styles

	// keys holds the keybindings.
	keys *keymap.KeyMap

	table  *domain.SuggestionTable
	cursor int
	dirty  bool
	status string
	err    error

	width  int
	height int
}

// NewEditor creates a curation editor for the given work.
func NewEditor(curation driving.CurationService, workID string) (*Editor, error) {
	if curation == nil {
		return nil, errors.New("curation service is required")
	}
	if workID == "" {
		return nil, errors.New("work ID is required")
	}

	return &Editor{
		curation: curation,
		workID:   workID,
		ctx:      context.Background(),
		styles:   styles.DefaultStyles(),
		keys:     keymap.DefaultKeyMap(),
		height:   24,
	}, nil
}

// WithContext sets the context used for service calls.
func (e *Editor) WithContext(ctx context.Context) *Editor {
	if ctx != nil {
		e.ctx = ctx
	}
	return e
}

// Init loads the suggestion table.
func (e *Editor) Init() tea.Cmd {
	return e.load
}

func (e *Editor) load() tea.Msg {
	table, err := e.curation.Get(e.ctx, e.workID)
	if err != nil {
		return errMsg{err: err}
	}
	return tableLoadedMsg{table: table}
}

func (e *Editor) save() tea.Msg {
	version, err := e.curation.Update(e.ctx, e.workID, e.table.Rows, e.table.Version)
	if err != nil {
		return errMsg{err: err}
	}
	return tableSavedMsg{version: version}
}

func (e *Editor) apply() tea.Msg {
	chunks, err := e.curation.Apply(e.ctx, e.workID)
	if err != nil {
		return errMsg{err: err}
	}
	return tableAppliedMsg{chunks: len(chunks)}
}

// saveAndApply persists pending edits and only then applies. A failed
// save (a version conflict in particular) aborts the apply so the
// conflict surfaces to the operator instead of the other editor's
// table being applied under a success message.
func (e *Editor) saveAndApply() tea.Msg {
	version, err := e.curation.Update(e.ctx, e.workID, e.table.Rows, e.table.Version)
	if err != nil {
		return errMsg{err: err}
	}
	chunks, err := e.curation.Apply(e.ctx, e.workID)
	if err != nil {
		return errMsg{err: err}
	}
	return tableAppliedMsg{chunks: len(chunks), version: version}
}

// Update handles messages.
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
		return e, nil

	case tableLoadedMsg:
		e.table = msg.table
		e.err = nil
		if e.cursor >= len(e.table.Rows) {
			e.cursor = 0
		}
		e.dirty = false
		e.status = fmt.Sprintf("loaded %d rows (version %d)", len(e.table.Rows), e.table.Version)
		return e, nil

	case tableSavedMsg:
		e.table.Version = msg.version
		e.dirty = false
		e.err = nil
		e.status = fmt.Sprintf("saved (version %d)", msg.version)
		return e, nil

	case tableAppliedMsg:
		if msg.version > 0 {
			e.table.Version = msg.version
			e.dirty = false
		}
		e.err = nil
		e.status = fmt.Sprintf("applied: %d chunks", msg.chunks)
		return e, nil

	case errMsg:
		e.err = msg.err
		return e, nil

	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	return e, nil
}

func (e *Editor) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, e.keys.Quit):
		return e, tea.Quit

	case key.Matches(msg, e.keys.Up):
		if e.cursor > 0 {
			e.cursor--
		}

	case key.Matches(msg, e.keys.Down):
		if e.table != nil && e.cursor < len(e.table.Rows)-1 {
			e.cursor++
		}

	case key.Matches(msg, e.keys.Toggle):
		if e.table != nil && e.cursor < len(e.table.Rows) {
			e.table.Rows[e.cursor].Vectorize = !e.table.Rows[e.cursor].Vectorize
			e.dirty = true
			e.status = ""
		}

	case key.Matches(msg, e.keys.Save):
		if e.table != nil && e.dirty {
			return e, e.save
		}

	case key.Matches(msg, e.keys.Apply):
		if e.table == nil {
			break
		}
		if e.dirty {
			return e, e.saveAndApply
		}
		return e, e.apply
	}

	return e, nil
}

// View renders the editor.
func (e *Editor) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Curation: %s", e.workID)
	if e.dirty {
		title += " *"
	}
	b.WriteString(e.styles.Title.Render(title))
	b.WriteString("\n\n")

	if e.err != nil {
		b.WriteString(e.styles.Error.Render(fmt.Sprintf("error: %v", e.err)))
		b.WriteString("\n")
	}

	if e.table == nil {
		b.WriteString(e.styles.Muted.Render("loading..."))
		b.WriteString("\n")
		return b.String()
	}

	for i, row := range e.table.Rows {
		marker := "[ ]"
		if row.Vectorize {
			marker = "[x]"
		}

		indent := strings.Repeat("  ", row.Level-1)
		line := fmt.Sprintf("%s %s%s  (lines %d-%d)", marker, indent, row.Heading, row.Span.StartLine, row.Span.EndLine)

		lineStyle := e.styles.Muted
		switch {
		case i == e.cursor:
			lineStyle = e.styles.Selected
			line = "> " + line
		case row.Vectorize:
			lineStyle = e.styles.Marked
			line = "  " + line
		default:
			line = "  " + line
		}

		b.WriteString(lineStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "↑/k up · ↓/j down · space toggle · s save · a apply · q quit"
	if e.status != "" {
		help = e.status + " | " + help
	}
	b.WriteString(e.styles.Status.Render(help))

	return b.String()
}
