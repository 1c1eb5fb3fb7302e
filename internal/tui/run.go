package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nomoji/nomoji/internal/types"
)

// Run starts the interactive review session with the dry-run results of an
// initial scan.
func Run(results []types.FileResult, rescanFunc func() ([]types.FileResult, error), applyFunc func(paths []string) ([]types.FileResult, error)) error {
	m := NewModel(results, rescanFunc, applyFunc)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
