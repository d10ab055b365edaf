package listview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is the mounted form of a record: its text wrapped to the current
// width plus detail lines when expanded.
type Row struct {
	ID     string
	Lines  []string
	Detail []string
}

// Height returns the number of terminal rows the row occupies.
func (r *Row) Height() int {
	return len(r.Lines) + len(r.Detail)
}

// wrap word-wraps text to width cells. Empty text still takes one line.
func wrap(text string, width int) []string {
	if text == "" {
		return []string{strings.Repeat(" ", width)}
	}
	return strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
}

func detailText(id, text string) string {
	return fmt.Sprintf("id %s · %d chars · %d words", id, len(text), len(strings.Fields(text)))
}
