package listview

import "github.com/charmbracelet/lipgloss"

// Terminal colors.
var (
	ColorSelected = lipgloss.Color("212") //nolint:gochecknoglobals // Palette constant.
	ColorMuted    = lipgloss.Color("241") //nolint:gochecknoglobals // Palette constant.
	ColorThumb    = lipgloss.Color("63")  //nolint:gochecknoglobals // Palette constant.
	ColorTrack    = lipgloss.Color("237") //nolint:gochecknoglobals // Palette constant.
)

// Glyphs drawn in the gutter and scrollbar column.
const (
	gutterSelected = "▌ "
	gutterPlain    = "  "
	thumbGlyph     = "┃"
	trackGlyph     = "│"
	gutterWidth    = 2
	scrollbarWidth = 1
)

// Styles groups the lipgloss styles used by View.
type Styles struct {
	Row      lipgloss.Style
	Selected lipgloss.Style
	Detail   lipgloss.Style
	Thumb    lipgloss.Style
	Track    lipgloss.Style
	Status   lipgloss.Style
	Empty    lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Row:      lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Foreground(ColorSelected).Bold(true),
		Detail:   lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		Thumb:    lipgloss.NewStyle().Foreground(ColorThumb),
		Track:    lipgloss.NewStyle().Foreground(ColorTrack),
		Status:   lipgloss.NewStyle().Foreground(ColorMuted),
		Empty:    lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
	}
}
