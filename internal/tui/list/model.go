package listview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/dynlist/internal/dynlist"
	"github.com/rshade/dynlist/internal/ingest"
	"github.com/rshade/dynlist/internal/viewport"
)

// Defaults applied when Options leave a field zero.
const (
	defaultWidth       = 80
	defaultHeight      = 24
	defaultBufferRows  = 5
	statusHeight       = 1
	wheelLines         = 3
	appendSeedBase     = 1 << 20
	defaultMinThumbLen = 1
)

// Options configures a Model.
type Options struct {
	Width  int
	Height int

	// ViewportBuffer is the number of rows mounted beyond each edge.
	ViewportBuffer float64
	ScrollThrottle time.Duration
	InitialScrollY float64
	ContentClasses []string
	Scrollbar      map[string]any
	ShowHelp       bool

	Keys   *KeyMap
	Styles *Styles
	Logger *zerolog.Logger
}

// Model is a Bubble Tea model showing records through a dynlist.
type Model struct {
	records  map[string]ingest.Record
	expanded map[string]bool
	lines    map[string][]string

	vp    *viewport.Viewport[*Row]
	list  *dynlist.List[string, *Row]
	sched *tickScheduler

	keys   KeyMap
	styles Styles
	help   help.Model
	log    zerolog.Logger

	showHelp bool
	width    int
	height   int
	selected string
	appended int
}

// New builds a model over records and renders the first frame.
func New(records []ingest.Record, opts Options) (*Model, error) {
	m := &Model{
		records:  ingest.Index(records),
		expanded: make(map[string]bool),
		lines:    make(map[string][]string),
		sched:    newTickScheduler(),
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
		log:      zerolog.Nop(),
		showHelp: opts.ShowHelp,
		width:    opts.Width,
		height:   opts.Height,
	}
	if m.width <= 0 {
		m.width = defaultWidth
	}
	if m.height <= 0 {
		m.height = defaultHeight
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	}
	if opts.Styles != nil {
		m.styles = *opts.Styles
	}
	if opts.Logger != nil {
		m.log = *opts.Logger
	}
	m.help.Width = m.width

	buffer := opts.ViewportBuffer
	if buffer <= 0 {
		buffer = defaultBufferRows
	}
	scrollbar := opts.Scrollbar
	if scrollbar == nil {
		scrollbar = map[string]any{"min_thumb": defaultMinThumbLen}
	}

	m.vp = viewport.New[*Row](float64(m.listHeight()))
	list, err := dynlist.New[string, *Row](m.vp, dynlist.Options[string, *Row]{
		ItemHeight:       m.itemHeight,
		ItemRender:       m.renderRow,
		ScrollbarOptions: scrollbar,
		ViewportBuffer:   buffer,
		ContentClasses:   opts.ContentClasses,
		InitialScrollY:   opts.InitialScrollY,
		Items:            ingest.IDs(records),
		ScrollThrottle:   opts.ScrollThrottle,
		Scheduler:        m.sched,
		Logger:           &m.log,
	})
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}
	m.list = list
	if err = list.InitialRender(); err != nil {
		return nil, err
	}
	if len(records) > 0 {
		m.selected = records[0].ID
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case scrollTickMsg:
		m.sched.fire(msg)
	}
	return m, tea.Batch(cmd, m.sched.drain())
}

//nolint:cyclop // One branch per binding.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.LineDown):
		m.vp.ScrollBy(1)
	case key.Matches(msg, m.keys.LineUp):
		m.vp.ScrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.list.ScrollToYPosition(m.vp.ScrollTop() + m.vp.ViewportHeight())
	case key.Matches(msg, m.keys.PageUp):
		m.list.ScrollToYPosition(m.vp.ScrollTop() - m.vp.ViewportHeight())
	case key.Matches(msg, m.keys.Home):
		m.selectIndex(0)
	case key.Matches(msg, m.keys.End):
		m.selectIndex(m.list.Len() - 1)
	case key.Matches(msg, m.keys.Toggle):
		m.ToggleExpanded(m.selected)
	case key.Matches(msg, m.keys.Remove):
		m.RemoveSelected()
	case key.Matches(msg, m.keys.Append):
		m.Append()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	//nolint:exhaustive // Only the wheel scrolls.
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.vp.ScrollBy(-wheelLines)
	case tea.MouseButtonWheelDown:
		m.vp.ScrollBy(wheelLines)
	}
}

func (m *Model) resize(width, height int) {
	widthChanged := width != m.width
	m.width, m.height = width, height
	m.help.Width = width
	m.vp.Resize(float64(m.listHeight()))
	if widthChanged {
		clear(m.lines)
		m.list.RemeasureAll()
		return
	}
	m.list.Resized()
}

func (m *Model) moveSelection(delta int) {
	if m.list.Len() == 0 {
		return
	}
	i := m.list.IndexOf(m.selected)
	m.selectIndex(min(max(i+delta, 0), m.list.Len()-1))
}

func (m *Model) selectIndex(i int) {
	items := m.list.Items()
	if i < 0 || i >= len(items) {
		return
	}
	m.selected = items[i]
	m.list.ScrollToItem(m.selected)
}

// ToggleExpanded shows or hides the detail lines of id.
func (m *Model) ToggleExpanded(id string) {
	if !m.list.Has(id) {
		return
	}
	m.expanded[id] = !m.expanded[id]
	m.list.ItemChanged(id)
	m.list.ScrollToItem(id)
}

// RemoveSelected removes the selected record and selects its successor.
func (m *Model) RemoveSelected() {
	i := m.list.IndexOf(m.selected)
	if i < 0 {
		return
	}
	id := m.selected
	m.list.Remove([]string{id}, true)
	delete(m.records, id)
	delete(m.expanded, id)
	delete(m.lines, id)
	m.log.Debug().Str("id", id).Int("remaining", m.list.Len()).Msg("record removed")

	m.selected = ""
	if n := m.list.Len(); n > 0 {
		m.selectIndex(min(i, n-1))
	}
}

// Append adds a generated record at the end of the list.
func (m *Model) Append() string {
	m.appended++
	gen, err := ingest.Generate(1, uint64(appendSeedBase+m.appended))
	if err != nil {
		return ""
	}
	rec := ingest.Record{ID: fmt.Sprintf("added-%d", m.appended), Text: gen[0].Text}
	m.records[rec.ID] = rec
	m.list.Add(rec.ID)
	m.list.Refresh()
	if m.selected == "" {
		m.selected = rec.ID
	}
	return rec.ID
}

// AddRecords appends records without re-syncing the view; call Refresh
// once the last batch is in. Ids already present are skipped.
func (m *Model) AddRecords(records []ingest.Record) {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := m.records[r.ID]; ok {
			continue
		}
		m.records[r.ID] = r
		ids = append(ids, r.ID)
	}
	m.list.BatchAdd(ids)
	if m.selected == "" && len(ids) > 0 {
		m.selected = ids[0]
	}
}

// Refresh recomputes the layout and re-syncs the view.
func (m *Model) Refresh() {
	m.list.Refresh()
}

// Snapshot renders the current frame without key help.
func (m *Model) Snapshot() string {
	return m.frame(false)
}

// List exposes the underlying list.
func (m *Model) List() *dynlist.List[string, *Row] { return m.list }

// Viewport exposes the terminal viewport host.
func (m *Model) Viewport() *viewport.Viewport[*Row] { return m.vp }

// Selected returns the selected record id, or "" when the list is empty.
func (m *Model) Selected() string { return m.selected }

func (m *Model) listHeight() int {
	return max(m.height-statusHeight, 1)
}

func (m *Model) textWidth() int {
	return max(m.width-gutterWidth-scrollbarWidth, 1)
}

func (m *Model) wrapped(id string) []string {
	if lines, ok := m.lines[id]; ok {
		return lines
	}
	lines := wrap(m.records[id].Text, m.textWidth())
	m.lines[id] = lines
	return lines
}

func (m *Model) detail(id string) []string {
	if !m.expanded[id] {
		return nil
	}
	return wrap(detailText(id, m.records[id].Text), m.textWidth())
}

func (m *Model) itemHeight(id string) float64 {
	return float64(len(m.wrapped(id)) + len(m.detail(id)))
}

func (m *Model) renderRow(id string, _ int) *Row {
	return &Row{ID: id, Lines: m.wrapped(id), Detail: m.detail(id)}
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.frame(m.showHelp)
}

func (m *Model) frame(withHelp bool) string {
	vh := m.listHeight()
	body := m.bodyLines(vh)
	bar := m.scrollbarLines(vh)

	var b strings.Builder
	for i := range vh {
		b.WriteString(body[i])
		b.WriteString(bar[i])
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine(withHelp))
	return b.String()
}

// bodyLines walks the mounted rows from the spacer offset and keeps the
// lines that fall inside the viewport.
func (m *Model) bodyLines(vh int) []string {
	blank := strings.Repeat(" ", gutterWidth+m.textWidth())
	out := make([]string, vh)
	for i := range out {
		out[i] = blank
	}
	if m.list.Len() == 0 {
		out[0] = lipgloss.NewStyle().Width(gutterWidth + m.textWidth()).Render(m.styles.Empty.Render("no records"))
		return out
	}

	top := int(m.vp.ScrollTop())
	y := int(m.vp.Spacer())
	for _, row := range m.vp.Nodes() {
		selected := row.ID == m.selected
		for j := range row.Height() {
			if at := y - top; at >= 0 && at < vh {
				out[at] = m.renderLine(row, j, selected)
			}
			y++
		}
		if y-top >= vh {
			break
		}
	}
	return out
}

func (m *Model) renderLine(row *Row, j int, selected bool) string {
	gutter := gutterPlain
	style := m.styles.Row
	if selected {
		gutter = gutterSelected
		style = m.styles.Selected
	}
	if j >= len(row.Lines) {
		return gutter + m.styles.Detail.Render(row.Detail[j-len(row.Lines)])
	}
	return style.Render(gutter + row.Lines[j])
}

func (m *Model) scrollbarLines(vh int) []string {
	out := make([]string, vh)
	offset, length, ok := m.vp.Thumb(vh)
	for i := range out {
		switch {
		case !ok:
			out[i] = " "
		case i >= offset && i < offset+length:
			out[i] = m.styles.Thumb.Render(thumbGlyph)
		default:
			out[i] = m.styles.Track.Render(trackGlyph)
		}
	}
	return out
}

func (m *Model) statusLine(withHelp bool) string {
	pos := m.list.IndexOf(m.selected) + 1
	status := fmt.Sprintf("%d/%d", pos, m.list.Len())
	if first, last, ok := m.list.VisibleRange(); ok {
		status += fmt.Sprintf("  mounted %d-%d", first+1, last+1)
	}
	status += fmt.Sprintf("  syncs %d", m.list.Stats().Syncs)
	status = m.styles.Status.Render(status)
	if withHelp {
		status += "  " + m.help.View(m.keys)
	}
	return status
}
