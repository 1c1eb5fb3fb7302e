package tui

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nomoji/nomoji/internal/scrub"
	"github.com/nomoji/nomoji/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	previewBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	emojiMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)

	cleanCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dirtyCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const maxPreviewLines = 200

// statusText returns plain text for a result row (ANSI codes break table truncation).
func statusText(r types.FileResult) string {
	switch {
	case !r.Success:
		return "ERROR"
	case r.Skipped:
		return "skipped"
	case r.Removed == 0:
		return "clean"
	default:
		return "pending"
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// Model represents the main state of the TUI application.
type Model struct {
	table          table.Model
	viewport       viewport.Model
	spinner        spinner.Model
	results        []types.FileResult
	visibleIndices []int        // Maps table row to results index (ShowClean filter applied)
	selected       map[int]bool // Selected results indices for bulk apply
	quitting       bool
	ready          bool // Indicates if terminal dimensions are known
	scanning       bool // True when rescan or apply is in progress
	lastScanTime   time.Time
	height         int
	width          int
	statusMessage  string
	statusTimeout  *time.Time // When to clear status message
	showEmpty      bool       // True if nothing contained emoji
	showHelp       bool       // True when help overlay is shown
	prefs          Prefs

	rescanFunc func() ([]types.FileResult, error)
	applyFunc  func(paths []string) ([]types.FileResult, error)
}

type resultsMsg []types.FileResult

type appliedMsg []types.FileResult

type statusMsg string

// NewModel initializes a new TUI model.
func NewModel(results []types.FileResult, rescanFunc func() ([]types.FileResult, error), applyFunc func(paths []string) ([]types.FileResult, error)) Model {
	columns := []table.Column{
		{Title: "Path", Width: 50},
		{Title: "Emoji", Width: 8},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)

	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)

	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)

	t.SetStyles(s)

	// Line spinner avoids Braille characters that render poorly on some terminals
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := Model{
		table:        t,
		spinner:      sp,
		results:      results,
		selected:     make(map[int]bool),
		rescanFunc:   rescanFunc,
		applyFunc:    applyFunc,
		lastScanTime: time.Now(),
		prefs:        LoadPrefs(),
	}
	m.rebuildRows()
	m.showEmpty = len(m.visibleIndices) == 0

	if m.showEmpty {
		m.statusMessage = "q: quit | r: rescan | c: toggle clean files"
	} else {
		m.statusMessage = "q: quit | ?: help | j/k: navigate | space: select | a: apply | r: rescan"
	}

	return m
}

// rebuildRows recomputes the visible rows from results, honoring ShowClean.
func (m *Model) rebuildRows() {
	rows := make([]table.Row, 0, len(m.results))
	m.visibleIndices = m.visibleIndices[:0]
	for i, r := range m.results {
		if !m.prefs.ShowClean && r.Success && !r.Skipped && r.Removed == 0 {
			continue
		}
		mark := " "
		if m.selected[i] {
			mark = "*"
		}
		rows = append(rows, table.Row{
			mark + r.Path,
			strconv.Itoa(r.Removed),
			statusText(r),
		})
		m.visibleIndices = append(m.visibleIndices, i)
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// cursorResult returns the result under the cursor, or nil.
func (m *Model) cursorResult() *types.FileResult {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visibleIndices) {
		return nil
	}
	return &m.results[m.visibleIndices[idx]]
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) rescan() tea.Cmd {
	return func() tea.Msg {
		if m.rescanFunc == nil {
			return statusMsg("Rescan not available")
		}
		newResults, err := m.rescanFunc()
		if err != nil {
			return statusMsg(fmt.Sprintf("Scan error: %v", err))
		}
		return resultsMsg(newResults)
	}
}

// applyTargets returns the paths a press of 'a' would clean: the selection if
// any, otherwise every pending file.
func (m *Model) applyTargets() []string {
	var paths []string
	if len(m.selected) > 0 {
		for i := range m.results {
			if m.selected[i] && m.results[i].Success && m.results[i].Removed > 0 {
				paths = append(paths, m.results[i].Path)
			}
		}
		return paths
	}
	for _, r := range m.results {
		if r.Success && !r.Skipped && r.Removed > 0 {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

func (m *Model) apply() tea.Cmd {
	paths := m.applyTargets()
	return func() tea.Msg {
		if m.applyFunc == nil {
			return statusMsg("Apply not available")
		}
		if len(paths) == 0 {
			return statusMsg("Nothing to clean")
		}
		applied, err := m.applyFunc(paths)
		if err != nil {
			return statusMsg(fmt.Sprintf("Clean error: %v", err))
		}
		return appliedMsg(applied)
	}
}

func (m *Model) setStatus(s string, after time.Duration) {
	timeout := time.Now().Add(after)
	m.statusTimeout = &timeout
	m.statusMessage = s
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.scanning {
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case " ":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.visibleIndices) {
				ri := m.visibleIndices[idx]
				if m.selected[ri] {
					delete(m.selected, ri)
				} else {
					m.selected[ri] = true
				}
				m.rebuildRows()
				m.setStatus(fmt.Sprintf("%d selected", len(m.selected)), 3*time.Second)
			}
			return m, nil
		case "a":
			if len(m.applyTargets()) == 0 {
				m.setStatus("Nothing to clean", 3*time.Second)
				return m, nil
			}
			m.scanning = true
			return m, tea.Batch(m.spinner.Tick, m.apply())
		case "r":
			m.scanning = true
			m.selected = make(map[int]bool)
			return m, tea.Batch(m.spinner.Tick, m.rescan())
		case "c":
			m.prefs.ShowClean = !m.prefs.ShowClean
			_ = SavePrefs(m.prefs)
			m.rebuildRows()
			if m.prefs.ShowClean {
				m.setStatus("Showing clean files", 3*time.Second)
			} else {
				m.setStatus("Hiding clean files", 3*time.Second)
			}
			return m, nil
		case "g":
			m.table.GotoTop()
			m.updateViewportContent()
			return m, nil
		case "G":
			m.table.GotoBottom()
			m.updateViewportContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		usableWidth := m.width - 8
		emojiWidth := 8
		statusWidth := 10
		pathWidth := usableWidth - emojiWidth - statusWidth
		if pathWidth < 30 {
			pathWidth = 30
		}

		cols := m.table.Columns()
		cols[0].Width = pathWidth
		cols[1].Width = emojiWidth
		cols[2].Width = statusWidth
		m.table.SetColumns(cols)

		availableHeight := m.height - lipgloss.Height(statusStyle.Render("")) - 1
		tableHeight := int(float64(availableHeight) * 0.4)
		viewportHeight := availableHeight - tableHeight - previewBorderStyle.GetVerticalFrameSize() - 1

		m.table.SetWidth(m.width)
		m.table.SetHeight(tableHeight)

		if m.viewport.Height == 0 {
			m.viewport = viewport.New(m.width, viewportHeight)
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()
		statusStyle = statusStyle.Width(m.width)

	case resultsMsg:
		m.results = msg
		m.selected = make(map[int]bool)
		m.rebuildRows()
		m.showEmpty = len(m.visibleIndices) == 0
		m.lastScanTime = time.Now()
		m.scanning = false
		if m.showEmpty {
			m.setStatus("Rescan complete - no emoji found", 5*time.Second)
		} else {
			m.setStatus(fmt.Sprintf("Rescan complete - %d files listed", len(m.visibleIndices)), 5*time.Second)
		}
		m.updateViewportContent()

	case appliedMsg:
		applied := make(map[string]types.FileResult, len(msg))
		total := 0
		for _, r := range msg {
			applied[r.Path] = r
			total += r.Removed
		}
		for i := range m.results {
			if r, ok := applied[m.results[i].Path]; ok {
				m.results[i] = r
				// A cleaned file has nothing left to remove.
				if r.Success && !r.Skipped {
					m.results[i].Removed = 0
				}
			}
		}
		m.selected = make(map[int]bool)
		m.rebuildRows()
		m.scanning = false
		m.setStatus(fmt.Sprintf("Cleaned %d files (%d emoji removed)", len(msg), total), 5*time.Second)
		m.updateViewportContent()

	case statusMsg:
		m.scanning = false
		m.setStatus(string(msg), 3*time.Second)

	case spinner.TickMsg:
		var spinCmd tea.Cmd
		m.spinner, spinCmd = m.spinner.Update(msg)
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusTimeout = nil
			if m.showEmpty {
				m.statusMessage = "q: quit | r: rescan | c: toggle clean files"
			} else {
				m.statusMessage = "q: quit | ?: help | j/k: navigate | space: select | a: apply | r: rescan"
			}
		}
		return m, spinCmd
	}

	if !m.quitting && !m.scanning {
		m.table, cmd = m.table.Update(msg)
	}

	m.updateViewportContent()
	return m, cmd
}

// updateViewportContent renders a highlighted preview of the file under the
// cursor, flagging lines that still contain emoji.
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	r := m.cursorResult()
	if r == nil {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("File Preview") + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Path:"), r.Path))
	if !r.Success {
		b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Error:"), r.Error))
		m.viewport.SetContent(b.String())
		return
	}
	if r.Skipped {
		b.WriteString(keyStyle.Render("Status:") + " skipped\n")
		m.viewport.SetContent(b.String())
		return
	}
	b.WriteString(fmt.Sprintf("%s %d\n\n", keyStyle.Render("Emoji:"), r.Removed))

	data, err := os.ReadFile(r.Path)
	if err != nil {
		b.WriteString(fmt.Sprintf("(cannot read file: %v)\n", err))
		m.viewport.SetContent(b.String())
		return
	}

	lines := strings.Split(string(data), "\n")
	truncated := false
	if len(lines) > maxPreviewLines {
		lines = lines[:maxPreviewLines]
		truncated = true
	}
	for i, line := range lines {
		lineNum := fmt.Sprintf("%4d  ", i+1)
		if n := scrub.Count(line); n > 0 {
			marker := emojiMarkStyle.Render(fmt.Sprintf(" ← %d emoji", n))
			b.WriteString(lineNum + highlightLine(line, r.Path) + marker + "\n")
		} else {
			b.WriteString(lineNum + highlightLine(line, r.Path) + "\n")
		}
	}
	if truncated {
		b.WriteString("\n(preview truncated)\n")
	}
	m.viewport.SetContent(b.String())
}

func highlightLine(line string, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return line // No highlighting for unknown file types
	}

	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}

	return strings.TrimRight(buf.String(), "\n")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	if m.scanning {
		msgContent := fmt.Sprintf("%s  Working...\n\nPlease wait", m.spinner.View())
		popupBox := popupStyle.
			Width(55).
			Align(lipgloss.Center).
			Render(msgContent)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupBox)
	}

	if m.showHelp {
		help := strings.Join([]string{
			titleStyle.Render("Keys"),
			"",
			"  j/k, up/down   navigate files",
			"  space          select/deselect file",
			"  a              clean selection (or all pending)",
			"  r              rescan",
			"  c              show/hide clean files",
			"  g / G          jump to top / bottom",
			"  ?              close this help",
			"  q              quit",
		}, "\n")
		popupBox := popupStyle.Width(55).Render(help)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupBox)
	}

	pending, clean, failed, totalEmoji := 0, 0, 0, 0
	for _, r := range m.results {
		switch {
		case !r.Success:
			failed++
		case r.Skipped:
		case r.Removed > 0:
			pending++
			totalEmoji += r.Removed
		default:
			clean++
		}
	}

	var statsContent string
	if pending == 0 && failed == 0 {
		statsContent = cleanCountStyle.Render("[OK] No emoji detected")
	} else {
		var selectionInfo string
		if len(m.selected) > 0 {
			selectionInfo = fmt.Sprintf("  [%d selected]", len(m.selected))
		}
		statsContent = fmt.Sprintf(
			"%s %-4d  |  %s %-4d  |  Clean: %-4d  |  Failed: %-4d%s",
			dirtyCountStyle.Render("Pending:"),
			pending,
			dirtyCountStyle.Render("Emoji:"),
			totalEmoji,
			clean,
			failed,
			selectionInfo,
		)
	}

	statsHeader := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(statsContent)

	tableRender := tableBorderStyle.
		Width(m.width).
		Height(m.table.Height()).
		Render(m.table.View())

	var previewContent string
	if len(m.visibleIndices) == 0 {
		previewContent = lipgloss.Place(
			m.width,
			m.viewport.Height,
			lipgloss.Center,
			lipgloss.Center,
			emptyTextStyle.Render("No files to review.\n\nPress 'r' to rescan\nPress '?' for help"),
		)
	} else {
		previewContent = m.viewport.View()
	}

	previewRender := previewBorderStyle.
		Width(m.width).
		Height(m.viewport.Height).
		Render(previewContent)

	status := statusStyle.Render(fmt.Sprintf(" %s  |  scanned %s ago", m.statusMessage, formatDuration(time.Since(m.lastScanTime))))

	return lipgloss.JoinVertical(lipgloss.Left, statsHeader, tableRender, previewRender, status)
}
