package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/gitcli"
	"github.com/cj3636/gblame/internal/gradient"
	"github.com/cj3636/gblame/internal/session"
)

// Model represents the application state
type Model struct {
	cfg     *config.Config
	styles  *Styles
	keymap  map[string]string
	host    *appHost
	mapper  *gradient.Mapper
	session *session.Session

	fileName string
	source   []string

	primary *paneHandle

	width           int
	height          int
	ready           bool
	showHelp        bool
	showLineNo      bool
	notice          string
	openOnStart     bool
	helpPanelHeight int
}

// Styles holds all the lipgloss styles
type Styles struct {
	source      lipgloss.Style
	lineNumber  lipgloss.Style
	sidebarText lipgloss.Style
	sidebarBox  lipgloss.Style
	title       lipgloss.Style
	help        lipgloss.Style
	statusBar   lipgloss.Style
}

// NewModel creates a new TUI model showing source with an optional blame
// sidebar. When openSidebar is set the sidebar opens on the first layout.
func NewModel(filePath string, source []string, cfg *config.Config, git *gitcli.Client, openSidebar bool) Model {
	styles := createStyles(cfg.Theme)
	host := &appHost{filePath: filePath, git: git, bus: newScrollBus(), styles: styles}
	mapper := gradient.New(cfg.Buckets, cfg.Theme.GradientOldest, cfg.Theme.GradientNewest)

	return Model{
		cfg:             cfg,
		styles:          styles,
		keymap:          keyLookup(cfg.Keybindings),
		host:            host,
		mapper:          mapper,
		session:         session.New(host, mapper, cfg.SidebarWidth),
		fileName:        filePath,
		source:          source,
		showLineNo:      cfg.ShowLineNo,
		openOnStart:     openSidebar,
		helpPanelHeight: 9,
	}
}

// keyLookup inverts the action->keys map for dispatch in Update.
func keyLookup(bindings config.Keybindings) map[string]string {
	lookup := make(map[string]string)
	for action, keys := range bindings {
		for _, key := range keys {
			lookup[key] = action
		}
	}
	return lookup
}

// createStyles initializes all lipgloss styles based on theme
func createStyles(theme config.Theme) *Styles {
	return &Styles{
		source: lipgloss.NewStyle().
			Foreground(theme.SourceFg),
		lineNumber: lipgloss.NewStyle().
			Foreground(theme.LineNumberFg),
		sidebarText: lipgloss.NewStyle().
			Foreground(theme.UncommittedFg),
		sidebarBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(theme.BorderFg),
		title: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Bold(true).
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			Italic(true),
		statusBar: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Padding(0, 1),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.ready {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-3)
		case tea.MouseButtonWheelDown:
			m.scrollBy(3)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.primary = &paneHandle{vp: viewport.New(msg.Width, 1), open: true, styles: m.styles}
			m.ready = true
		}
		m.layout()
		if m.openOnStart {
			m.openOnStart = false
			m.toggleSidebar()
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}

	switch m.keymap[msg.String()] {
	case "quit":
		m.session.Close()
		m.primary.open = false
		return m, tea.Quit
	case "toggle_sidebar":
		m.toggleSidebar()
	case "close_sidebar":
		// esc collapses the sidebar; with nothing open it quits instead.
		if m.session.Active() {
			m.closeSidebar()
		} else {
			m.primary.open = false
			return m, tea.Quit
		}
	case "toggle_help":
		m.showHelp = !m.showHelp
		m.layout()
	case "toggle_line_numbers":
		m.showLineNo = !m.showLineNo
		m.primary.vp.SetContent(m.renderSource())
	case "scroll_down":
		m.scrollBy(1)
	case "scroll_up":
		m.scrollBy(-1)
	case "page_down":
		m.scrollBy(m.halfPage())
	case "page_up":
		m.scrollBy(-m.halfPage())
	case "go_top":
		m.scrollTo(0)
	case "go_bottom":
		m.scrollTo(len(m.source))
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderTitle())

	body := m.primary.vp.View()
	if m.host.sidebar != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.sidebarBox.Render(m.host.sidebar.vp.View()), body)
	}
	sections = append(sections, body)

	if m.showHelp {
		sections = append(sections, m.renderHelpPanel())
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitle renders the title bar
func (m Model) renderTitle() string {
	return m.styles.title.Render("gblame: " + truncate(m.fileName, 60))
}

// renderSource builds the primary pane content with optional line numbers.
func (m Model) renderSource() string {
	tab := strings.Repeat(" ", m.cfg.TabSize)
	lines := make([]string, len(m.source))
	for i, line := range m.source {
		content := strings.ReplaceAll(line, "\t", tab)
		if m.showLineNo {
			lines[i] = m.styles.lineNumber.Render(fmt.Sprintf("%5d", i+1)) + " " + m.styles.source.Render(content)
		} else {
			lines[i] = m.styles.source.Render(content)
		}
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar() string {
	sidebarState := "off"
	if m.session.Active() {
		sidebarState = "on"
	}

	status := fmt.Sprintf(
		"Pos: %d/%d | Sidebar: %s | Buckets: %d | b:blame esc:close ?:help q:quit",
		m.primary.Topline()+1, len(m.source), sidebarState, m.mapper.Buckets(),
	)
	if m.notice != "" {
		status = "✗ " + m.notice + " | " + status
	}

	return m.styles.statusBar.Width(m.width).Render(status)
}

// renderHelpPanel renders the help panel below the main view
func (m Model) renderHelpPanel() string {
	helpText := []string{
		"",
		"Keyboard Shortcuts:",
		"  j, ↓      Scroll down     │  g         Go to top        │  b      Toggle blame sidebar",
		"  k, ↑      Scroll up       │  G         Go to bottom     │  esc    Close sidebar / quit",
		"  d         Half page down  │  ctrl+n    Line numbers     │  h, ?   Toggle help",
		"  u         Half page up    │  q         Quit             │",
		"",
	}

	helpStyle := m.styles.help.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(m.cfg.Theme.BorderFg).
		Padding(0, 1).
		Width(m.width - 2)

	return helpStyle.Render(strings.Join(helpText, "\n"))
}

// toggleSidebar opens or collapses the blame sidebar. Failures leave the
// prior state intact and show up in the status bar.
func (m *Model) toggleSidebar() {
	m.notice = ""
	m.host.paneHeight = m.contentHeight()
	if err := m.session.Toggle(m.primary); err != nil {
		m.notice = err.Error()
	}
	m.layout()
}

func (m *Model) closeSidebar() {
	m.session.Close()
	m.layout()
}

// Scroll functions. Every effective topline change is published on the
// scroll bus so the sync coordinator sees it.
func (m *Model) scrollBy(delta int) {
	m.scrollTo(m.primary.Topline() + delta)
}

func (m *Model) scrollTo(topline int) {
	maxOffset := max(0, len(m.source)-m.primary.vp.Height)
	if topline < 0 {
		topline = 0
	}
	if topline > maxOffset {
		topline = maxOffset
	}
	if topline == m.primary.Topline() {
		return
	}
	m.primary.SetTopline(topline)
	m.host.bus.publish(m.primary)
}

func (m *Model) halfPage() int {
	half := m.primary.vp.Height / 2
	if half < 1 {
		half = 1
	}
	return half
}

// layout resizes both panes to the current terminal and sidebar state.
func (m *Model) layout() {
	if !m.ready {
		return
	}

	contentHeight := m.contentHeight()
	m.host.paneHeight = contentHeight

	primaryWidth := m.width
	if m.host.sidebar != nil {
		primaryWidth -= m.cfg.SidebarWidth + 1
		m.host.sidebar.vp.Width = m.cfg.SidebarWidth
		m.host.sidebar.vp.Height = contentHeight
	}
	if primaryWidth < 20 {
		primaryWidth = 20
	}

	m.primary.vp.Width = primaryWidth
	m.primary.vp.Height = contentHeight
	m.primary.vp.SetContent(m.renderSource())
}

// contentHeight is the pane height left after the title bar, status bar and
// any open bottom panel.
func (m Model) contentHeight() int {
	height := m.height - 2
	if m.showHelp {
		height -= m.helpPanelHeight
	}
	if height < 3 {
		height = 3
	}
	return height
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
