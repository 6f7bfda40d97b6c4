package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/cj3636/gblame/internal/gitcli"
	"github.com/cj3636/gblame/internal/session"
)

// paneHandle adapts a bubbles viewport to the session.View contract. The
// handle stays valid after the pane closes; Live just starts reporting false.
type paneHandle struct {
	vp     viewport.Model
	open   bool
	lines  []string
	colors []lipgloss.Color
	styles *Styles
}

func (p *paneHandle) Topline() int     { return p.vp.YOffset }
func (p *paneHandle) SetTopline(n int) { p.vp.SetYOffset(n) }
func (p *paneHandle) Live() bool       { return p.open }

// render repaints the pane content with the current highlight colors.
func (p *paneHandle) render() {
	rendered := make([]string, len(p.lines))
	for i, line := range p.lines {
		style := p.styles.sidebarText
		if i < len(p.colors) && p.colors[i] != "" {
			style = lipgloss.NewStyle().
				Background(p.colors[i]).
				Foreground(readableOn(p.colors[i]))
		}
		rendered[i] = style.Render(line)
	}
	p.vp.SetContent(strings.Join(rendered, "\n"))
}

// readableOn picks a near-black or near-white foreground for a background
// color, so labels stay legible across the whole gradient.
func readableOn(bg lipgloss.Color) lipgloss.Color {
	c, err := colorful.Hex(string(bg))
	if err != nil {
		return lipgloss.Color("#FFFFFF")
	}
	luma := 0.299*c.R + 0.587*c.G + 0.114*c.B
	if luma > 0.55 {
		return lipgloss.Color("#1A1A1A")
	}
	return lipgloss.Color("#F5F5F5")
}

// scrollBus fans a view's scroll notifications out to its subscribers.
// Everything runs on the bubbletea update loop; no locking.
type scrollBus struct {
	nextID int
	subs   map[int]busEntry
}

type busEntry struct {
	view session.View
	fn   func()
}

func newScrollBus() *scrollBus {
	return &scrollBus{subs: make(map[int]busEntry)}
}

func (b *scrollBus) subscribe(view session.View, fn func()) session.Subscription {
	b.nextID++
	id := b.nextID
	b.subs[id] = busEntry{view: view, fn: fn}
	return &busSubscription{bus: b, id: id}
}

// publish invokes the callbacks subscribed to view. Notifications for other
// views never reach a subscriber.
func (b *scrollBus) publish(view session.View) {
	for _, entry := range b.subs {
		if entry.view == view {
			entry.fn()
		}
	}
}

type busSubscription struct {
	bus *scrollBus
	id  int
}

func (s *busSubscription) Cancel() {
	delete(s.bus.subs, s.id)
}

// appHost implements session.Host on top of the TUI: blame runs through the
// git CLI client and panes are viewport-backed handles on the update loop.
type appHost struct {
	filePath   string
	git        *gitcli.Client
	bus        *scrollBus
	styles     *Styles
	paneHeight int
	sidebar    *paneHandle
}

func (h *appHost) CurrentFilePath() (string, error) {
	return h.filePath, nil
}

func (h *appHost) RunBlame(path string) ([]string, error) {
	return h.git.Blame(path)
}

func (h *appHost) OpenPane(width int, lines []string) (session.View, error) {
	pane := &paneHandle{
		vp:     viewport.New(width, h.paneHeight),
		open:   true,
		lines:  lines,
		colors: make([]lipgloss.Color, len(lines)),
		styles: h.styles,
	}
	pane.render()
	h.sidebar = pane
	return pane, nil
}

func (h *appHost) HighlightLines(pane session.View, start, end int, color lipgloss.Color) {
	p, ok := pane.(*paneHandle)
	if !ok || !p.open {
		return
	}
	for i := start; i < end && i < len(p.colors); i++ {
		if i < 0 {
			continue
		}
		p.colors[i] = color
	}
	p.render()
}

func (h *appHost) ClosePane(pane session.View) {
	p, ok := pane.(*paneHandle)
	if !ok {
		return
	}
	p.open = false
	if h.sidebar == p {
		h.sidebar = nil
	}
}

func (h *appHost) SubscribeScroll(view session.View, fn func()) session.Subscription {
	return h.bus.subscribe(view, fn)
}
