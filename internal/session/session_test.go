package session_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/gblame/internal/gradient"
	"github.com/cj3636/gblame/internal/session"
)

// fakeView is a scriptable scrollable pane.
type fakeView struct {
	topline int
	live    bool
}

func (v *fakeView) Topline() int     { return v.topline }
func (v *fakeView) SetTopline(n int) { v.topline = n }
func (v *fakeView) Live() bool       { return v.live }

type highlightCall struct {
	start, end int
	color      string
}

type subEntry struct {
	view session.View
	fn   func()
}

// fakeHost records every capability call the session makes.
type fakeHost struct {
	path       string
	blameOut   []string
	blameErr   error
	panes      []*fakeView
	paneLines  [][]string
	paneWidths []int
	closed     int
	highlights []highlightCall
	subs       map[int]subEntry
	nextSub    int
}

func newFakeHost(path string, blameOut []string) *fakeHost {
	return &fakeHost{path: path, blameOut: blameOut, subs: make(map[int]subEntry)}
}

func (h *fakeHost) CurrentFilePath() (string, error) { return h.path, nil }

func (h *fakeHost) RunBlame(string) ([]string, error) { return h.blameOut, h.blameErr }

func (h *fakeHost) OpenPane(width int, lines []string) (session.View, error) {
	pane := &fakeView{live: true}
	h.panes = append(h.panes, pane)
	h.paneLines = append(h.paneLines, lines)
	h.paneWidths = append(h.paneWidths, width)
	return pane, nil
}

func (h *fakeHost) HighlightLines(pane session.View, start, end int, color lipgloss.Color) {
	h.highlights = append(h.highlights, highlightCall{start: start, end: end, color: string(color)})
}

func (h *fakeHost) ClosePane(pane session.View) {
	pane.(*fakeView).live = false
	h.closed++
}

func (h *fakeHost) SubscribeScroll(view session.View, fn func()) session.Subscription {
	h.nextSub++
	id := h.nextSub
	h.subs[id] = subEntry{view: view, fn: fn}
	return &fakeSub{host: h, id: id}
}

// scroll simulates a scroll notification attributed to view.
func (h *fakeHost) scroll(view session.View) {
	for _, entry := range h.subs {
		if entry.view == view {
			entry.fn()
		}
	}
}

type fakeSub struct {
	host *fakeHost
	id   int
}

func (s *fakeSub) Cancel() { delete(s.host.subs, s.id) }

func porcelain(times ...int64) []string {
	var lines []string
	for i, ts := range times {
		author := "Alice"
		if ts == 0 {
			author = "Not Committed Yet"
		}
		lines = append(lines,
			fmt.Sprintf("aaaa %d %d 1", i+1, i+1),
			"author "+author,
			fmt.Sprintf("author-time %d", ts),
			fmt.Sprintf("\tline %d", i+1),
		)
	}
	return lines
}

func newMapper() *gradient.Mapper {
	return gradient.New(10, lipgloss.Color("#1B3A2A"), lipgloss.Color("#A8E6A3"))
}

func TestCoordinatorImmediateSyncOnActivate(t *testing.T) {
	host := newFakeHost("main.go", nil)
	primary := &fakeView{topline: 7, live: true}
	secondary := &fakeView{live: true}

	coord := session.NewCoordinator(host)
	require.False(t, coord.Active())

	coord.Activate(primary, secondary)

	assert.True(t, coord.Active())
	assert.Equal(t, 7, secondary.Topline(), "secondary must match primary before any scroll event")
	assert.Len(t, host.subs, 1)
}

func TestCoordinatorFollowsPrimaryScroll(t *testing.T) {
	host := newFakeHost("main.go", nil)
	primary := &fakeView{live: true}
	secondary := &fakeView{live: true}

	coord := session.NewCoordinator(host)
	coord.Activate(primary, secondary)

	for _, x := range []int{3, 0, 42, 41} {
		primary.SetTopline(x)
		host.scroll(primary)
		assert.Equal(t, x, secondary.Topline())
	}
}

func TestCoordinatorIgnoresOtherViews(t *testing.T) {
	host := newFakeHost("main.go", nil)
	primary := &fakeView{live: true}
	secondary := &fakeView{live: true}
	other := &fakeView{live: true}

	coord := session.NewCoordinator(host)
	coord.Activate(primary, secondary)

	primary.SetTopline(5)
	host.scroll(other)

	assert.Equal(t, 0, secondary.Topline())
	assert.True(t, coord.Active())
}

func TestCoordinatorTearsDownOnStaleView(t *testing.T) {
	for name, stale := range map[string]func(primary, secondary *fakeView){
		"secondary closed": func(_, secondary *fakeView) { secondary.live = false },
		"primary closed":   func(primary, _ *fakeView) { primary.live = false },
	} {
		t.Run(name, func(t *testing.T) {
			host := newFakeHost("main.go", nil)
			primary := &fakeView{live: true}
			secondary := &fakeView{live: true}

			coord := session.NewCoordinator(host)
			coord.Activate(primary, secondary)
			require.True(t, coord.Active())

			stale(primary, secondary)
			primary.SetTopline(9)
			host.scroll(primary)

			assert.False(t, coord.Active(), "stale view must tear the pairing down")
			assert.Empty(t, host.subs, "subscription must be canceled")
			coord.Close() // closing after teardown stays a no-op
			assert.Equal(t, 0, host.closed)
		})
	}
}

func TestCoordinatorActivateReplacesPrevious(t *testing.T) {
	host := newFakeHost("main.go", nil)
	primary := &fakeView{live: true}
	first := &fakeView{live: true}
	second := &fakeView{live: true}

	coord := session.NewCoordinator(host)
	coord.Activate(primary, first)
	coord.Activate(primary, second)

	assert.Len(t, host.subs, 1, "at most one live subscription")
	assert.False(t, first.Live(), "previous secondary pane must be closed")
	assert.Equal(t, 1, host.closed)
}

func TestSessionOpenBuildsSidebar(t *testing.T) {
	host := newFakeHost("main.go", porcelain(100, 200, 300))
	primary := &fakeView{topline: 2, live: true}

	sess := session.New(host, newMapper(), 30)
	require.NoError(t, sess.Open(primary))

	require.Len(t, host.panes, 1)
	assert.Equal(t, 30, host.paneWidths[0])

	lines := host.paneLines[0]
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, "Alice")
	}

	annotations := sess.Annotations()
	require.Len(t, annotations, 3)
	assert.Equal(t, 1, annotations[0].Bucket)
	assert.Equal(t, 5, annotations[1].Bucket)
	assert.Equal(t, 10, annotations[2].Bucket)

	assert.NotEmpty(t, host.highlights)
	assert.True(t, sess.Active())
	assert.Equal(t, 2, host.panes[0].Topline(), "sidebar starts at the primary topline")
}

func TestSessionToggleIsATrueToggle(t *testing.T) {
	host := newFakeHost("main.go", porcelain(100, 200))
	primary := &fakeView{live: true}

	sess := session.New(host, newMapper(), 30)

	require.NoError(t, sess.Toggle(primary))
	require.True(t, sess.Active())

	require.NoError(t, sess.Toggle(primary))
	assert.False(t, sess.Active())
	assert.Equal(t, 1, host.closed)
	assert.Empty(t, host.subs)
	assert.Nil(t, sess.Annotations())

	// close-when-idle is a no-op, not an error
	sess.Close()
	assert.Equal(t, 1, host.closed)
}

func TestSessionOpenCollapsesExistingSidebarFirst(t *testing.T) {
	host := newFakeHost("main.go", porcelain(100, 200))
	primary := &fakeView{live: true}

	sess := session.New(host, newMapper(), 30)
	require.NoError(t, sess.Open(primary))
	require.NoError(t, sess.Open(primary))

	assert.Len(t, host.panes, 2)
	assert.False(t, host.panes[0].Live())
	assert.True(t, host.panes[1].Live())
	assert.Len(t, host.subs, 1)
}

func TestSessionNoFile(t *testing.T) {
	host := newFakeHost("", porcelain(100))
	primary := &fakeView{live: true}

	sess := session.New(host, newMapper(), 30)
	err := sess.Open(primary)

	require.ErrorIs(t, err, session.ErrNoFile)
	assert.Empty(t, host.panes, "no pane may be created on failure")
	assert.False(t, sess.Active())
}

func TestSessionBlameFailureSurfacesRawOutput(t *testing.T) {
	host := newFakeHost("main.go", nil)
	host.blameErr = errors.New("fatal: no such path 'main.go' in HEAD")
	primary := &fakeView{live: true}

	sess := session.New(host, newMapper(), 30)
	err := sess.Open(primary)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fatal: no such path 'main.go' in HEAD")
	assert.Empty(t, host.panes)
	assert.False(t, sess.Active())
}

func TestSessionUncommittedLineStaysColorless(t *testing.T) {
	host := newFakeHost("main.go", porcelain(0, 50, 150))
	primary := &fakeView{live: true}

	sess := session.New(host, newMapper(), 40)
	require.NoError(t, sess.Open(primary))

	annotations := sess.Annotations()
	require.Len(t, annotations, 3)
	assert.Equal(t, 0, annotations[0].Bucket)
	assert.Equal(t, 1, annotations[1].Bucket)
	assert.Equal(t, 10, annotations[2].Bucket)

	assert.Contains(t, host.paneLines[0][0], "Not Committed Yet")
	for _, call := range host.highlights {
		assert.GreaterOrEqual(t, call.start, 1, "the uncommitted first line must not be highlighted")
	}
}

func TestSessionSidebarLabelsFitWidth(t *testing.T) {
	host := newFakeHost("main.go", porcelain(100, 200))
	primary := &fakeView{live: true}

	sess := session.New(host, newMapper(), 12)
	require.NoError(t, sess.Open(primary))

	for _, line := range host.paneLines[0] {
		// padded or truncated to exactly the sidebar width
		width := len([]rune(strings.ReplaceAll(line, "…", ".")))
		assert.Equal(t, 12, width)
	}
}

func TestSessionScrollSyncWhileOpen(t *testing.T) {
	host := newFakeHost("main.go", porcelain(100, 200, 300))
	primary := &fakeView{live: true}

	sess := session.New(host, newMapper(), 30)
	require.NoError(t, sess.Open(primary))

	primary.SetTopline(2)
	host.scroll(primary)

	assert.Equal(t, 2, host.panes[0].Topline())
}
