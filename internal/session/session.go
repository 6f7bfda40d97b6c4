package session

import (
	"fmt"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/cj3636/gblame/internal/blame"
	"github.com/cj3636/gblame/internal/gradient"
)

// Session owns one open-to-close lifecycle of the annotation sidebar: blame
// invocation, parsing, color assignment, pane creation and scroll sync. All
// state is rebuilt on every Open and discarded on Close.
type Session struct {
	host        Host
	mapper      *gradient.Mapper
	width       int
	coord       *Coordinator
	annotations []blame.Annotation
}

// New returns a closed session. width is the fixed column width of the
// sidebar pane.
func New(host Host, mapper *gradient.Mapper, width int) *Session {
	return &Session{
		host:   host,
		mapper: mapper,
		width:  width,
		coord:  NewCoordinator(host),
	}
}

// Active reports whether the sidebar is currently open.
func (s *Session) Active() bool { return s.coord.Active() }

// Annotations returns the annotations of the open session, nil when closed.
func (s *Session) Annotations() []blame.Annotation { return s.annotations }

// Toggle opens the sidebar next to primary, or closes it when one is already
// open.
func (s *Session) Toggle(primary View) error {
	if s.Active() {
		s.Close()
		return nil
	}
	return s.Open(primary)
}

// Open blames the host's current file and opens the annotation pane next to
// primary. Any previous sidebar is collapsed first. On failure nothing is
// left open and the caller sees the prior state.
func (s *Session) Open(primary View) error {
	s.Close()

	path, err := s.host.CurrentFilePath()
	if err != nil {
		return err
	}
	if path == "" {
		return ErrNoFile
	}

	raw, err := s.host.RunBlame(path)
	if err != nil {
		return fmt.Errorf("blame %s: %w", path, err)
	}

	annotations := blame.Parse(raw)
	s.mapper.Assign(annotations)

	labels := make([]string, len(annotations))
	for i, a := range annotations {
		labels[i] = fit(a.Label(), s.width)
	}

	pane, err := s.host.OpenPane(s.width, labels)
	if err != nil {
		return err
	}

	for _, run := range bucketRuns(annotations) {
		s.host.HighlightLines(pane, run.start, run.end, s.mapper.Color(run.bucket))
	}

	s.annotations = annotations
	s.coord.Activate(primary, pane)
	return nil
}

// Close collapses the sidebar. Closing when nothing is open is a no-op.
func (s *Session) Close() {
	s.coord.Close()
	s.annotations = nil
}

// fit pads or truncates a label to the sidebar column width.
func fit(label string, width int) string {
	if width <= 0 {
		return label
	}
	if runewidth.StringWidth(label) > width {
		return runewidth.Truncate(label, width, "…")
	}
	return runewidth.FillRight(label, width)
}

// bucketRun is a maximal stretch of consecutive lines sharing one bucket,
// end exclusive.
type bucketRun struct {
	start  int
	end    int
	bucket int
}

func bucketRuns(annotations []blame.Annotation) []bucketRun {
	var runs []bucketRun
	for _, a := range annotations {
		if a.Bucket == 0 {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].bucket == a.Bucket && runs[n-1].end == a.LineIndex {
			runs[n-1].end = a.LineIndex + 1
			continue
		}
		runs = append(runs, bucketRun{start: a.LineIndex, end: a.LineIndex + 1, bucket: a.Bucket})
	}
	return runs
}
