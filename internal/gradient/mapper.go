package gradient

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/cj3636/gblame/internal/blame"
)

// DefaultBuckets is the number of age classes used when none is configured.
const DefaultBuckets = 10

// Fallback endpoints when a configured hex color fails to parse.
const (
	fallbackOldest = "#1B3A2A"
	fallbackNewest = "#A8E6A3"
)

// Mapper assigns each committed annotation a discrete age bucket and blends a
// display color for it between two fixed gradient endpoints.
type Mapper struct {
	buckets int
	oldest  colorful.Color
	newest  colorful.Color
}

// New builds a mapper with the given bucket count and hex endpoint colors.
// A bucket count below 1 falls back to DefaultBuckets; unparseable endpoints
// fall back to the built-in green pair.
func New(buckets int, oldest, newest lipgloss.Color) *Mapper {
	if buckets < 1 {
		buckets = DefaultBuckets
	}

	o, err := colorful.Hex(string(oldest))
	if err != nil {
		o, _ = colorful.Hex(fallbackOldest)
	}
	n, err := colorful.Hex(string(newest))
	if err != nil {
		n, _ = colorful.Hex(fallbackNewest)
	}

	return &Mapper{buckets: buckets, oldest: o, newest: n}
}

// Buckets returns the configured bucket count.
func (m *Mapper) Buckets() int { return m.buckets }

// Assign fills in the Bucket of every annotation with a positive timestamp.
// The range is computed over positive timestamps only, so uncommitted lines
// neither stretch the gradient nor receive a bucket. Buckets grow
// monotonically with the timestamp and always land in [1, Buckets]; when all
// positive timestamps are equal every one maps to the newest bucket.
func (m *Mapper) Assign(annotations []blame.Annotation) {
	var minT, maxT int64
	for _, a := range annotations {
		if !a.Committed() {
			continue
		}
		if minT == 0 || a.AuthorTime < minT {
			minT = a.AuthorTime
		}
		if a.AuthorTime > maxT {
			maxT = a.AuthorTime
		}
	}
	if maxT == 0 {
		return
	}

	for i := range annotations {
		a := &annotations[i]
		if !a.Committed() {
			continue
		}
		ratio := 1.0
		if maxT != minT {
			ratio = float64(a.AuthorTime-minT) / float64(maxT-minT)
		}
		bucket := int(ratio*float64(m.buckets-1)) + 1
		if bucket < 1 {
			bucket = 1
		}
		if bucket > m.buckets {
			bucket = m.buckets
		}
		a.Bucket = bucket
	}
}

// Color returns the display color for a bucket, interpolating per RGB channel
// between the oldest and newest endpoints. Out-of-range buckets are clamped.
func (m *Mapper) Color(bucket int) lipgloss.Color {
	if bucket < 1 {
		bucket = 1
	}
	if bucket > m.buckets {
		bucket = m.buckets
	}

	ratio := 1.0
	if m.buckets > 1 {
		ratio = float64(bucket-1) / float64(m.buckets-1)
	}

	return lipgloss.Color(m.oldest.BlendRgb(m.newest, ratio).Hex())
}
