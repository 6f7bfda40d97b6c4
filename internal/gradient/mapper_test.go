package gradient

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/gblame/internal/blame"
)

func committed(times ...int64) []blame.Annotation {
	annotations := make([]blame.Annotation, len(times))
	for i, t := range times {
		annotations[i] = blame.Annotation{LineIndex: i, AuthorTime: t}
	}
	return annotations
}

func defaultMapper(buckets int) *Mapper {
	return New(buckets, lipgloss.Color(fallbackOldest), lipgloss.Color(fallbackNewest))
}

func TestAssignSpreadsOverRange(t *testing.T) {
	annotations := committed(100, 200, 300)
	defaultMapper(10).Assign(annotations)

	assert.Equal(t, 1, annotations[0].Bucket)
	assert.Equal(t, 5, annotations[1].Bucket)
	assert.Equal(t, 10, annotations[2].Bucket)
}

func TestAssignSkipsUncommitted(t *testing.T) {
	annotations := committed(0, 50, 150)
	defaultMapper(10).Assign(annotations)

	assert.Equal(t, 0, annotations[0].Bucket, "zero timestamp must stay colorless")
	assert.Equal(t, 1, annotations[1].Bucket)
	assert.Equal(t, 10, annotations[2].Bucket)
}

func TestAssignAllEqualMapsToNewestBucket(t *testing.T) {
	annotations := committed(500, 500, 500)
	defaultMapper(10).Assign(annotations)

	for _, a := range annotations {
		assert.Equal(t, 10, a.Bucket)
	}
}

func TestAssignOnlyUncommittedLeavesEverythingColorless(t *testing.T) {
	annotations := committed(0, 0)
	defaultMapper(10).Assign(annotations)

	for _, a := range annotations {
		assert.Equal(t, 0, a.Bucket)
	}
}

func TestAssignMonotonicAndBounded(t *testing.T) {
	times := []int64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9}
	annotations := committed(times...)
	mapper := defaultMapper(7)
	mapper.Assign(annotations)

	for i, a := range annotations {
		require.GreaterOrEqual(t, a.Bucket, 1)
		require.LessOrEqual(t, a.Bucket, 7)
		for j, b := range annotations {
			if a.AuthorTime <= b.AuthorTime {
				assert.LessOrEqual(t, a.Bucket, b.Bucket,
					"bucket order must follow timestamp order (%d vs %d)", i, j)
			}
		}
	}
}

func TestColorEndpoints(t *testing.T) {
	mapper := New(10, lipgloss.Color("#000000"), lipgloss.Color("#FFFFFF"))

	assert.Equal(t, "#000000", strings.ToLower(string(mapper.Color(1))))
	assert.Equal(t, "#ffffff", strings.ToLower(string(mapper.Color(10))))
}

func TestColorClampsOutOfRangeBuckets(t *testing.T) {
	mapper := defaultMapper(10)

	assert.Equal(t, mapper.Color(1), mapper.Color(0))
	assert.Equal(t, mapper.Color(10), mapper.Color(99))
}

func TestNewFallsBackOnBadInput(t *testing.T) {
	mapper := New(0, lipgloss.Color("not-a-color"), lipgloss.Color(""))

	assert.Equal(t, DefaultBuckets, mapper.Buckets())
	assert.NotEmpty(t, string(mapper.Color(1)))
	assert.NotEmpty(t, string(mapper.Color(DefaultBuckets)))
}
