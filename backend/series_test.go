package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/memo"
)

func makeTestSeries(t *testing.T, interval float64, sampleCount int) *Series {
	t.Helper()
	s := NewSeries("test")
	for i := 0; i < sampleCount; i++ {
		ok := s.Insert(geom.Pt(float64(i)*interval, float64(i)))
		if !ok {
			t.Errorf("inserting ascending samples should always be okay, but sample %d failed", i)
		}
	}
	return s
}

func TestSeries(t *testing.T) {
	s := makeTestSeries(t, 10, 5)
	assert.Equal(t, "test", s.Name())
	assert.Equal(t, 5, s.Len())
	dMin, dMax := s.Domain()
	assert.Equal(t, 0.0, dMin)
	assert.Equal(t, 40.0, dMax)

	for _, x := range []float64{40, 39, -1} {
		assert.False(t, s.Insert(geom.Pt(x, 1)), "x=%v", x)
	}
	assert.Equal(t, 5, s.Len())
	assert.True(t, s.Insert(geom.Pt(40.5, 1)))
}

func TestSeriesEmpty(t *testing.T) {
	s := NewSeries("empty")
	assert.False(t, s.Initialized())
	assert.Empty(t, s.Points())
	dMin, dMax := s.Domain()
	assert.Zero(t, dMin)
	assert.Zero(t, dMax)
}

func TestSeriesPointsIdentity(t *testing.T) {
	s := makeTestSeries(t, 1, 3)
	first := s.Points()
	assert.Equal(t, memo.Identify(first), memo.Identify(s.Points()), "unchanged series keep their identity")

	s.Insert(geom.Pt(10, 10))
	second := s.Points()
	assert.NotEqual(t, memo.Identify(first), memo.Identify(second))
	assert.Len(t, first, 3, "earlier snapshots are unaffected")
	assert.Equal(t, cap(second), len(second))
}

func TestDataset(t *testing.T) {
	d := NewDataset([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, d.Headings())
	assert.False(t, d.Initialized())

	d.Series[1].Insert(geom.Pt(5, 1))
	d.Series[1].Insert(geom.Pt(7, 1))
	d.Series[0].Insert(geom.Pt(6, 1))
	assert.True(t, d.Initialized())
	dMin, dMax := d.Domain()
	assert.Equal(t, 5.0, dMin)
	assert.Equal(t, 7.0, dMax)

	m := d.SeriesMap()
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Len(t, m["b"], 2)
}
