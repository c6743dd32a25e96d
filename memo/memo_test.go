package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.sr.ht/~whereswaldon/linegraph/geom"
)

func TestIdentify(t *testing.T) {
	points := []geom.Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}
	assert.Equal(t, Identify(points), Identify(points))
	assert.NotEqual(t, Identify(points), Identify(points[:2]))
	assert.NotEqual(t, Identify(points), Identify(append([]geom.Point(nil), points...)))
}

func TestGraphDataMemoized(t *testing.T) {
	c := New(8)
	points := []geom.Point{{X: 0, Y: 1}, {X: 1, Y: 5}}
	first := c.GraphData(points)
	second := c.GraphData(points)
	assert.Equal(t, first, second)
	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	grown := append(points[:2:2], geom.Pt(2, 9))
	assert.Equal(t, 9.0, c.GraphData(grown).MaxValue)
	_, misses = c.Stats()
	assert.Equal(t, uint64(2), misses)
}

func TestPathMemoizedBySize(t *testing.T) {
	c := New(8)
	points := []geom.Point{{X: 0, Y: 1}, {X: 1, Y: 5}}
	data := c.GraphData(points)
	p1 := c.Path(data.PathProps(100, 50, 8, geom.CurveLinear))
	p2 := c.Path(data.PathProps(100, 50, 8, geom.CurveLinear))
	assert.Same(t, p1, p2)

	resized := c.Path(data.PathProps(200, 50, 8, geom.CurveLinear))
	assert.NotSame(t, p1, resized)
	assert.Equal(t, 200.0, resized.Commands()[1].X)

	rescaled := data.PathProps(100, 50, 8, geom.CurveLinear)
	rescaled.MinValue = -10
	assert.NotSame(t, p1, c.Path(rescaled))
}

func TestNilCache(t *testing.T) {
	var c *Cache
	points := []geom.Point{{X: 0, Y: 1}, {X: 1, Y: 5}}
	data := c.GraphData(points)
	assert.Equal(t, 5.0, data.MaxValue)
	assert.Equal(t, 2, c.Path(data.PathProps(10, 10, 0, geom.CurveLinear)).Len())
	hits, misses := c.Stats()
	assert.Zero(t, hits+misses)
	assert.Zero(t, c.Len())
}

func TestEviction(t *testing.T) {
	c := New(2)
	a := []geom.Point{{X: 0, Y: 1}}
	b := []geom.Point{{X: 0, Y: 2}}
	d := []geom.Point{{X: 0, Y: 3}}
	c.GraphData(a)
	c.GraphData(b)
	c.GraphData(d)
	assert.Equal(t, 2, c.Len())
	c.GraphData(a)
	_, misses := c.Stats()
	assert.Equal(t, uint64(4), misses)
}

func TestReserve(t *testing.T) {
	c := New(2)
	c.Reserve(1)
	assert.Equal(t, 2, c.Size())
	c.Reserve(8)
	assert.Equal(t, 8, c.Size())

	for i := 0; i < 8; i++ {
		c.GraphData([]geom.Point{{X: 0, Y: float64(i)}})
	}
	assert.Equal(t, 8, c.Len())

	var nilCache *Cache
	nilCache.Reserve(10)
	assert.Zero(t, nilCache.Size())
}
