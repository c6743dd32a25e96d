// Package memo caches chart geometry by the identity of the point slice it
// was derived from, so that geometry is rebuilt only when a series is
// replaced or the canvas changes size.
package memo

import (
	"sync"
	"sync/atomic"
	"unsafe"

	lru "github.com/hashicorp/golang-lru"

	"git.sr.ht/~whereswaldon/linegraph/geom"
)

// DefaultSize is the number of entries kept when New is given a
// non-positive size. Every traced series uses two entries, one for its
// graph data and one for its path; Reserve grows a cache that must hold
// more.
const DefaultSize = 256

// Identity identifies a point slice by its backing array and length. Two
// slices share an identity only if they view the same elements, so
// appending to a series always produces a new identity.
type Identity struct {
	data *geom.Point
	n    int
}

// Identify returns the identity of points.
func Identify(points []geom.Point) Identity {
	return Identity{data: unsafe.SliceData(points), n: len(points)}
}

type graphKey struct {
	id Identity
}

type pathKey struct {
	id            Identity
	width, height float64
	cursorRadius  float64
	minValue      float64
	maxValue      float64
	minTimestamp  float64
	maxTimestamp  float64
	curve         geom.CurveType
}

// Cache memoizes GraphData and paths. It is safe for concurrent use. A nil
// *Cache is valid and computes every request.
type Cache struct {
	entries *lru.Cache
	hits    atomic.Uint64
	misses  atomic.Uint64

	sizeMu sync.Mutex
	size   int
}

// New returns a cache holding up to size entries.
func New(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New(size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &Cache{entries: entries, size: size}
}

// Reserve grows the cache to hold at least n entries. It never shrinks it.
func (c *Cache) Reserve(n int) {
	if c == nil {
		return
	}
	c.sizeMu.Lock()
	defer c.sizeMu.Unlock()
	if n <= c.size {
		return
	}
	c.entries.Resize(n)
	c.size = n
}

// Size reports how many entries the cache holds before evicting.
func (c *Cache) Size() int {
	if c == nil {
		return 0
	}
	c.sizeMu.Lock()
	defer c.sizeMu.Unlock()
	return c.size
}

// GraphData returns geom.ComputeGraphData(points), reusing an earlier
// result for the same slice.
func (c *Cache) GraphData(points []geom.Point) geom.GraphData {
	if c == nil {
		return geom.ComputeGraphData(points)
	}
	key := graphKey{id: Identify(points)}
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v.(geom.GraphData)
	}
	c.misses.Add(1)
	data := geom.ComputeGraphData(points)
	c.entries.Add(key, data)
	return data
}

// Path returns geom.ComputePath(props), reusing an earlier result for the
// same points and properties.
func (c *Cache) Path(props geom.PathProps) *geom.Path {
	if c == nil {
		return geom.ComputePath(props)
	}
	key := pathKey{
		id:           Identify(props.Points),
		width:        props.Width,
		height:       props.Height,
		cursorRadius: props.CursorRadius,
		minValue:     props.MinValue,
		maxValue:     props.MaxValue,
		minTimestamp: props.MinTimestamp,
		maxTimestamp: props.MaxTimestamp,
		curve:        props.CurveType,
	}
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v.(*geom.Path)
	}
	c.misses.Add(1)
	p := geom.ComputePath(props)
	c.entries.Add(key, p)
	return p
}

// Stats reports cache hits and misses since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
