package backend

import (
	"sync"

	"git.sr.ht/~whereswaldon/linegraph/geom"
)

// Series is one named column of samples, ordered by X.
type Series struct {
	lock   sync.RWMutex
	name   string
	points []geom.Point
}

func NewSeries(name string) *Series {
	return &Series{name: name}
}

func (s *Series) Name() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.name
}

func (s *Series) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.points)
}

// Initialized reports whether the series holds any samples.
func (s *Series) Initialized() bool {
	return s.Len() > 0
}

// Domain returns the X values of the first and last samples.
func (s *Series) Domain() (min, max float64) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if len(s.points) == 0 {
		return 0, 0
	}
	return s.points[0].X, s.points[len(s.points)-1].X
}

// Insert appends a sample. Samples must arrive in increasing X order; a
// sample at or before the last one is rejected and Insert returns false.
func (s *Series) Insert(p geom.Point) (inserted bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if n := len(s.points); n > 0 && p.X <= s.points[n-1].X {
		return false
	}
	s.points = append(s.points, p)
	return true
}

// Points returns the samples inserted so far. The result is never modified
// afterwards, and it is a distinct slice after every Insert, so it can be
// handed to a chart as is.
func (s *Series) Points() []geom.Point {
	s.lock.RLock()
	defer s.lock.RUnlock()
	n := len(s.points)
	return s.points[:n:n]
}
