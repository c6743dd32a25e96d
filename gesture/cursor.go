package gesture

import "sync/atomic"

type position struct {
	x, y float64
}

// Cursor is the position of the cursor marker on a chart. Positions are
// replaced whole, so a reader never sees x from one update and y from
// another.
type Cursor struct {
	pos atomic.Pointer[position]
}

// NewCursor returns a cursor at (x,y).
func NewCursor(x, y float64) *Cursor {
	c := new(Cursor)
	c.Store(x, y)
	return c
}

// Load returns the cursor position.
func (c *Cursor) Load() (x, y float64) {
	p := c.pos.Load()
	if p == nil {
		return 0, 0
	}
	return p.x, p.y
}

// Store moves the cursor to (x,y).
func (c *Cursor) Store(x, y float64) {
	c.pos.Store(&position{x: x, y: y})
}

// SetX moves the cursor horizontally, keeping its y.
func (c *Cursor) SetX(x float64) {
	for {
		old := c.pos.Load()
		next := &position{x: x}
		if old != nil {
			next.y = old.y
		}
		if c.pos.CompareAndSwap(old, next) {
			return
		}
	}
}
