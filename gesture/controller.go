package gesture

import (
	"time"

	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/lookup"
)

// Geometry is everything the controller needs to map a gesture onto a
// chart: the computed path, the data it was traced from, and the canvas it
// was traced onto.
type Geometry struct {
	Data                        geom.GraphData
	Path                        *geom.Path
	Width, Height, CursorRadius float64
	Precision                   int
}

// GeometrySource provides the most recently published geometry, or nil if
// none has been published yet.
type GeometrySource interface {
	Load() *Geometry
}

// PointEvent is a gesture event annotated with the data value under it.
type PointEvent struct {
	Event
	Point float64
}

// Callbacks are notified as gestures progress. Any of them may be nil.
type Callbacks struct {
	OnPanGestureBegin    func(PointEvent)
	OnPanGestureChange   func(PointEvent)
	OnPanGestureEnd      func(Event)
	OnHoverGestureBegin  func(PointEvent)
	OnHoverGestureChange func(PointEvent)
	OnHoverGestureEnd    func(Event)
}

func (c Callbacks) begin(s Source) func(PointEvent) {
	if s == SourceHover {
		return c.OnHoverGestureBegin
	}
	return c.OnPanGestureBegin
}

func (c Callbacks) change(s Source) func(PointEvent) {
	if s == SourceHover {
		return c.OnHoverGestureChange
	}
	return c.OnPanGestureChange
}

func (c Callbacks) end(s Source) func(Event) {
	if s == SourceHover {
		return c.OnHoverGestureEnd
	}
	return c.OnPanGestureEnd
}

// Controller drives the cursor of a single-series chart from pan and hover
// gestures. It must only be used from one goroutine, typically the one
// delivering input.
type Controller struct {
	// Pan may be configured before the first event is handled.
	Pan   PanRecognizer
	hover HoverRecognizer
	race  Race

	src    GeometrySource
	cursor *Cursor
	cb     Callbacks
}

// NewController returns a controller moving cursor along the geometry
// published by src.
func NewController(src GeometrySource, cursor *Cursor, cb Callbacks) *Controller {
	return &Controller{
		src:    src,
		cursor: cursor,
		cb:     cb,
	}
}

// HandlePointer feeds raw pointer input through both recognizers.
func (c *Controller) HandlePointer(p Pointer) {
	if ev, ok := c.Pan.Recognize(p); ok {
		c.Handle(ev)
	}
	if ev, ok := c.hover.Recognize(p); ok {
		c.Handle(ev)
	}
}

// Tick lets a pending long press activate. It returns the next time Tick
// should be called, if any.
func (c *Controller) Tick(now time.Time) (time.Time, bool) {
	if ev, ok := c.Pan.Tick(now); ok {
		c.Handle(ev)
	}
	return c.Pan.Deadline()
}

// Active reports whether a gesture currently owns the cursor.
func (c *Controller) Active() bool {
	_, ok := c.race.Owner()
	return ok
}

// Handle applies an already recognized gesture event. Events from a source
// other than the one currently in progress are dropped.
func (c *Controller) Handle(ev Event) {
	if !c.race.Admit(ev) {
		return
	}
	g := c.src.Load()
	switch ev.Phase {
	case PhaseBegin, PhaseChange:
		var y float64
		if g != nil {
			y = lookup.YForX(g.Path, ev.X, g.Precision)
		}
		c.cursor.Store(ev.X, y)
		cb := c.cb.begin(ev.Source)
		if ev.Phase == PhaseChange {
			cb = c.cb.change(ev.Source)
		}
		if cb != nil {
			cb(PointEvent{Event: ev, Point: valueAt(g, y)})
		}
	case PhaseEnd:
		var r float64
		if g != nil {
			r = g.CursorRadius
		}
		c.cursor.SetX(-r)
		if cb := c.cb.end(ev.Source); cb != nil {
			cb(ev)
		}
	}
}

// valueAt maps a canvas y back into data space. The path is traced between
// r and h-r, so those rows correspond to the maximum and minimum values.
func valueAt(g *Geometry, y float64) float64 {
	if g == nil {
		return 0
	}
	return interpolate(y, g.CursorRadius, g.Height-g.CursorRadius, g.Data.MaxValue, g.Data.MinValue)
}

func interpolate(v, in0, in1, out0, out1 float64) float64 {
	if in1 == in0 {
		return (out0 + out1) / 2
	}
	return out0 + (v-in0)/(in1-in0)*(out1-out0)
}
