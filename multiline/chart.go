// Package multiline coordinates several named series drawn on one canvas.
// A single pan gesture selects, for every series, the data point closest to
// the pointer.
package multiline

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/time/rate"

	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/gesture"
	"git.sr.ht/~whereswaldon/linegraph/lookup"
	"git.sr.ht/~whereswaldon/linegraph/memo"
	"git.sr.ht/~whereswaldon/linegraph/snapshot"
)

// DefaultLongPressDelay is how long a press must be held before a pan
// begins, leaving quicker swipes to an enclosing scroller.
const DefaultLongPressDelay = 200 * time.Millisecond

// Options configure a Chart. The zero value is usable.
type Options struct {
	// LongPressDelay defaults to DefaultLongPressDelay. A negative delay
	// starts pans immediately.
	LongPressDelay time.Duration
	// Slop is how far a pending long press may move before it fails.
	Slop float64
	// CurveType applies to lines that do not set their own.
	CurveType geom.CurveType
	ScaleMode ScaleMode
	Callbacks Callbacks
	// Static charts only draw. They ignore pointer input and never select.
	Static bool
	// OnCanvasResize is called from SetCanvasSize whenever the size changes.
	OnCanvasResize func(width, height float64)
	// Cache memoizes per-series geometry. If nil, the chart uses a private
	// cache.
	Cache *memo.Cache
	// Limit caps how often geometry is recomputed while Run is active.
	Limit rate.Limit
	// Invalidate is called whenever a new snapshot is published.
	Invalidate func()
	Logger     *slog.Logger
}

// Callbacks are notified as pan gestures progress. Any of them may be nil.
type Callbacks struct {
	OnPanGestureBegin  func(PanEvent)
	OnPanGestureChange func(PanEvent)
	OnPanGestureEnd    func(gesture.Event)
}

// SeriesPoint is the point of one series selected by a gesture. X and Y are
// canvas coordinates of the point on the series' path; XData and YData are
// the point as it was given.
type SeriesPoint struct {
	X, Y         float64
	XData, YData float64
	Index        int
}

// PanEvent is a pan gesture step with the point it selected in every
// series. Points must not be modified.
type PanEvent struct {
	gesture.Event
	Points map[string]SeriesPoint
}

// Selection is the most recent gesture selection, for rendering.
type Selection struct {
	// X is the canvas x-coordinate of the gesture.
	X float64
	// Active is set between the beginning and end of a gesture. The last
	// selection stays in place after the gesture ends.
	Active bool
	Points map[string]SeriesPoint
}

// LineGeometry is the traced form of one series.
type LineGeometry struct {
	Key    string
	Points []geom.Point
	Data   geom.GraphData
	Path   *geom.Path
	// MinValue and MaxValue are the bounds the series was scaled against.
	MinValue, MaxValue float64
}

// Snapshot is the geometry of every line at one canvas size. Snapshots are
// immutable once published.
type Snapshot struct {
	Width, Height float64
	// MinY and MaxY bound the values of all non-empty series.
	MinY, MaxY float64
	// Keys lists the drawn series in drawing order.
	Keys  []string
	Lines map[string]*LineGeometry
}

type input struct {
	series        SeriesMap
	width, height float64
}

// Chart is the model behind a multi-series line chart.
type Chart struct {
	lines    []Line
	curve    geom.CurveType
	mode     ScaleMode
	static   bool
	cb       Callbacks
	onResize func(width, height float64)
	cache    *memo.Cache
	logger   *slog.Logger

	worker    *snapshot.Worker[input, Snapshot]
	selection snapshot.Box[Selection]
	pan       gesture.PanRecognizer
}

// New returns a chart drawing lines. Without lines, every series is drawn
// in key order. Lines with empty or repeated keys are rejected.
func New(opts Options, lines ...Line) (*Chart, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lines, err := checkLines(lines, logger)
	if err != nil {
		return nil, err
	}
	c := &Chart{
		lines:    lines,
		curve:    opts.CurveType,
		mode:     opts.ScaleMode,
		static:   opts.Static,
		cb:       opts.Callbacks,
		onResize: opts.OnCanvasResize,
		cache:    opts.Cache,
		logger:   logger,
	}
	if c.curve == "" {
		c.curve = geom.DefaultCurveType
	}
	if c.cache == nil {
		c.cache = memo.New(memo.DefaultSize)
	}
	c.pan.LongPressDelay = opts.LongPressDelay
	if c.pan.LongPressDelay == 0 {
		c.pan.LongPressDelay = DefaultLongPressDelay
	}
	c.pan.Slop = opts.Slop
	c.selection.Store(&Selection{})
	c.worker = snapshot.NewWorker(input{}, c.compute,
		snapshot.WithLimit(opts.Limit, 1),
		snapshot.WithInvalidate(opts.Invalidate),
		snapshot.WithLogger(logger),
	)
	return c, nil
}

func (c *Chart) keys(series SeriesMap) ([]string, map[string]geom.CurveType) {
	curves := make(map[string]geom.CurveType)
	if len(c.lines) == 0 {
		keys := series.Keys()
		for _, k := range keys {
			curves[k] = c.curve
		}
		return keys, curves
	}
	keys := make([]string, len(c.lines))
	for i, l := range c.lines {
		keys[i] = l.Key
		curves[l.Key] = l.CurveType
		if l.CurveType == "" {
			curves[l.Key] = c.curve
		}
	}
	return keys, curves
}

func (c *Chart) compute(in input) *Snapshot {
	keys, curves := c.keys(in.series)
	// Each line holds a graph data and a path entry. Room for the previous
	// generation as well keeps unchanged lines from being evicted while
	// changed ones are retraced.
	c.cache.Reserve(4 * len(keys))
	snap := &Snapshot{
		Width:  in.width,
		Height: in.height,
		Keys:   keys,
		Lines:  make(map[string]*LineGeometry, len(keys)),
	}
	data := make(map[string]geom.GraphData, len(keys))
	snap.MinY, snap.MaxY = math.Inf(1), math.Inf(-1)
	for _, k := range keys {
		d := c.cache.GraphData(in.series[k])
		data[k] = d
		if len(d.Points) == 0 {
			continue
		}
		snap.MinY = min(snap.MinY, d.MinValue)
		snap.MaxY = max(snap.MaxY, d.MaxValue)
	}
	if snap.MinY > snap.MaxY {
		snap.MinY, snap.MaxY = 0, 0
	}
	for _, k := range keys {
		d := data[k]
		props := d.PathProps(in.width, in.height, 0, curves[k])
		if c.mode == SharedScale {
			props.MinValue, props.MaxValue = snap.MinY, snap.MaxY
		}
		snap.Lines[k] = &LineGeometry{
			Key:      k,
			Points:   d.Points,
			Data:     d,
			Path:     c.cache.Path(props),
			MinValue: props.MinValue,
			MaxValue: props.MaxValue,
		}
	}
	return snap
}

// SetSeries replaces the chart's data.
func (c *Chart) SetSeries(series SeriesMap) {
	c.worker.Update(func(in *input) {
		in.series = series
	})
}

// SetCanvasSize records the canvas size. It does nothing if the size is
// unchanged, so it may be called every frame.
func (c *Chart) SetCanvasSize(width, height float64) {
	if in := c.worker.Input(); in.width == width && in.height == height {
		return
	}
	c.worker.Update(func(in *input) {
		in.width, in.height = width, height
	})
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

// Run recomputes geometry in the background until ctx is done. Without a
// running Run, SetSeries and SetCanvasSize recompute synchronously.
func (c *Chart) Run(ctx context.Context) error {
	return c.worker.Run(ctx)
}

// Flush recomputes geometry on the calling goroutine.
func (c *Chart) Flush() {
	c.worker.Flush()
}

// Snapshot returns the latest published geometry.
func (c *Chart) Snapshot() *Snapshot {
	return c.worker.Load()
}

// Selection returns the latest gesture selection.
func (c *Chart) Selection() *Selection {
	return c.selection.Load()
}

// HandlePointer feeds pointer input, in canvas coordinates, to the chart's
// pan recognizer.
func (c *Chart) HandlePointer(p gesture.Pointer) {
	if c.static {
		return
	}
	if ev, ok := c.pan.Recognize(p); ok {
		c.Handle(ev)
	}
}

// Tick activates a pending long press. It returns when Tick next needs to
// be called, if ever.
func (c *Chart) Tick(now time.Time) (time.Time, bool) {
	if c.static {
		return time.Time{}, false
	}
	if ev, ok := c.pan.Tick(now); ok {
		c.Handle(ev)
	}
	return c.pan.Deadline()
}

// Static reports whether the chart ignores input.
func (c *Chart) Static() bool {
	return c.static
}

// Handle applies a recognized pan gesture event. Static charts ignore it.
func (c *Chart) Handle(ev gesture.Event) {
	if c.static {
		return
	}
	switch ev.Phase {
	case gesture.PhaseBegin, gesture.PhaseChange:
		points := c.selectAt(c.worker.Load(), ev.X)
		c.selection.Store(&Selection{X: ev.X, Active: true, Points: points})
		cb := c.cb.OnPanGestureBegin
		if ev.Phase == gesture.PhaseChange {
			cb = c.cb.OnPanGestureChange
		}
		if cb != nil {
			cb(PanEvent{Event: ev, Points: points})
		}
	case gesture.PhaseEnd:
		last := c.selection.Load()
		c.selection.Store(&Selection{X: last.X, Points: last.Points})
		if c.cb.OnPanGestureEnd != nil {
			c.cb.OnPanGestureEnd(ev)
		}
	}
}

// selectAt snaps x to the closest point of every line. x is clamped to the
// canvas so a drag past either edge keeps the outermost points selected.
func (c *Chart) selectAt(snap *Snapshot, x float64) map[string]SeriesPoint {
	x = max(0, min(x, snap.Width))
	points := make(map[string]SeriesPoint, len(snap.Keys))
	for _, k := range snap.Keys {
		lg := snap.Lines[k]
		var sp SeriesPoint
		sp.X, sp.Y, sp.Index = lookup.ClosestPointForX(lg.Path, x)
		if n := len(lg.Points); n > 0 {
			sp.Index = max(0, min(sp.Index, n-1))
			sp.XData, sp.YData = lg.Points[sp.Index].X, lg.Points[sp.Index].Y
		} else {
			sp = SeriesPoint{}
		}
		points[k] = sp
	}
	return points
}
