// Package linechart is the model behind a single-series line chart: it
// traces the series into a path off the input goroutine and moves a cursor
// along that path in response to gestures.
package linechart

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/gesture"
	"git.sr.ht/~whereswaldon/linegraph/lookup"
	"git.sr.ht/~whereswaldon/linegraph/memo"
	"git.sr.ht/~whereswaldon/linegraph/snapshot"
)

// DefaultCursorRadius is the cursor radius used when Options leaves it unset.
const DefaultCursorRadius = 8

// Options configure a Chart. The zero value is usable.
type Options struct {
	// CursorRadius is the radius of the cursor marker. The path keeps this
	// much room at the top and bottom of the canvas. Nil selects
	// DefaultCursorRadius; zero traces edge to edge.
	CursorRadius *float64
	// Precision is the number of decimal places cursor positions are rounded
	// to. Nil selects lookup.DefaultPrecision.
	Precision *int
	CurveType geom.CurveType
	// Static charts only draw. They ignore pointer input, never call
	// Callbacks and trace with a cursor radius of zero.
	Static bool
	// LongPressDelay, if set, requires pan gestures to be held before they
	// begin.
	LongPressDelay time.Duration
	Callbacks      gesture.Callbacks
	// Cache memoizes geometry. It may be shared between charts. If nil, the
	// chart uses a private cache.
	Cache *memo.Cache
	// Limit caps how often geometry is recomputed while Run is active.
	Limit rate.Limit
	// Invalidate is called whenever new geometry is published.
	Invalidate func()
	Logger     *slog.Logger
}

type input struct {
	points        []geom.Point
	width, height float64
}

// Chart holds one series, its traced geometry and its cursor.
type Chart struct {
	radius    float64
	precision int
	static    bool
	curve     geom.CurveType
	cache     *memo.Cache
	logger    *slog.Logger

	worker *snapshot.Worker[input, gesture.Geometry]
	cursor *gesture.Cursor
	ctl    *gesture.Controller
}

// New returns an empty chart. Its cursor starts just off the left edge.
func New(opts Options) *Chart {
	c := &Chart{
		radius:    DefaultCursorRadius,
		precision: lookup.DefaultPrecision,
		static:    opts.Static,
		curve:     opts.CurveType,
		cache:     opts.Cache,
		logger:    opts.Logger,
	}
	if opts.CursorRadius != nil {
		c.radius = max(*opts.CursorRadius, 0)
	}
	if opts.Precision != nil {
		c.precision = *opts.Precision
	}
	if c.static {
		c.radius = 0
	}
	if c.curve == "" {
		c.curve = geom.DefaultCurveType
	}
	if c.cache == nil {
		c.cache = memo.New(memo.DefaultSize)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if !c.curve.Known() {
		c.logger.Warn("linechart: unknown curve type, drawing straight segments", "curve", c.curve)
	}
	c.worker = snapshot.NewWorker(input{}, c.compute,
		snapshot.WithLimit(opts.Limit, 1),
		snapshot.WithInvalidate(opts.Invalidate),
		snapshot.WithLogger(c.logger),
	)
	c.cursor = gesture.NewCursor(-c.radius, 0)
	c.ctl = gesture.NewController(c.worker, c.cursor, opts.Callbacks)
	c.ctl.Pan.LongPressDelay = opts.LongPressDelay
	return c
}

func (c *Chart) compute(in input) *gesture.Geometry {
	data := c.cache.GraphData(in.points)
	path := c.cache.Path(data.PathProps(in.width, in.height, c.radius, c.curve))
	return &gesture.Geometry{
		Data:         data,
		Path:         path,
		Width:        in.width,
		Height:       in.height,
		CursorRadius: c.radius,
		Precision:    c.precision,
	}
}

// SetPoints replaces the series. points must be ascending in X and must
// not be modified afterwards.
func (c *Chart) SetPoints(points []geom.Point) {
	c.worker.Update(func(in *input) {
		in.points = points
	})
}

// SetSize records the canvas size. It does nothing if the size is
// unchanged, so it may be called every frame.
func (c *Chart) SetSize(width, height float64) {
	if in := c.worker.Input(); in.width == width && in.height == height {
		return
	}
	c.worker.Update(func(in *input) {
		in.width, in.height = width, height
	})
}

// Run recomputes geometry in the background until ctx is done. Without a
// running Run, SetPoints and SetSize recompute synchronously.
func (c *Chart) Run(ctx context.Context) error {
	return c.worker.Run(ctx)
}

// Flush recomputes geometry on the calling goroutine.
func (c *Chart) Flush() {
	c.worker.Flush()
}

// Geometry returns the latest published geometry.
func (c *Chart) Geometry() *gesture.Geometry {
	return c.worker.Load()
}

// Cursor returns the chart's cursor.
func (c *Chart) Cursor() *gesture.Cursor {
	return c.cursor
}

// Static reports whether the chart ignores input.
func (c *Chart) Static() bool {
	return c.static
}

// HandlePointer feeds pointer input, in canvas coordinates, to the chart's
// gesture recognizers.
func (c *Chart) HandlePointer(p gesture.Pointer) {
	if c.static {
		return
	}
	c.ctl.HandlePointer(p)
}

// Tick activates a pending long press. It returns when Tick next needs to
// be called, if ever.
func (c *Chart) Tick(now time.Time) (time.Time, bool) {
	if c.static {
		return time.Time{}, false
	}
	return c.ctl.Tick(now)
}

// Active reports whether a gesture is moving the cursor.
func (c *Chart) Active() bool {
	return c.ctl.Active()
}
