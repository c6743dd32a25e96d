package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/linegraph/geom"
)

type staticSource struct{ g *Geometry }

func (s staticSource) Load() *Geometry { return s.g }

// diagonal is a chart of y=x over [0,100] traced onto a 100x116 canvas with
// a cursor radius of 8, so canvas y runs from 108 at the minimum to 8 at the
// maximum.
func diagonal() *Geometry {
	return &Geometry{
		Data: geom.GraphData{
			MinValue:     0,
			MaxValue:     100,
			MinTimestamp: 0,
			MaxTimestamp: 100,
		},
		Path:         geom.NewPath(2).MoveTo(0, 108).LineTo(100, 8),
		Width:        100,
		Height:       116,
		CursorRadius: 8,
		Precision:    2,
	}
}

var t0 = time.Unix(1700000000, 0)

func TestCursor(t *testing.T) {
	c := NewCursor(-8, 3)
	x, y := c.Load()
	assert.Equal(t, -8.0, x)
	assert.Equal(t, 3.0, y)

	c.Store(12.5, 40)
	c.SetX(-8)
	x, y = c.Load()
	assert.Equal(t, -8.0, x)
	assert.Equal(t, 40.0, y)
}

func TestCursorKeepsFullPrecision(t *testing.T) {
	c := NewCursor(0, 0)
	c.Store(20.1, 66.7)
	x, y := c.Load()
	assert.Equal(t, 20.1, x)
	assert.Equal(t, 66.7, y)

	c.SetX(0.1 + 0.2)
	x, y = c.Load()
	assert.Equal(t, 0.1+0.2, x)
	assert.Equal(t, 66.7, y)

	var zero Cursor
	zero.SetX(3)
	x, y = zero.Load()
	assert.Equal(t, 3.0, x)
	assert.Zero(t, y)
}

func TestControllerGestureStream(t *testing.T) {
	cursor := NewCursor(-8, 0)
	var begins, changes []PointEvent
	var ends []Event
	ctl := NewController(staticSource{diagonal()}, cursor, Callbacks{
		OnPanGestureBegin:  func(e PointEvent) { begins = append(begins, e) },
		OnPanGestureChange: func(e PointEvent) { changes = append(changes, e) },
		OnPanGestureEnd:    func(e Event) { ends = append(ends, e) },
	})

	ctl.Handle(Event{Source: SourcePan, Phase: PhaseBegin, X: 20})
	x, y := cursor.Load()
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 88.0, y)
	require.Len(t, begins, 1)
	assert.InDelta(t, 20, begins[0].Point, 1e-9)
	assert.True(t, ctl.Active())

	ctl.Handle(Event{Source: SourcePan, Phase: PhaseChange, X: 50})
	x, y = cursor.Load()
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 58.0, y)
	require.Len(t, changes, 1)
	assert.InDelta(t, 50, changes[0].Point, 1e-9)

	ctl.Handle(Event{Source: SourcePan, Phase: PhaseEnd, Raw: "raw"})
	x, y = cursor.Load()
	assert.Equal(t, -8.0, x)
	assert.Equal(t, 58.0, y, "end keeps the last y")
	require.Len(t, ends, 1)
	assert.Equal(t, "raw", ends[0].Raw)
	assert.False(t, ctl.Active())
}

func TestControllerWithoutCallbacks(t *testing.T) {
	cursor := NewCursor(-8, 0)
	ctl := NewController(staticSource{diagonal()}, cursor, Callbacks{})
	ctl.Handle(Event{Source: SourceHover, Phase: PhaseBegin, X: 100})
	x, y := cursor.Load()
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 8.0, y)
}

func TestControllerOutsideDomain(t *testing.T) {
	cursor := NewCursor(-8, 0)
	ctl := NewController(staticSource{diagonal()}, cursor, Callbacks{})
	ctl.Handle(Event{Source: SourcePan, Phase: PhaseBegin, X: 150})
	x, y := cursor.Load()
	assert.Equal(t, 150.0, x)
	assert.Equal(t, 0.0, y)
}

func TestControllerNoGeometry(t *testing.T) {
	cursor := NewCursor(0, 0)
	var got []PointEvent
	ctl := NewController(staticSource{}, cursor, Callbacks{
		OnHoverGestureBegin: func(e PointEvent) { got = append(got, e) },
	})
	ctl.Handle(Event{Source: SourceHover, Phase: PhaseBegin, X: 10})
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Point)
	ctl.Handle(Event{Source: SourceHover, Phase: PhaseEnd})
	x, _ := cursor.Load()
	assert.Equal(t, 0.0, x)
}

func TestControllerRace(t *testing.T) {
	cursor := NewCursor(-8, 0)
	var pans, hovers int
	ctl := NewController(staticSource{diagonal()}, cursor, Callbacks{
		OnPanGestureBegin:    func(PointEvent) { pans++ },
		OnPanGestureChange:   func(PointEvent) { pans++ },
		OnHoverGestureChange: func(PointEvent) { hovers++ },
		OnHoverGestureBegin:  func(PointEvent) { hovers++ },
	})
	// Touch press and drag: pan owns the stream.
	ctl.HandlePointer(Pointer{Kind: PointerPress, X: 10, Time: t0})
	ctl.HandlePointer(Pointer{Kind: PointerDrag, X: 30, Time: t0})
	ctl.Handle(Event{Source: SourceHover, Phase: PhaseBegin, X: 90})
	x, _ := cursor.Load()
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 2, pans)
	assert.Equal(t, 0, hovers)

	ctl.HandlePointer(Pointer{Kind: PointerRelease, X: 30, Time: t0})
	assert.False(t, ctl.Active())

	// A mouse hover now wins.
	ctl.HandlePointer(Pointer{Kind: PointerMove, X: 40, Hover: true, Time: t0})
	assert.Equal(t, 1, hovers)
	ctl.HandlePointer(Pointer{Kind: PointerPress, X: 40, Hover: true, Time: t0})
	assert.Equal(t, 2, pans, "pan cannot begin while hovering")
	ctl.HandlePointer(Pointer{Kind: PointerDrag, X: 60, Hover: true, Time: t0})
	assert.Equal(t, 2, hovers)
	x, _ = cursor.Load()
	assert.Equal(t, 60.0, x)
}

func TestRace(t *testing.T) {
	var r Race
	assert.False(t, r.Admit(Event{Source: SourcePan, Phase: PhaseChange}), "change without begin")
	assert.True(t, r.Admit(Event{Source: SourceHover, Phase: PhaseBegin}))
	assert.False(t, r.Admit(Event{Source: SourcePan, Phase: PhaseBegin}))
	assert.True(t, r.Admit(Event{Source: SourceHover, Phase: PhaseChange}))
	assert.False(t, r.Admit(Event{Source: SourcePan, Phase: PhaseEnd}))
	owner, ok := r.Owner()
	assert.True(t, ok)
	assert.Equal(t, SourceHover, owner)
	assert.True(t, r.Admit(Event{Source: SourceHover, Phase: PhaseEnd}))
	_, ok = r.Owner()
	assert.False(t, ok)
	assert.True(t, r.Admit(Event{Source: SourcePan, Phase: PhaseBegin}))
}

func TestPanRecognizer(t *testing.T) {
	type step struct {
		p     Pointer
		phase Phase
		emit  bool
	}
	delay := 200 * time.Millisecond
	for _, tc := range []struct {
		name  string
		delay time.Duration
		steps []step
	}{
		{
			name: "immediate",
			steps: []step{
				{p: Pointer{Kind: PointerPress, X: 1, Time: t0}, phase: PhaseBegin, emit: true},
				{p: Pointer{Kind: PointerDrag, X: 2, Time: t0}, phase: PhaseChange, emit: true},
				{p: Pointer{Kind: PointerRelease, X: 2, Time: t0}, phase: PhaseEnd, emit: true},
			},
		},
		{
			name:  "long press held",
			delay: delay,
			steps: []step{
				{p: Pointer{Kind: PointerPress, X: 1, Time: t0}},
				{p: Pointer{Kind: PointerDrag, X: 3, Time: t0.Add(50 * time.Millisecond)}},
				{p: Pointer{Kind: PointerDrag, X: 4, Time: t0.Add(delay)}, phase: PhaseBegin, emit: true},
				{p: Pointer{Kind: PointerDrag, X: 40, Time: t0.Add(delay)}, phase: PhaseChange, emit: true},
				{p: Pointer{Kind: PointerCancel, Time: t0.Add(delay)}, phase: PhaseEnd, emit: true},
			},
		},
		{
			name:  "swipe fails long press",
			delay: delay,
			steps: []step{
				{p: Pointer{Kind: PointerPress, X: 1, Time: t0}},
				{p: Pointer{Kind: PointerDrag, X: 50, Time: t0.Add(10 * time.Millisecond)}},
				{p: Pointer{Kind: PointerDrag, X: 50, Time: t0.Add(delay)}},
				{p: Pointer{Kind: PointerRelease, X: 50, Time: t0.Add(delay)}},
			},
		},
		{
			name:  "released early",
			delay: delay,
			steps: []step{
				{p: Pointer{Kind: PointerPress, X: 1, Time: t0}},
				{p: Pointer{Kind: PointerRelease, X: 1, Time: t0.Add(10 * time.Millisecond)}},
				{p: Pointer{Kind: PointerDrag, X: 1, Time: t0.Add(delay)}},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := PanRecognizer{LongPressDelay: tc.delay}
			for i, s := range tc.steps {
				ev, ok := r.Recognize(s.p)
				require.Equal(t, s.emit, ok, "step %d", i)
				if ok {
					assert.Equal(t, SourcePan, ev.Source)
					assert.Equal(t, s.phase, ev.Phase, "step %d", i)
					assert.Equal(t, s.p.X, ev.X)
				}
			}
		})
	}
}

func TestPanRecognizerTick(t *testing.T) {
	r := PanRecognizer{LongPressDelay: 200 * time.Millisecond}
	_, ok := r.Deadline()
	assert.False(t, ok)

	_, ok = r.Recognize(Pointer{Kind: PointerPress, X: 7, Y: 3, Time: t0})
	require.False(t, ok)
	deadline, ok := r.Deadline()
	require.True(t, ok)
	assert.Equal(t, t0.Add(200*time.Millisecond), deadline)

	_, ok = r.Tick(t0.Add(100 * time.Millisecond))
	assert.False(t, ok)

	ev, ok := r.Tick(deadline)
	require.True(t, ok)
	assert.Equal(t, PhaseBegin, ev.Phase)
	assert.Equal(t, 7.0, ev.X)
	assert.Equal(t, deadline, ev.Time)
	assert.True(t, r.Active())
	_, ok = r.Deadline()
	assert.False(t, ok)
}

func TestControllerTick(t *testing.T) {
	cursor := NewCursor(-8, 0)
	ctl := NewController(staticSource{diagonal()}, cursor, Callbacks{})
	ctl.Pan.LongPressDelay = time.Second
	ctl.HandlePointer(Pointer{Kind: PointerPress, X: 20, Time: t0})
	next, ok := ctl.Tick(t0)
	require.True(t, ok)
	assert.Equal(t, t0.Add(time.Second), next)
	x, _ := cursor.Load()
	assert.Equal(t, -8.0, x)

	_, ok = ctl.Tick(next)
	assert.False(t, ok)
	x, _ = cursor.Load()
	assert.Equal(t, 20.0, x)
}

func TestHoverRecognizer(t *testing.T) {
	var r HoverRecognizer
	_, ok := r.Recognize(Pointer{Kind: PointerMove, X: 1})
	assert.False(t, ok, "touch cannot hover")

	for i, tc := range []struct {
		kind  PointerKind
		phase Phase
		emit  bool
	}{
		{kind: PointerLeave},
		{kind: PointerDrag},
		{kind: PointerEnter, phase: PhaseBegin, emit: true},
		{kind: PointerMove, phase: PhaseChange, emit: true},
		{kind: PointerDrag, phase: PhaseChange, emit: true},
		{kind: PointerLeave, phase: PhaseEnd, emit: true},
		{kind: PointerMove, phase: PhaseBegin, emit: true},
		{kind: PointerCancel, phase: PhaseEnd, emit: true},
	} {
		ev, ok := r.Recognize(Pointer{Kind: tc.kind, Hover: true})
		require.Equal(t, tc.emit, ok, "step %d", i)
		if ok {
			assert.Equal(t, SourceHover, ev.Source)
			assert.Equal(t, tc.phase, ev.Phase, "step %d", i)
		}
	}
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, 100.0, interpolate(8, 8, 108, 100, 0))
	assert.Equal(t, 0.0, interpolate(108, 8, 108, 100, 0))
	assert.Equal(t, -10.0, interpolate(118, 8, 108, 100, 0))
	assert.Equal(t, 50.0, interpolate(3, 8, 8, 100, 0))
}
