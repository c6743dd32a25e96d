// Package chartwidget draws line charts with Gio and routes pointer input
// into their gesture handling.
package chartwidget

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"

	"git.sr.ht/~whereswaldon/linegraph/gesture"
	"git.sr.ht/~whereswaldon/linegraph/linechart"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// DefaultStrokeWidth is the line width used when a style leaves it unset.
const DefaultStrokeWidth = unit.Dp(2)

// AxisLabel lays out the label for an extreme value of a chart. It is
// placed above or below the canvas, horizontally aligned with the point
// holding the value.
type AxisLabel func(gtx C, value float64) D

// PathFill draws underneath a chart's line, for example to shade the area
// below it. The canvas clip is already applied and path is the chart's line.
type PathFill func(gtx C, path clip.PathSpec, g *gesture.Geometry)

// LineChart is the widget state of a single-series chart.
type LineChart struct {
	*linechart.Chart
}

// NewLineChart wraps chart for drawing.
func NewLineChart(chart *linechart.Chart) *LineChart {
	return &LineChart{Chart: chart}
}

// Update processes pointer input received since the last frame. Static
// charts take no input.
func (l *LineChart) Update(gtx C) {
	if l.Static() {
		return
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: l,
			Kinds:  pointerKinds,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			if p, ok := PointerFromGio(pe, gtx.Now); ok {
				l.HandlePointer(p)
			}
		}
	}
	if next, ok := l.Tick(gtx.Now); ok {
		gtx.Execute(op.InvalidateCmd{At: next})
	}
}

// LineChartStyle defines how a LineChart is drawn.
type LineChartStyle struct {
	State *LineChart
	// StrokeWidth defaults to DefaultStrokeWidth.
	StrokeWidth     unit.Dp
	Color           color.NRGBA
	CursorColor     color.NRGBA
	CursorLineColor color.NRGBA
	// CursorLineWidth defaults to one Dp.
	CursorLineWidth unit.Dp
	HideCursor      bool
	HideCursorLine  bool
	TopAxisLabel    AxisLabel
	BottomAxisLabel AxisLabel
	PathFill        PathFill
}

// LineChartStyled returns the default style for a chart, drawing with col.
func LineChartStyled(state *LineChart, col color.NRGBA) LineChartStyle {
	cursorLine := col
	cursorLine.A = 0x60
	return LineChartStyle{
		State:           state,
		StrokeWidth:     DefaultStrokeWidth,
		Color:           col,
		CursorColor:     col,
		CursorLineColor: cursorLine,
		CursorLineWidth: 1,
	}
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

// Layout draws the chart filling the maximum constraints.
func (s LineChartStyle) Layout(gtx C) D {
	size := gtx.Constraints.Max
	prev := s.State.Geometry()

	// Labels are measured against the previous geometry so they can be laid
	// out before the canvas size for this frame is known.
	labelGtx := gtx
	labelGtx.Constraints.Min = image.Point{}
	var top, bottom D
	var topCall, bottomCall op.CallOp
	if s.TopAxisLabel != nil {
		top, topCall = rec(labelGtx, func(gtx C) D {
			return s.TopAxisLabel(gtx, prev.Data.MaxValue)
		})
	}
	if s.BottomAxisLabel != nil {
		bottom, bottomCall = rec(labelGtx, func(gtx C) D {
			return s.BottomAxisLabel(gtx, prev.Data.MinValue)
		})
	}
	canvas := image.Pt(size.X, max(size.Y-top.Size.Y-bottom.Size.Y, 0))
	s.State.SetSize(float64(canvas.X), float64(canvas.Y))
	s.State.Update(gtx)
	g := s.State.Geometry()

	placeLabel := func(dims D, call op.CallOp, proportion float64, y int) {
		x := int(proportion*float64(canvas.X)) - dims.Size.X/2
		x = max(0, min(x, canvas.X-dims.Size.X))
		stack := op.Offset(image.Pt(x, y)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
	if s.TopAxisLabel != nil {
		placeLabel(top, topCall, g.Data.MaxValueXProportion, 0)
	}

	off := op.Offset(image.Pt(0, top.Size.Y)).Push(gtx.Ops)
	area := clip.Rect{Max: canvas}.Push(gtx.Ops)
	if !s.State.Static() {
		event.Op(gtx.Ops, s.State)
	}
	if s.PathFill != nil {
		fillGtx := gtx
		fillGtx.Constraints = layout.Exact(canvas)
		s.PathFill(fillGtx, clipPath(gtx.Ops, g.Path), g)
	}
	strokeWidth := s.StrokeWidth
	if strokeWidth == 0 {
		strokeWidth = DefaultStrokeWidth
	}
	strokePath(gtx.Ops, g.Path, float32(gtx.Dp(strokeWidth)), s.Color)

	x, y := s.State.Cursor().Load()
	static := s.State.Static()
	if !s.HideCursorLine && !static {
		lineWidth := s.CursorLineWidth
		if lineWidth == 0 {
			lineWidth = 1
		}
		drawCursorLine(gtx.Ops, float32(x), gtx.Dp(lineWidth), canvas.Y, s.CursorLineColor)
	}
	if !s.HideCursor && !static {
		drawDot(gtx.Ops, float32(x), float32(y), int(g.CursorRadius), s.CursorColor)
	}
	area.Pop()
	off.Pop()

	if s.BottomAxisLabel != nil {
		placeLabel(bottom, bottomCall, g.Data.MinValueXProportion, top.Size.Y+canvas.Y)
	}
	return D{Size: size}
}
