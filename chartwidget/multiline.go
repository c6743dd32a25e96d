package chartwidget

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"

	"git.sr.ht/~whereswaldon/linegraph/multiline"
)

// MultiLineChart is the widget state of a multi-series chart.
type MultiLineChart struct {
	*multiline.Chart
}

// NewMultiLineChart wraps chart for drawing.
func NewMultiLineChart(chart *multiline.Chart) *MultiLineChart {
	return &MultiLineChart{Chart: chart}
}

// Update processes pointer input received since the last frame. Static
// charts take no input.
func (m *MultiLineChart) Update(gtx C) {
	if m.Static() {
		return
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: m,
			Kinds:  pointerKinds,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			if p, ok := PointerFromGio(pe, gtx.Now); ok {
				m.HandlePointer(p)
			}
		}
	}
	if next, ok := m.Tick(gtx.Now); ok {
		gtx.Execute(op.InvalidateCmd{At: next})
	}
}

// LineStyle defines how one series is drawn.
type LineStyle struct {
	Key         string
	Color       color.NRGBA
	StrokeWidth unit.Dp
	Hidden      bool
}

// MultiLineChartStyle defines how a MultiLineChart is drawn. Series without
// a LineStyle get a palette color.
type MultiLineChartStyle struct {
	State *MultiLineChart
	Lines []LineStyle
	// SelectionColor draws the line marking the selected x and, if
	// DotRadius is set, a dot on each selected point.
	SelectionColor color.NRGBA
	DotRadius      unit.Dp
	// ExtraCanvas draws over the lines, sharing their coordinate space.
	ExtraCanvas func(gtx C, snap *multiline.Snapshot)
}

func (s MultiLineChartStyle) lineStyle(key string, index int) LineStyle {
	for _, l := range s.Lines {
		if l.Key == key {
			if l.StrokeWidth == 0 {
				l.StrokeWidth = DefaultStrokeWidth
			}
			return l
		}
	}
	return LineStyle{
		Key:         key,
		Color:       SeriesColor(index),
		StrokeWidth: DefaultStrokeWidth,
	}
}

// Layout draws the chart filling the maximum constraints.
func (s MultiLineChartStyle) Layout(gtx C) D {
	size := gtx.Constraints.Max
	s.State.SetCanvasSize(float64(size.X), float64(size.Y))
	s.State.Update(gtx)
	snap := s.State.Snapshot()

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	if !s.State.Static() {
		event.Op(gtx.Ops, s.State)
	}

	styles := make([]LineStyle, len(snap.Keys))
	for i, key := range snap.Keys {
		styles[i] = s.lineStyle(key, i)
		if styles[i].Hidden {
			continue
		}
		strokePath(gtx.Ops, snap.Lines[key].Path, float32(gtx.Dp(styles[i].StrokeWidth)), styles[i].Color)
	}

	if sel := s.State.Selection(); sel.Points != nil && sel.Active {
		drawCursorLine(gtx.Ops, float32(sel.X), max(gtx.Dp(1), 1), size.Y, s.SelectionColor)
		if s.DotRadius > 0 {
			r := gtx.Dp(s.DotRadius)
			for i, key := range snap.Keys {
				if styles[i].Hidden {
					continue
				}
				if sp, ok := sel.Points[key]; ok {
					drawDot(gtx.Ops, float32(sp.X), float32(sp.Y), r, styles[i].Color)
				}
			}
		}
	}

	if s.ExtraCanvas != nil {
		extra := gtx
		extra.Constraints.Min = image.Point{}
		s.ExtraCanvas(extra, snap)
	}
	return D{Size: size}
}
