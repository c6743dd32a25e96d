package chartwidget

import (
	"image"
	"image/color"
	"testing"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/gesture"
	"git.sr.ht/~whereswaldon/linegraph/linechart"
	"git.sr.ht/~whereswaldon/linegraph/multiline"
)

var squares = []geom.Point{geom.Pt(0, 0), geom.Pt(50, 25), geom.Pt(100, 100)}

func newContext(w, h int) C {
	return layout.Context{
		Ops:         new(op.Ops),
		Now:         time.Now(),
		Constraints: layout.Exact(image.Pt(w, h)),
	}
}

func TestLineChartLayout(t *testing.T) {
	for _, tc := range []struct {
		name   string
		points []geom.Point
		static bool
	}{
		{name: "empty"},
		{name: "points", points: squares},
		{name: "static", points: squares, static: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			state := NewLineChart(linechart.New(linechart.Options{Static: tc.static}))
			state.SetPoints(tc.points)

			var tops, bottoms []float64
			filled := 0
			style := LineChartStyled(state, SeriesColor(0))
			style.TopAxisLabel = func(gtx C, v float64) D {
				tops = append(tops, v)
				return D{Size: image.Pt(20, 10)}
			}
			style.BottomAxisLabel = func(gtx C, v float64) D {
				bottoms = append(bottoms, v)
				return D{Size: image.Pt(20, 10)}
			}
			style.PathFill = func(gtx C, _ clip.PathSpec, g *gesture.Geometry) {
				filled++
				assert.Equal(t, image.Pt(200, 130), gtx.Constraints.Max)
			}

			var dims D
			require.NotPanics(t, func() {
				dims = style.Layout(newContext(200, 150))
				dims = style.Layout(newContext(200, 150))
			})
			assert.Equal(t, image.Pt(200, 150), dims.Size)
			assert.Equal(t, 2, filled)

			g := state.Geometry()
			assert.Equal(t, 200.0, g.Width)
			assert.Equal(t, 130.0, g.Height, "labels take their height from the canvas")
			require.Len(t, tops, 2)
			require.Len(t, bottoms, 2)
			if len(tc.points) > 0 {
				assert.Equal(t, 100.0, tops[1])
				assert.Equal(t, 0.0, bottoms[1])
			}
			x, _ := state.Cursor().Load()
			assert.Equal(t, -g.CursorRadius, x, "cursor waits off the canvas")
		})
	}
}

func TestMultiLineChartLayout(t *testing.T) {
	for _, tc := range []struct {
		name   string
		series multiline.SeriesMap
		static bool
	}{
		{name: "empty"},
		{name: "series", series: multiline.SeriesMap{"a": squares, "b": squares[:2]}},
		{name: "static", series: multiline.SeriesMap{"a": squares}, static: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			chart, err := multiline.New(multiline.Options{LongPressDelay: -1, Static: tc.static})
			require.NoError(t, err)
			state := NewMultiLineChart(chart)
			state.SetSeries(tc.series)

			var snaps []*multiline.Snapshot
			style := MultiLineChartStyle{
				State:          state,
				Lines:          []LineStyle{{Key: "b", Hidden: true}},
				SelectionColor: color.NRGBA{A: 0xff},
				DotRadius:      3,
				ExtraCanvas: func(gtx C, snap *multiline.Snapshot) {
					snaps = append(snaps, snap)
				},
			}

			require.NotPanics(t, func() {
				style.Layout(newContext(120, 80))
				state.HandlePointer(gesture.Pointer{Kind: gesture.PointerPress, X: 60, Time: time.Now()})
				style.Layout(newContext(120, 80))
			})
			require.Len(t, snaps, 2)
			assert.Equal(t, 120.0, snaps[1].Width)
			assert.Equal(t, 80.0, snaps[1].Height)
			assert.Len(t, snaps[1].Keys, len(tc.series))

			sel := state.Selection()
			assert.Equal(t, !tc.static, sel.Active)
			if !tc.static {
				assert.Equal(t, 60.0, sel.X)
				assert.Len(t, sel.Points, len(tc.series))
			}
		})
	}
}
