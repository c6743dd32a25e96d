package main

import (
	"image"
	"image/color"
	"slices"
	"strconv"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/component"

	"git.sr.ht/~whereswaldon/linegraph/chartwidget"
	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/gesture"
	"git.sr.ht/~whereswaldon/linegraph/multiline"
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// seriesColor keeps a series' color stable across both charts and the
// legend by using its column position.
func (ui *UI) seriesColor(key string) color.NRGBA {
	return chartwidget.SeriesColor(slices.Index(ui.session.Keys, key))
}

func (ui *UI) layoutOverview(gtx C) D {
	lines := make([]chartwidget.LineStyle, len(ui.session.Keys))
	for i, key := range ui.session.Keys {
		lines[i] = chartwidget.LineStyle{
			Key:         key,
			Color:       chartwidget.SeriesColor(i),
			StrokeWidth: unit.Dp(ui.cfg.Chart.StrokeWidth),
		}
	}
	return chartwidget.MultiLineChartStyle{
		State:          ui.overview,
		Lines:          lines,
		SelectionColor: color.NRGBA{A: 0xff},
		DotRadius:      4,
		ExtraCanvas:    ui.layoutSelectionInfo,
	}.Layout(gtx)
}

// layoutSelectionInfo draws the selected value of every series next to the
// selection line, highest value on top.
func (ui *UI) layoutSelectionInfo(gtx C, snap *multiline.Snapshot) {
	sel := ui.overview.Selection()
	if !sel.Active {
		return
	}
	keys := slices.Clone(snap.Keys)
	slices.SortFunc(keys, func(a, b string) int {
		va, vb := sel.Points[a].YData, sel.Points[b].YData
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		}
		return 0
	})
	children := make([]layout.FlexChild, 0, len(keys))
	for _, key := range keys {
		sp := sel.Points[key]
		col := ui.seriesColor(key)
		children = append(children, layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(material.Body2(ui.th, formatValue(sp.YData)).Layout),
				layout.Rigid(layout.Spacer{Width: 8}.Layout),
				layout.Rigid(func(gtx C) D {
					size := image.Pt(gtx.Dp(8), gtx.Dp(8))
					paint.FillShape(gtx.Ops, col, clip.Ellipse{Max: size}.Op(gtx.Ops))
					return D{Size: size}
				}),
			)
		}))
	}
	macro := op.Record(gtx.Ops)
	dims := layout.Background{}.Layout(gtx,
		func(gtx C) D {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 150}, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		},
		func(gtx C) D {
			return layout.UniformInset(10).Layout(gtx, func(gtx C) D {
				return layout.Flex{
					Axis:      layout.Vertical,
					Alignment: layout.End,
				}.Layout(gtx, children...)
			})
		},
	)
	call := macro.Stop()

	// Keep the box on whichever side of the selection has more room.
	x := int(sel.X)
	pos := image.Point{}
	if x > gtx.Constraints.Max.X-x {
		pos.X = max(x-dims.Size.X, 0)
	} else {
		pos.X = min(x, gtx.Constraints.Max.X-dims.Size.X)
	}
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func (ui *UI) layoutFocus(gtx C) D {
	col := ui.seriesColor(ui.focusKey)
	style := chartwidget.LineChartStyled(ui.focus, col)
	style.StrokeWidth = unit.Dp(ui.cfg.Chart.StrokeWidth)
	label := func(prefix string) chartwidget.AxisLabel {
		return func(gtx C, value float64) D {
			l := material.Caption(ui.th, prefix+formatValue(value))
			l.MaxLines = 1
			return l.Layout(gtx)
		}
	}
	style.TopAxisLabel = label("max ")
	style.BottomAxisLabel = label("min ")
	style.PathFill = func(gtx C, _ clip.PathSpec, g *gesture.Geometry) {
		fill := col
		fill.A = 0x30
		fillUnder(gtx, g, fill)
	}
	return layout.Stack{Alignment: layout.NE}.Layout(gtx,
		layout.Expanded(style.Layout),
		layout.Stacked(func(gtx C) D {
			if !ui.focusActive {
				return D{}
			}
			return layout.UniformInset(4).Layout(gtx,
				material.Body1(ui.th, ui.focusKey+" = "+formatValue(ui.focusValue)).Layout)
		}),
	)
}

// fillUnder shades the area between the chart's line and the bottom of the
// canvas.
func fillUnder(gtx C, g *gesture.Geometry, col color.NRGBA) {
	if !g.Path.Drawable() {
		return
	}
	cmds := g.Path.Commands()
	height := float32(g.Height)
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(float32(cmds[0].X), height))
	for _, c := range cmds {
		if c.Verb == geom.VerbLine || c.Verb == geom.VerbMove {
			p.LineTo(f32.Pt(float32(c.X), float32(c.Y)))
		}
	}
	p.LineTo(f32.Pt(float32(cmds[len(cmds)-1].X), height))
	p.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: p.End()}.Op())
}

func (ui *UI) layoutLegend(gtx C) D {
	table := component.Table(ui.th, &ui.legend)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(110)
	nameColWidth := max(gtx.Constraints.Max.X-colorColWidth-3*valueColWidth-gtx.Dp(table.VScrollbarStyle.Width()), 0)
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		seriesNameCol
		pointsCol
		rangeCol
		selectedCol
		numCols
	)
	sel := ui.overview.Selection()
	snap := ui.overview.Snapshot()
	keys := ui.session.Keys
	return table.Layout(gtx, len(keys), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case seriesNameCol:
				size = nameColWidth
			default:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(ui.th, "Color")
			case seriesNameCol:
				l = material.Body1(ui.th, "Series")
				l.Alignment = text.Middle
			case pointsCol:
				l = material.Body1(ui.th, "Points")
				l.Alignment = text.End
			case rangeCol:
				l = material.Body1(ui.th, "Range")
				l.Alignment = text.End
			case selectedCol:
				l = material.Body1(ui.th, "Selected")
				l.Alignment = text.End
			default:
				l = material.Body1(ui.th, "???")
			}
			l.Color = ui.th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, ui.th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			key := keys[row]
			var line *multiline.LineGeometry
			if snap != nil {
				line = snap.Lines[key]
			}
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				value := func(s string) D {
					l := material.Body2(ui.th, s)
					l.Alignment = text.End
					return l.Layout(gtx)
				}
				switch col {
				case colorCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						sideLen := gtx.Dp(10)
						sz := image.Pt(sideLen, sideLen)
						paint.FillShape(gtx.Ops, chartwidget.SeriesColor(row), clip.Rect{Max: sz}.Op())
						return D{Size: sz}
					})
				case seriesNameCol:
					return material.Clickable(gtx, &ui.legendRows[row], material.Body2(ui.th, key).Layout)
				case pointsCol:
					return value(strconv.Itoa(len(ui.session.Series[key])))
				case rangeCol:
					if line == nil || len(line.Points) == 0 {
						return value("-")
					}
					return value(formatValue(line.Data.MinValue) + " to " + formatValue(line.Data.MaxValue))
				case selectedCol:
					sp, ok := sel.Points[key]
					if !ok || line == nil || len(line.Points) == 0 {
						return value("-")
					}
					return value(formatValue(sp.YData))
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				c := chartwidget.SeriesColor(row)
				c.A = 50
				paint.FillShape(gtx.Ops, c, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
