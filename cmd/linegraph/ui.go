package main

import (
	"image"
	"image/color"
	"strconv"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/linegraph/backend"
	"git.sr.ht/~whereswaldon/linegraph/chartwidget"
	"git.sr.ht/~whereswaldon/linegraph/config"
	"git.sr.ht/~whereswaldon/linegraph/gesture"
	"git.sr.ht/~whereswaldon/linegraph/linechart"
	"git.sr.ht/~whereswaldon/linegraph/memo"
	"git.sr.ht/~whereswaldon/linegraph/multiline"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	tabOverview = "overview"
	tabFocus    = "focus"
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	th   *material.Theme
	cfg  config.Config

	sessions *stream.Stream[backend.Session]
	session  backend.Session
	// shownID and shownRows identify the data last handed to the charts.
	shownID   string
	shownRows int

	overview *chartwidget.MultiLineChart
	focus    *chartwidget.LineChart
	focusKey string
	// focusValue is the value under the focus chart's cursor.
	focusValue  float64
	focusActive bool

	tab         widget.Enum
	explorerBtn widget.Clickable
	pauseBtn    widget.Clickable
	paused      bool
	legend      component.GridState
	legendRows  []widget.Clickable
	loadErr     string
	loadErrs    chan error
	invalidate  func()
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg config.Config, invalidate func()) (*UI, error) {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:         ws,
		th:         th,
		expl:       expl,
		cfg:        cfg,
		tab:        widget.Enum{Value: tabOverview},
		loadErrs:   make(chan error, 1),
		invalidate: invalidate,
		sessions:   stream.New(ws.Controller, ws.Bundle.Datasource.Subscribe),
	}
	cache := memo.New(memo.DefaultSize)

	multiOpts := cfg.MultiLineOptions()
	multiOpts.Cache = cache
	multiOpts.Invalidate = invalidate
	overview, err := multiline.New(multiOpts)
	if err != nil {
		return nil, err
	}
	ui.overview = chartwidget.NewMultiLineChart(overview)

	focusOpts := cfg.LineChartOptions()
	focusOpts.Cache = cache
	focusOpts.Invalidate = invalidate
	track := func(e gesture.PointEvent) {
		ui.focusValue = e.Point
		ui.focusActive = true
	}
	release := func(gesture.Event) { ui.focusActive = false }
	focusOpts.Callbacks = gesture.Callbacks{
		OnPanGestureBegin:    track,
		OnPanGestureChange:   track,
		OnPanGestureEnd:      release,
		OnHoverGestureBegin:  track,
		OnHoverGestureChange: track,
		OnHoverGestureEnd:    release,
	}
	ui.focus = chartwidget.NewLineChart(linechart.New(focusOpts))
	return ui, nil
}

// Update the state of the UI from input and the backend.
func (ui *UI) Update(gtx C) {
	ui.sessions.ReadInto(gtx, &ui.session, backend.Session{})
	if ui.session.Err != nil {
		ui.loadErr = ui.session.Err.Error()
	}
	select {
	case err := <-ui.loadErrs:
		ui.loadErr = err.Error()
	default:
	}
	if ui.explorerBtn.Clicked(gtx) {
		go func() {
			if _, err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil {
				select {
				case ui.loadErrs <- err:
				default:
				}
				ui.invalidate()
			}
		}()
	}
	if ui.pauseBtn.Clicked(gtx) {
		ui.paused = !ui.paused
	}
	ui.tab.Update(gtx)
	for len(ui.legendRows) < len(ui.session.Keys) {
		ui.legendRows = append(ui.legendRows, widget.Clickable{})
	}
	for i, key := range ui.session.Keys {
		if ui.legendRows[i].Clicked(gtx) {
			ui.focusKey = key
			ui.tab.Value = tabFocus
			ui.shownRows = -1
		}
	}
	if ui.focusKey == "" && len(ui.session.Keys) > 0 {
		ui.focusKey = ui.session.Keys[0]
	}
	ui.showSession()
}

// showSession hands new data to the charts unless the display is paused.
func (ui *UI) showSession() {
	if ui.paused || ui.session.Series == nil {
		return
	}
	if ui.session.ID == ui.shownID && ui.session.Rows == ui.shownRows {
		return
	}
	if ui.session.ID != ui.shownID {
		ui.focusKey = ""
		if len(ui.session.Keys) > 0 {
			ui.focusKey = ui.session.Keys[0]
		}
	}
	ui.shownID, ui.shownRows = ui.session.ID, ui.session.Rows
	ui.overview.SetSeries(ui.session.Series)
	ui.focus.SetPoints(ui.session.Series[ui.focusKey])
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if state.Value == value {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabOverview, "All Series").Layout),
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabFocus, "Focus: "+ui.focusKey).Layout),
				layout.Rigid(ui.layoutPauseButton),
				layout.Rigid(func(gtx C) D {
					return layout.UniformInset(4).Layout(gtx,
						material.Button(ui.th, &ui.explorerBtn, "Open Trace").Layout)
				}),
			)
		}),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
				if ui.tab.Value == tabFocus {
					return ui.layoutFocus(gtx)
				}
				return ui.layoutOverview(gtx)
			})
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, gtx.Dp(200))
			return ui.layoutLegend(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			status := ui.session.Name + ": " + strconv.Itoa(ui.session.Rows) + " rows"
			if ui.session.Following {
				status += ", following"
			}
			if ui.paused {
				status += ", paused"
			}
			return layout.UniformInset(4).Layout(gtx, material.Caption(ui.th, status).Layout)
		}),
	)
}

func (ui *UI) layoutPauseButton(gtx C) D {
	size := gtx.Dp(32)
	gtx.Constraints = layout.Exact(image.Pt(size, size))
	icon := pauseIcon
	if ui.paused {
		icon = playIcon
	}
	return material.Clickable(gtx, &ui.pauseBtn, func(gtx C) D {
		return layout.Center.Layout(gtx, func(gtx C) D {
			return icon.Layout(gtx, ui.th.Fg)
		})
	})
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No trace loaded.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.explorerBtn, "Open Trace").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.session.Series != nil {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
