package geom

import (
	"fmt"
	"math"
	"strings"
)

// Verb identifies the kind of a path command.
type Verb uint8

const (
	VerbMove Verb = iota
	VerbLine
)

func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "M"
	case VerbLine:
		return "L"
	default:
		return "?"
	}
}

// Command is one step of a path: move the pen to (X,Y), or draw a straight
// line from the current pen position to (X,Y).
type Command struct {
	Verb Verb
	X, Y float64
}

// Path is a sequence of move and line commands in canvas coordinates. Paths
// returned by ComputePath are shared between goroutines and must be treated
// as read-only.
type Path struct {
	cmds []Command
}

// NewPath returns an empty path with room for n commands.
func NewPath(n int) *Path {
	return &Path{cmds: make([]Command, 0, n)}
}

// MoveTo starts a new subpath at (x,y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.cmds = append(p.cmds, Command{Verb: VerbMove, X: x, Y: y})
	return p
}

// LineTo draws a line from the current position to (x,y).
func (p *Path) LineTo(x, y float64) *Path {
	p.cmds = append(p.cmds, Command{Verb: VerbLine, X: x, Y: y})
	return p
}

// Commands exposes the path's commands in emission order. The returned
// slice must not be modified.
func (p *Path) Commands() []Command {
	if p == nil {
		return nil
	}
	return p.cmds
}

// Len reports the number of commands.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.cmds)
}

// Segments reports the number of line commands.
func (p *Path) Segments() int {
	n := 0
	for _, c := range p.Commands() {
		if c.Verb == VerbLine {
			n++
		}
	}
	return n
}

// Drawable reports whether the path contains at least one line and only
// finite coordinates.
func (p *Path) Drawable() bool {
	return p.Segments() > 0 && finite(p)
}

// Equal reports whether both paths contain identical commands.
func (p *Path) Equal(o *Path) bool {
	a, b := p.Commands(), o.Commands()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the path as SVG path data, which is handy in test failures.
func (p *Path) String() string {
	var sb strings.Builder
	for i, c := range p.Commands() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s%g,%g", c.Verb, c.X, c.Y)
	}
	return sb.String()
}

// FlatLine is a horizontal line across the vertical center of a canvas. It
// is drawn whenever there is no data, and it gives inverse lookups something
// to scan.
func FlatLine(width, height float64) *Path {
	return NewPath(2).
		MoveTo(0, height/2).
		LineTo(width, height/2)
}

// PathProps describes a path to build. The value and timestamp bounds are
// usually taken from a GraphData, but callers may widen them to share a
// vertical scale between several series.
type PathProps struct {
	Width, Height float64
	Points        []Point
	// CursorRadius is kept clear above the highest and below the lowest value
	// so that a cursor drawn on the curve is never clipped.
	CursorRadius float64
	MinValue     float64
	MaxValue     float64
	MinTimestamp float64
	MaxTimestamp float64
	CurveType    CurveType
}

// ComputePath builds the chart path for props. Timestamps are scaled
// linearly onto [0,Width]; values are scaled with a square root onto
// [Height-CursorRadius, CursorRadius] so that the maximum sits at the top.
// Empty input, or input that cannot be traced into finite coordinates,
// produces FlatLine.
func ComputePath(props PathProps) *Path {
	if len(props.Points) == 0 {
		return FlatLine(props.Width, props.Height)
	}
	scaleX := NewTimeScale(props.MinTimestamp, props.MaxTimestamp, 0, props.Width)
	scaleY := NewSqrtScale(props.MinValue, props.MaxValue, props.Height-props.CursorRadius, props.CursorRadius)

	p := NewPath(len(props.Points))
	curveFor(props.CurveType).Trace(p, props.Points, scaleX, scaleY)
	if p.Len() == 0 || !finite(p) {
		return FlatLine(props.Width, props.Height)
	}
	return p
}

func finite(p *Path) bool {
	for _, c := range p.Commands() {
		if math.IsNaN(c.X) || math.IsInf(c.X, 0) || math.IsNaN(c.Y) || math.IsInf(c.Y, 0) {
			return false
		}
	}
	return true
}
