// Package lookup maps canvas x-coordinates back onto paths built from
// straight segments.
//
// Both lookups walk the path's commands in order, keeping the pen position
// in a local variable, so they do not allocate and can run on every pointer
// event.
package lookup

import "git.sr.ht/~whereswaldon/linegraph/geom"

// DefaultPrecision is the number of decimal places YForX rounds to when
// callers have no preference.
const DefaultPrecision = 2

// closestPrecision is applied to snapped coordinates to hide float noise
// accumulated while scaling.
const closestPrecision = 15

// YForX returns the y-coordinate of the first segment of p spanning x,
// linearly interpolated and rounded to precision decimal places. It returns
// zero if no segment spans x.
func YForX(p *geom.Path, x float64, precision int) float64 {
	var fromX, fromY float64
	for _, cmd := range p.Commands() {
		switch cmd.Verb {
		case geom.VerbMove:
			fromX, fromY = cmd.X, cmd.Y
		case geom.VerbLine:
			if spans(fromX, cmd.X, x) {
				var t float64
				if dx := cmd.X - fromX; dx != 0 {
					t = (x - fromX) / dx
				}
				return geom.Round(fromY+t*(cmd.Y-fromY), precision)
			}
			fromX, fromY = cmd.X, cmd.Y
		}
	}
	return 0
}

// ClosestPointForX finds the first segment of p spanning x and returns
// whichever of its endpoints is nearer to x horizontally, along with the
// index of that endpoint among the points the path was traced from. Equal
// distances favor the segment's start. If no segment spans x, it returns
// zeros.
func ClosestPointForX(p *geom.Path, x float64) (px, py float64, index int) {
	var fromX, fromY float64
	dataIndex := 0
	for _, cmd := range p.Commands() {
		switch cmd.Verb {
		case geom.VerbMove:
			fromX, fromY = cmd.X, cmd.Y
		case geom.VerbLine:
			if spans(fromX, cmd.X, x) {
				if abs(x-fromX) <= abs(x-cmd.X) {
					return geom.Round(fromX, closestPrecision), geom.Round(fromY, closestPrecision), dataIndex
				}
				return geom.Round(cmd.X, closestPrecision), geom.Round(cmd.Y, closestPrecision), dataIndex + 1
			}
			fromX, fromY = cmd.X, cmd.Y
			dataIndex++
		}
	}
	return 0, 0, 0
}

// spans reports whether x lies between a and b inclusive, in either order.
func spans(a, b, x float64) bool {
	return (x >= a && x <= b) || (x <= a && x >= b)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
