// Package geom turns ordered (x, y) samples into chart geometry: value and
// timestamp domains, scales, and move/line paths ready for a render surface.
package geom

// Point is a single sample. X is usually a timestamp or an index, Y the
// sampled value. Sequences of points are expected to be ordered by X.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// GraphData summarizes a point sequence. It is derived once per sequence
// and never modified afterwards.
type GraphData struct {
	Points       []Point
	MinTimestamp float64
	MaxTimestamp float64

	MinValue            float64
	MinValueIndex       int
	MinValueXProportion float64

	MaxValue            float64
	MaxValueIndex       int
	MaxValueXProportion float64
}

// ComputeGraphData scans points for their timestamp and value extrema. An
// empty sequence yields a zero GraphData. Ties for the extreme values resolve
// to the first occurrence.
func ComputeGraphData(points []Point) GraphData {
	if len(points) == 0 {
		return GraphData{}
	}
	data := GraphData{
		Points:       points,
		MinTimestamp: points[0].X,
		MaxTimestamp: points[0].X,
		MinValue:     points[0].Y,
		MaxValue:     points[0].Y,
	}
	for i, p := range points {
		data.MinTimestamp = min(data.MinTimestamp, p.X)
		data.MaxTimestamp = max(data.MaxTimestamp, p.X)
		if p.Y < data.MinValue {
			data.MinValue = p.Y
			data.MinValueIndex = i
		}
		if p.Y > data.MaxValue {
			data.MaxValue = p.Y
			data.MaxValueIndex = i
		}
	}
	// A lone point has no horizontal extent to be proportional to.
	if last := len(points) - 1; last > 0 {
		data.MinValueXProportion = float64(data.MinValueIndex) / float64(last)
		data.MaxValueXProportion = float64(data.MaxValueIndex) / float64(last)
	}
	return data
}

// PathProps returns the properties needed to build a path for this data
// within a canvas of the given size.
func (d GraphData) PathProps(width, height, cursorRadius float64, curve CurveType) PathProps {
	return PathProps{
		Width:        width,
		Height:       height,
		Points:       d.Points,
		CursorRadius: cursorRadius,
		MinValue:     d.MinValue,
		MaxValue:     d.MaxValue,
		MinTimestamp: d.MinTimestamp,
		MaxTimestamp: d.MaxTimestamp,
		CurveType:    curve,
	}
}
