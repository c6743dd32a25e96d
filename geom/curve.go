package geom

// CurveType names the interpolation used between consecutive points.
type CurveType string

const (
	// CurveLinear joins consecutive points with straight segments. It is the
	// only curve whose paths can be inverted by package lookup.
	CurveLinear CurveType = "linear"
)

// DefaultCurveType is used when a chart does not ask for a curve.
const DefaultCurveType = CurveLinear

// Curve traces scaled points into a path.
type Curve interface {
	Trace(p *Path, points []Point, x, y Scale)
}

type linearCurve struct{}

func (linearCurve) Trace(p *Path, points []Point, x, y Scale) {
	for i, pt := range points {
		if i == 0 {
			p.MoveTo(x.Map(pt.X), y.Map(pt.Y))
			continue
		}
		p.LineTo(x.Map(pt.X), y.Map(pt.Y))
	}
}

var curves = map[CurveType]Curve{
	CurveLinear: linearCurve{},
}

// curveFor resolves t, falling back to a linear curve for unknown names.
func curveFor(t CurveType) Curve {
	if c, ok := curves[t]; ok {
		return c
	}
	return linearCurve{}
}

// Known reports whether t names a supported curve.
func (t CurveType) Known() bool {
	_, ok := curves[t]
	return ok
}
