package geom

import "math"

// Scale maps values from a continuous domain onto a continuous range.
type Scale interface {
	Map(v float64) float64
}

// LinearScale maps its domain onto its range with a straight line. A domain
// of zero width maps everything onto the middle of the range.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

var _ Scale = LinearScale{}

// NewLinearScale builds a scale from domain [d0,d1] to range [r0,r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// NewTimeScale builds the horizontal scale of a chart. Timestamps are plain
// numbers here, so this is a linear scale.
func NewTimeScale(minTimestamp, maxTimestamp, r0, r1 float64) LinearScale {
	return NewLinearScale(minTimestamp, maxTimestamp, r0, r1)
}

func (s LinearScale) Map(v float64) float64 {
	return lerp(s.r0, s.r1, normalize(s.d0, s.d1, v))
}

// SqrtScale applies a signed square root to the domain before mapping it
// linearly, which compresses differences between large values.
type SqrtScale struct {
	linear LinearScale
}

var _ Scale = SqrtScale{}

// NewSqrtScale builds a square-root scale from domain [d0,d1] to range
// [r0,r1].
func NewSqrtScale(d0, d1, r0, r1 float64) SqrtScale {
	return SqrtScale{linear: NewLinearScale(signedSqrt(d0), signedSqrt(d1), r0, r1)}
}

func (s SqrtScale) Map(v float64) float64 {
	return s.linear.Map(signedSqrt(v))
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// normalize returns the position of v within [a,b] as a fraction. Degenerate
// domains put every value at the midpoint.
func normalize(a, b, v float64) float64 {
	if b-a == 0 {
		return 0.5
	}
	return (v - a) / (b - a)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
