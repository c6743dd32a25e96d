package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Round rounds v to the given number of decimal places. Halves round up
// toward positive infinity.
func Round[T constraints.Float](v T, precision int) T {
	p := math.Pow10(precision)
	return T(math.Floor(float64(v)*p+0.5) / p)
}
