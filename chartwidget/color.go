package chartwidget

import (
	"image/color"
	"math"
)

// palette spaces hues by the golden angle so neighbouring series stay
// distinguishable however many there are.
var palette = func() []color.NRGBA {
	const target = 20
	out := make([]color.NRGBA, 0, target)
	for i := 0; i < target; i++ {
		hue := math.Mod(float64(i+1)*math.Phi, 1)
		out = append(out, hsl(hue, 0.6, 0.45))
	}
	return out
}()

// SeriesColor returns the default color of the i'th series.
func SeriesColor(i int) color.NRGBA {
	n := len(palette)
	return palette[(i%n+n)%n]
}

// hsl converts a hue, saturation and lightness, each in [0,1], to an opaque
// color.
func hsl(h, s, l float64) color.NRGBA {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h * 6
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := l - c/2
	to8 := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v+m)) * 255))
	}
	return color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: 0xff}
}
