package chartwidget

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"git.sr.ht/~whereswaldon/linegraph/geom"
)

// clipPath replays p into ops.
func clipPath(ops *op.Ops, p *geom.Path) clip.PathSpec {
	var path clip.Path
	path.Begin(ops)
	for _, c := range p.Commands() {
		pt := f32.Pt(float32(c.X), float32(c.Y))
		switch c.Verb {
		case geom.VerbMove:
			path.MoveTo(pt)
		case geom.VerbLine:
			path.LineTo(pt)
		}
	}
	return path.End()
}

// strokePath draws p with the given width in pixels.
func strokePath(ops *op.Ops, p *geom.Path, width float32, col color.NRGBA) {
	if !p.Drawable() {
		return
	}
	paint.FillShape(ops, col, clip.Stroke{
		Path:  clipPath(ops, p),
		Width: width,
	}.Op())
}

// drawCursorLine draws a vertical line of the given width centered on x.
func drawCursorLine(ops *op.Ops, x float32, width, height int, col color.NRGBA) {
	left := int(x) - width/2
	paint.FillShape(ops, col, clip.Rect{
		Min: image.Pt(left, 0),
		Max: image.Pt(left+max(width, 1), height),
	}.Op())
}

// drawDot draws a filled circle of radius r centered on (x,y).
func drawDot(ops *op.Ops, x, y float32, r int, col color.NRGBA) {
	cx, cy := int(x), int(y)
	paint.FillShape(ops, col, clip.Ellipse{
		Min: image.Pt(cx-r, cy-r),
		Max: image.Pt(cx+r, cy+r),
	}.Op(ops))
}
