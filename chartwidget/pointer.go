package chartwidget

import (
	"time"

	"gioui.org/io/pointer"

	"git.sr.ht/~whereswaldon/linegraph/gesture"
)

// pointerKinds are the pointer events a chart listens for.
const pointerKinds = pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel |
	pointer.Enter | pointer.Move | pointer.Leave

// PointerFromGio converts a Gio pointer event into chart input. The event's
// position must already be relative to the chart canvas. now stamps the
// result so that long presses can be timed against the frame clock. Events
// with no chart meaning, such as scrolling, are reported as not ok.
func PointerFromGio(ev pointer.Event, now time.Time) (gesture.Pointer, bool) {
	p := gesture.Pointer{
		X:     float64(ev.Position.X),
		Y:     float64(ev.Position.Y),
		Time:  now,
		Hover: ev.Source == pointer.Mouse,
		Raw:   ev,
	}
	switch ev.Kind {
	case pointer.Press:
		p.Kind = gesture.PointerPress
	case pointer.Drag:
		p.Kind = gesture.PointerDrag
	case pointer.Release:
		p.Kind = gesture.PointerRelease
	case pointer.Cancel:
		p.Kind = gesture.PointerCancel
	case pointer.Enter:
		p.Kind = gesture.PointerEnter
	case pointer.Move:
		p.Kind = gesture.PointerMove
	case pointer.Leave:
		p.Kind = gesture.PointerLeave
	default:
		return gesture.Pointer{}, false
	}
	return p, true
}
