// Package gesture turns pointer input into begin/change/end gestures and
// maps them onto a chart's path, keeping a cursor positioned on the curve.
package gesture

import "time"

// Source identifies the recognizer a gesture came from.
type Source uint8

const (
	// SourcePan is a press-and-drag gesture from a touch or a mouse button.
	SourcePan Source = iota
	// SourceHover is a pointer moving over the chart with no button held.
	SourceHover
)

func (s Source) String() string {
	switch s {
	case SourcePan:
		return "pan"
	case SourceHover:
		return "hover"
	default:
		return "unknown"
	}
}

// Phase is the stage of a gesture.
type Phase uint8

const (
	PhaseBegin Phase = iota
	PhaseChange
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhaseChange:
		return "change"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is one step of a recognized gesture. X and Y are canvas-local. Raw
// carries the platform event the step was derived from, untouched.
type Event struct {
	Source Source
	Phase  Phase
	X, Y   float64
	Time   time.Time
	Raw    any
}

// PointerKind classifies raw pointer input.
type PointerKind uint8

const (
	PointerPress PointerKind = iota
	PointerDrag
	PointerRelease
	PointerCancel
	PointerEnter
	PointerMove
	PointerLeave
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerDrag:
		return "drag"
	case PointerRelease:
		return "release"
	case PointerCancel:
		return "cancel"
	case PointerEnter:
		return "enter"
	case PointerMove:
		return "move"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// Pointer is raw pointer input in canvas-local coordinates. Hover is set for
// devices that can report position without contact, such as a mouse.
type Pointer struct {
	Kind  PointerKind
	X, Y  float64
	Time  time.Time
	Hover bool
	Raw   any
}

func (p Pointer) event(source Source, phase Phase) Event {
	return Event{
		Source: source,
		Phase:  phase,
		X:      p.X,
		Y:      p.Y,
		Time:   p.Time,
		Raw:    p.Raw,
	}
}
