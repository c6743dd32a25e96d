package gesture

import (
	"math"
	"time"
)

// DefaultSlop is how far a pointer may wander, in canvas units, while a
// long press is pending.
const DefaultSlop = 10

type panState uint8

const (
	panIdle panState = iota
	panPending
	panActive
	panFailed
)

// PanRecognizer recognizes press-and-drag gestures. With a zero
// LongPressDelay the gesture begins as soon as the pointer is pressed.
// Otherwise the pointer must be held for LongPressDelay without moving
// farther than Slop, which leaves short swipes to an enclosing scroller.
type PanRecognizer struct {
	LongPressDelay time.Duration
	// Slop defaults to DefaultSlop when zero.
	Slop float64

	state     panState
	pressedAt time.Time
	origin    Pointer
}

// Recognize consumes one pointer event, returning the gesture event it
// produced, if any.
func (r *PanRecognizer) Recognize(p Pointer) (Event, bool) {
	switch p.Kind {
	case PointerPress:
		if r.LongPressDelay <= 0 {
			r.state = panActive
			return p.event(SourcePan, PhaseBegin), true
		}
		r.state = panPending
		r.pressedAt = p.Time
		r.origin = p
	case PointerDrag:
		switch r.state {
		case panActive:
			return p.event(SourcePan, PhaseChange), true
		case panPending:
			if !p.Time.Before(r.pressedAt.Add(r.LongPressDelay)) {
				r.state = panActive
				return p.event(SourcePan, PhaseBegin), true
			}
			if math.Hypot(p.X-r.origin.X, p.Y-r.origin.Y) > r.slop() {
				r.state = panFailed
			}
		}
	case PointerRelease, PointerCancel:
		wasActive := r.state == panActive
		r.state = panIdle
		if wasActive {
			return p.event(SourcePan, PhaseEnd), true
		}
	}
	return Event{}, false
}

// Tick activates a pending long press whose delay has elapsed by now,
// beginning the gesture where the pointer was pressed.
func (r *PanRecognizer) Tick(now time.Time) (Event, bool) {
	if r.state != panPending || now.Before(r.pressedAt.Add(r.LongPressDelay)) {
		return Event{}, false
	}
	r.state = panActive
	ev := r.origin.event(SourcePan, PhaseBegin)
	ev.Time = now
	return ev, true
}

// Deadline reports when a pending long press will activate.
func (r *PanRecognizer) Deadline() (time.Time, bool) {
	if r.state != panPending {
		return time.Time{}, false
	}
	return r.pressedAt.Add(r.LongPressDelay), true
}

// Active reports whether a pan gesture is in progress.
func (r *PanRecognizer) Active() bool {
	return r.state == panActive
}

func (r *PanRecognizer) slop() float64 {
	if r.Slop > 0 {
		return r.Slop
	}
	return DefaultSlop
}

// HoverRecognizer recognizes a hovering pointer. Pointers without hover
// capability are ignored.
type HoverRecognizer struct {
	active bool
}

// Recognize consumes one pointer event, returning the gesture event it
// produced, if any.
func (r *HoverRecognizer) Recognize(p Pointer) (Event, bool) {
	if !p.Hover {
		return Event{}, false
	}
	switch p.Kind {
	case PointerEnter, PointerMove:
		if !r.active {
			r.active = true
			return p.event(SourceHover, PhaseBegin), true
		}
		return p.event(SourceHover, PhaseChange), true
	case PointerDrag:
		// Dragging with a button held keeps the hover alive.
		if r.active {
			return p.event(SourceHover, PhaseChange), true
		}
	case PointerLeave, PointerCancel:
		if r.active {
			r.active = false
			return p.event(SourceHover, PhaseEnd), true
		}
	}
	return Event{}, false
}

// Active reports whether a hover is in progress.
func (r *HoverRecognizer) Active() bool {
	return r.active
}

// Race lets only one gesture source through at a time: whichever begins
// first owns the stream until it ends.
type Race struct {
	owner  Source
	active bool
}

// Admit reports whether ev should be delivered.
func (r *Race) Admit(ev Event) bool {
	if !r.active {
		if ev.Phase != PhaseBegin {
			return false
		}
		r.active = true
		r.owner = ev.Source
		return true
	}
	if ev.Source != r.owner {
		return false
	}
	if ev.Phase == PhaseEnd {
		r.active = false
	}
	return true
}

// Owner reports the source currently holding the race.
func (r *Race) Owner() (Source, bool) {
	return r.owner, r.active
}
