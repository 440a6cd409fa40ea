package protocol

import (
	"fmt"

	"github.com/philipparndt/gohip/pkg/geometry"
)

// EventType enumerates the inputs of the capture state machine
type EventType int

const (
	EventClick EventType = iota + 1
	EventNext
	EventPrevious
	EventUndo
	EventClear
	EventClearAll
)

func (t EventType) String() string {
	switch t {
	case EventClick:
		return "click"
	case EventNext:
		return "next"
	case EventPrevious:
		return "previous"
	case EventUndo:
		return "undo"
	case EventClear:
		return "clear"
	case EventClearAll:
		return "clear-all"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is one input to Reduce. Point is only used by EventClick.
type Event struct {
	Type  EventType
	Point geometry.Point
}

// Click returns a click event at p
func Click(p geometry.Point) Event {
	return Event{Type: EventClick, Point: p}
}

// Reduce applies ev to p and returns the resulting snapshot
func Reduce(p Protocol, ev Event) Protocol {
	switch ev.Type {
	case EventClick:
		return ApplyClick(p, ev.Point)
	case EventNext:
		return Next(p)
	case EventPrevious:
		return Previous(p)
	case EventUndo:
		return Undo(p)
	case EventClear:
		return Clear(p)
	case EventClearAll:
		return ClearAll(p)
	}
	return p
}

// ApplyClick captures pt for the active step. The cursor advances as soon
// as the step holds all of its points. Clicks while idle, complete or on a
// step that is already full are ignored.
func ApplyClick(p Protocol, pt geometry.Point) Protocol {
	s, ok := p.ActiveStep()
	if !ok || s.Complete() {
		return p
	}

	s = s.appendPoint(pt)
	next := p.withStep(s)
	if s.Complete() {
		next = next.withActive(p.active + 1)
	}
	return next
}

// Next advances the cursor, but only past a complete step
func Next(p Protocol) Protocol {
	s, ok := p.ActiveStep()
	if !ok || !s.Complete() {
		return p
	}
	return p.withActive(p.active + 1)
}

// Previous moves the cursor back one step and clears that step's points.
// It does nothing on the first step or while idle.
func Previous(p Protocol) Protocol {
	if p.active <= 1 {
		return p
	}
	prev := p.active - 1
	s, _ := p.Step(prev)
	return p.withStep(s.withPoints(nil)).withActive(prev)
}

// Undo removes the last captured point of the active step. When the active
// step is empty the cursor first moves back one step. Undo on an empty
// first step does nothing.
func Undo(p Protocol) Protocol {
	if p.State() == Idle {
		return p
	}

	target := p.active
	if s, ok := p.Step(target); !ok || s.Len() == 0 {
		if target <= 1 {
			return p
		}
		target--
	}

	s, _ := p.Step(target)
	return p.withStep(s.dropLast()).withActive(target)
}

// Clear empties the active step without moving the cursor
func Clear(p Protocol) Protocol {
	s, ok := p.ActiveStep()
	if !ok || s.Len() == 0 {
		return p
	}
	return p.withStep(s.withPoints(nil))
}

// ClearAll resets every step to the configuration and activates step 1
func ClearAll(p Protocol) Protocol {
	return New(p.config).withActive(1)
}
