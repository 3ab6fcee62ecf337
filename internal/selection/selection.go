// Package selection implements the range-selection state machine used to
// create slots by dragging over the weekly grid.
//
// The machine is a pure function over an immutable State. Input frameworks
// translate their pointer or key events into Press, Move, Release, Cancel
// and Tick, and render whatever Effect comes back.
package selection

import (
	"time"

	"github.com/javiermolinar/rota/internal/slot"
)

// DefaultLongPress is the hold time before a coarse pointer starts a selection.
const DefaultLongPress = 350 * time.Millisecond

// Config controls snapping and long-press gating.
type Config struct {
	Window    slot.Window
	Snap      int // minutes
	LongPress time.Duration
}

// DefaultConfig returns the 10:00-22:00 window with 30 minute snapping.
func DefaultConfig() Config {
	return Config{
		Window:    slot.DefaultWindow(),
		Snap:      30,
		LongPress: DefaultLongPress,
	}
}

func (c Config) step() int {
	return max(c.Snap, 1)
}

// Phase is the machine's position.
type Phase int

const (
	Idle      Phase = iota
	Holding         // coarse pointer down, waiting for the long-press threshold
	Anchoring       // selection started, pointer has not moved yet
	Extending       // pointer moved within the anchor's day
)

var phaseNames = [...]string{"idle", "holding", "anchoring", "extending"}

func (p Phase) String() string {
	if p < Idle || p > Extending {
		return "unknown"
	}
	return phaseNames[p]
}

// Pointer distinguishes immediate-start input from scroll-capable input.
type Pointer int

const (
	Fine   Pointer = iota // mouse, keyboard
	Coarse                // touch, pen
)

// Point is a position on the grid. A cell-quantized input covers
// [Minute, Minute+Span); a continuous input has Span 0.
type Point struct {
	Day    slot.Weekday
	Minute int
	Span   int
}

func (p Point) end() int {
	return p.Minute + max(p.Span, 0)
}

// Range is a proposed single-day interval.
type Range struct {
	Day   slot.Weekday
	Start int
	End   int
}

// Empty reports whether the range has no width.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

func (r Range) String() string {
	return r.Day.Short() + " " + slot.FormatRange(r.Start, r.End)
}

// State is an immutable snapshot of the machine. The zero value is Idle.
type State struct {
	Phase     Phase
	Pointer   Pointer
	Anchor    Point
	Current   Point
	Range     Range
	PressedAt time.Time
}

// Active reports whether a selection is visible (anchoring or extending).
func (s State) Active() bool {
	return s.Phase == Anchoring || s.Phase == Extending
}

// Event is an input delivered to Transition.
type Event interface {
	event()
}

// Press starts a gesture.
type Press struct {
	Point   Point
	Pointer Pointer
	At      time.Time
}

// Move reports the pointer's new position.
type Move struct {
	Point Point
	At    time.Time
}

// Release ends the gesture.
type Release struct {
	At time.Time
}

// Cancel aborts the gesture, e.g. when input is lost.
type Cancel struct{}

// Tick lets a holding coarse pointer cross the long-press threshold without moving.
type Tick struct {
	At time.Time
}

func (Press) event()   {}
func (Move) event()    {}
func (Release) event() {}
func (Cancel) event()  {}
func (Tick) event()    {}

// EffectKind tells the caller what changed.
type EffectKind int

const (
	None EffectKind = iota
	Started
	Changed
	Finalized
	Cancelled
)

var effectNames = [...]string{"none", "started", "changed", "finalized", "cancelled"}

func (k EffectKind) String() string {
	if k < None || k > Cancelled {
		return "unknown"
	}
	return effectNames[k]
}

// Effect is the observable outcome of a transition. Range is set for
// Started, Changed and Finalized.
type Effect struct {
	Kind  EffectKind
	Range Range
}
