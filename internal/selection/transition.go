package selection

import "time"

// Transition computes the next state for an event. It never mutates its
// input and never emits a range outside cfg.Window or across days.
func Transition(cfg Config, s State, ev Event) (State, Effect) {
	switch e := ev.(type) {
	case Press:
		return press(cfg, s, e)
	case Move:
		return move(cfg, s, e)
	case Release:
		return release(cfg, s, e)
	case Cancel:
		if s.Active() {
			return State{}, Effect{Kind: Cancelled}
		}
		return State{}, Effect{}
	case Tick:
		if s.Phase == Holding && held(cfg, s, e.At) {
			return start(cfg, s)
		}
		return s, Effect{}
	}
	return s, Effect{}
}

func press(cfg Config, s State, e Press) (State, Effect) {
	if s.Phase != Idle {
		return s, Effect{}
	}
	if !e.Point.Day.Valid() || !cfg.Window.Contains(e.Point.Minute) {
		return s, Effect{}
	}

	next := State{
		Phase:     Holding,
		Pointer:   e.Pointer,
		Anchor:    e.Point,
		Current:   e.Point,
		PressedAt: e.At,
	}
	if e.Pointer == Fine {
		return start(cfg, next)
	}
	return next, Effect{}
}

func move(cfg Config, s State, e Move) (State, Effect) {
	switch s.Phase {
	case Holding:
		if held(cfg, s, e.At) {
			started, _ := start(cfg, s)
			next, _ := extend(cfg, started, e.Point)
			return next, Effect{Kind: Started, Range: next.Range}
		}
		if e.Point != s.Anchor {
			// Moved before the threshold: the user is scrolling.
			return State{}, Effect{}
		}
		return s, Effect{}

	case Anchoring, Extending:
		return extend(cfg, s, e.Point)
	}
	return s, Effect{}
}

func release(cfg Config, s State, e Release) (State, Effect) {
	switch s.Phase {
	case Holding:
		if !held(cfg, s, e.At) {
			return State{}, Effect{}
		}
		started, _ := start(cfg, s)
		return State{}, Effect{Kind: Finalized, Range: widen(cfg, started.Range)}

	case Anchoring, Extending:
		return State{}, Effect{Kind: Finalized, Range: widen(cfg, s.Range)}
	}
	return s, Effect{}
}

func start(cfg Config, s State) (State, Effect) {
	s.Phase = Anchoring
	s.Current = s.Anchor
	s.Range = span(cfg, s.Anchor, s.Anchor)
	return s, Effect{Kind: Started, Range: s.Range}
}

func extend(cfg Config, s State, p Point) (State, Effect) {
	if p.Day != s.Anchor.Day {
		return s, Effect{}
	}
	prev := s.Range
	s.Phase = Extending
	s.Current = p
	s.Range = span(cfg, s.Anchor, p)
	if s.Range == prev {
		return s, Effect{}
	}
	return s, Effect{Kind: Changed, Range: s.Range}
}

func held(cfg Config, s State, at time.Time) bool {
	return at.Sub(s.PressedAt) >= cfg.LongPress
}

// span covers both points and snaps each end into the window.
func span(cfg Config, a, b Point) Range {
	lo := min(a.Minute, b.Minute)
	hi := max(a.end(), b.end())
	return Range{
		Day:   a.Day,
		Start: cfg.Window.Snap(lo, cfg.Snap),
		End:   cfg.Window.Snap(hi, cfg.Snap),
	}
}

// widen gives a zero-width range one snap step, moving the start back
// when the end already sits on the window end.
func widen(cfg Config, r Range) Range {
	if !r.Empty() {
		return r
	}
	step := cfg.step()
	if r.Start+step <= cfg.Window.End {
		r.End = r.Start + step
		return r
	}
	r.End = cfg.Window.End
	r.Start = max(cfg.Window.Start, r.End-step)
	return r
}
