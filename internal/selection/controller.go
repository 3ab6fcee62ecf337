package selection

import "github.com/javiermolinar/rota/internal/slot"

// Controller holds the current state and reports effects through callbacks.
// It is not safe for concurrent use; feed it from the UI event loop.
type Controller struct {
	cfg   Config
	state State

	OnStart    func(Range)
	OnChange   func(Range)
	OnFinalize func(day slot.Weekday, start, end int)
	OnCancel   func()
}

// NewController creates an idle controller.
func NewController(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return c.state
}

// Active reports whether a selection is in progress.
func (c *Controller) Active() bool {
	return c.state.Active()
}

// Handle applies an event and invokes the matching callback. A hold
// released past the threshold finalizes in one step; OnStart still fires
// first with the anchor range.
func (c *Controller) Handle(ev Event) Effect {
	prev := c.state
	next, eff := Transition(c.cfg, c.state, ev)
	c.state = next

	if eff.Kind == Finalized && prev.Phase == Holding && c.OnStart != nil {
		c.OnStart(span(c.cfg, prev.Anchor, prev.Anchor))
	}

	switch eff.Kind {
	case Started:
		if c.OnStart != nil {
			c.OnStart(eff.Range)
		}
	case Changed:
		if c.OnChange != nil {
			c.OnChange(eff.Range)
		}
	case Finalized:
		if c.OnFinalize != nil {
			c.OnFinalize(eff.Range.Day, eff.Range.Start, eff.Range.End)
		}
	case Cancelled:
		if c.OnCancel != nil {
			c.OnCancel()
		}
	}
	return eff
}

// Reset drops any gesture without emitting a callback.
func (c *Controller) Reset() {
	c.state = State{}
}
