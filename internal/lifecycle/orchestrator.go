// Package lifecycle sequences slot mutations: validate locally, check for
// conflicts against the caller-held slot set, then delegate to the
// persistence service exactly once.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/javiermolinar/rota/internal/slot"
)

// Input is a proposed slot.
type Input struct {
	Day      slot.Weekday
	Start    int
	End      int
	Capacity int
}

// FromSlot copies the editable fields of s.
func FromSlot(s slot.Slot) Input {
	return Input{Day: s.Day, Start: s.Start, End: s.End, Capacity: s.Capacity}
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics records operation outcomes.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// Orchestrator validates and forwards slot mutations.
//
// It keeps a read-only snapshot of the current slot set for conflict checks.
// The snapshot is only replaced wholesale through SetSlots; mutations never
// patch it. Callers must not issue overlapping mutations for the same id.
type Orchestrator struct {
	svc     slot.Service
	window  slot.Window
	log     *zap.Logger
	metrics *Metrics

	mu    sync.RWMutex
	slots []slot.Slot
}

// New creates an orchestrator over svc for the given scheduling window.
func New(svc slot.Service, window slot.Window, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		svc:    svc,
		window: window,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Window returns the scheduling window.
func (o *Orchestrator) Window() slot.Window {
	return o.window
}

// SetSlots replaces the slot snapshot.
func (o *Orchestrator) SetSlots(slots []slot.Slot) {
	cp := make([]slot.Slot, len(slots))
	copy(cp, slots)

	o.mu.Lock()
	o.slots = cp
	o.mu.Unlock()
}

// Slots returns a copy of the slot snapshot.
func (o *Orchestrator) Slots() []slot.Slot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	cp := make([]slot.Slot, len(o.slots))
	copy(cp, o.slots)
	return cp
}

// Refresh lists slots from l and installs them as the new snapshot.
func (o *Orchestrator) Refresh(ctx context.Context, l slot.Lister) ([]slot.Slot, error) {
	slots, err := l.ListSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	o.SetSlots(slots)
	return slots, nil
}

// Find returns the snapshot slot with id.
func (o *Orchestrator) Find(id string) (slot.Slot, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	for _, s := range o.slots {
		if s.ID == id {
			return s, true
		}
	}
	return slot.Slot{}, false
}

// Conflict returns the first active snapshot slot overlapping the range.
func (o *Orchestrator) Conflict(day slot.Weekday, start, end int, excludeID string) *slot.Slot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slot.FindConflict(o.slots, day, start, end, excludeID)
}

// Validate runs every local check for in, in order: weekday, range, window,
// capacity, conflict. excludeID is the slot being edited, if any.
func (o *Orchestrator) Validate(in Input, excludeID string) error {
	if !in.Day.Valid() {
		return fmt.Errorf("%w: %d", slot.ErrInvalidWeekday, in.Day)
	}
	if in.Start >= in.End || in.Start < 0 || in.End > slot.MinutesPerDay {
		return fmt.Errorf("%w: %s", slot.ErrInvalidRange, slot.FormatRange(in.Start, in.End))
	}
	if !o.window.ContainsRange(in.Start, in.End) {
		return fmt.Errorf("%w: %s is outside %s", slot.ErrOutsideWindow, slot.FormatRange(in.Start, in.End), o.window)
	}
	if in.Capacity <= 0 {
		return fmt.Errorf("%w, got %d", slot.ErrInvalidCapacity, in.Capacity)
	}
	if c := o.Conflict(in.Day, in.Start, in.End, excludeID); c != nil {
		return &slot.ConflictError{Slot: *c}
	}
	return nil
}

// Create validates in and asks the service to store it.
// Invalid or conflicting input never reaches the service.
func (o *Orchestrator) Create(ctx context.Context, in Input) (slot.Slot, error) {
	log := o.log.With(zap.String("op", string(OpCreate)), zap.Stringer("day", in.Day),
		zap.String("range", slot.FormatRange(in.Start, in.End)), zap.Int("capacity", in.Capacity))

	if err := o.Validate(in, ""); err != nil {
		o.rejected(log, OpCreate, err)
		return slot.Slot{}, err
	}

	created, err := o.svc.CreateSlot(ctx, in.Day, in.Start, in.End, in.Capacity)
	if err != nil {
		return slot.Slot{}, o.failed(log, OpCreate, "", err)
	}

	o.metrics.record(OpCreate, OutcomeOK)
	log.Info("slot created", zap.String("id", created.ID))
	return created, nil
}

// Update validates in, ignoring the slot's own current range, and asks the
// service to apply it.
func (o *Orchestrator) Update(ctx context.Context, id string, in Input) (slot.Slot, error) {
	log := o.log.With(zap.String("op", string(OpUpdate)), zap.String("id", id), zap.Stringer("day", in.Day),
		zap.String("range", slot.FormatRange(in.Start, in.End)), zap.Int("capacity", in.Capacity))

	if err := o.Validate(in, id); err != nil {
		o.rejected(log, OpUpdate, err)
		return slot.Slot{}, err
	}

	updated, err := o.svc.UpdateSlot(ctx, id, in.Day, in.Start, in.End, in.Capacity)
	if err != nil {
		return slot.Slot{}, o.failed(log, OpUpdate, id, err)
	}

	o.metrics.record(OpUpdate, OutcomeOK)
	log.Info("slot updated")
	return updated, nil
}

// Delete asks the service to remove a slot. The service decides whether
// removal is permitted.
func (o *Orchestrator) Delete(ctx context.Context, id string) error {
	log := o.log.With(zap.String("op", string(OpDelete)), zap.String("id", id))

	if err := o.svc.DeleteSlot(ctx, id); err != nil {
		return o.failed(log, OpDelete, id, err)
	}

	o.metrics.record(OpDelete, OutcomeOK)
	log.Info("slot deleted")
	return nil
}

// SetActive activates or deactivates a slot.
//
// Activation does not re-check conflicts: a slot reactivated over a newer
// active slot is accepted here and only logged. The service may still refuse.
func (o *Orchestrator) SetActive(ctx context.Context, id string, active bool) error {
	op := OpDeactivate
	if active {
		op = OpActivate
	}
	log := o.log.With(zap.String("op", string(op)), zap.String("id", id))

	if active {
		if s, ok := o.Find(id); ok {
			if c := o.Conflict(s.Day, s.Start, s.End, id); c != nil {
				log.Warn("activating slot that overlaps an active slot",
					zap.String("conflict_id", c.ID), zap.String("conflict_range", c.TimeRange()))
			}
		}
	}

	var err error
	if active {
		err = o.svc.ActivateSlot(ctx, id)
	} else {
		err = o.svc.DeactivateSlot(ctx, id)
	}
	if err != nil {
		return o.failed(log, op, id, err)
	}

	o.metrics.record(op, OutcomeOK)
	log.Info("slot state changed", zap.Bool("active", active))
	return nil
}

func (o *Orchestrator) rejected(log *zap.Logger, op Op, err error) {
	var conflict *slot.ConflictError
	if errors.As(err, &conflict) {
		o.metrics.record(op, OutcomeConflict)
		log.Info("slot rejected", zap.String("conflict_id", conflict.Slot.ID), zap.Error(err))
		return
	}
	o.metrics.record(op, OutcomeInvalid)
	log.Info("slot rejected", zap.Error(err))
}

func (o *Orchestrator) failed(log *zap.Logger, op Op, id string, err error) error {
	o.metrics.record(op, OutcomeError)
	log.Error("service call failed", zap.Error(err))
	return &ServiceError{Op: op, ID: id, Err: err}
}
