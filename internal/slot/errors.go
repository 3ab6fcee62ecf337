package slot

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidFormat   = errors.New("time must be in HH:MM format")
	ErrInvalidRange    = errors.New("start time must be before end time")
	ErrOutsideWindow   = errors.New("slot must lie within the scheduling window")
	ErrInvalidCapacity = errors.New("capacity must be a positive integer")
	ErrInvalidWeekday  = errors.New("invalid day of week")
)

// Domain errors.
var (
	ErrSlotNotFound = errors.New("slot not found")
	ErrSlotOverlap  = errors.New("slot overlaps with an existing active slot")
)

// ConflictError reports the active slot a proposed interval overlaps.
// It matches ErrSlotOverlap with errors.Is.
type ConflictError struct {
	Slot Slot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicts with %s %s", e.Slot.Day, e.Slot.TimeRange())
}

// Is lets errors.Is(err, ErrSlotOverlap) match conflicts detected locally.
func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotOverlap
}
