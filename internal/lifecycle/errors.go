package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/rota/internal/slot"
)

// Op names a lifecycle operation.
type Op string

const (
	OpCreate     Op = "create"
	OpUpdate     Op = "update"
	OpDelete     Op = "delete"
	OpActivate   Op = "activate"
	OpDeactivate Op = "deactivate"
)

// ServiceError wraps a failure reported by the persistence service.
// Local validation failures are never wrapped in it.
type ServiceError struct {
	Op  Op
	ID  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s slot: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s slot %s: %v", e.Op, e.ID, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Describe turns a lifecycle error into a message fit for the status line.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var conflict *slot.ConflictError
	if errors.As(err, &conflict) {
		return "Conflicts with " + conflict.Slot.Day.String() + " " + conflict.Slot.TimeRange()
	}

	var svc *ServiceError
	if errors.As(err, &svc) {
		switch {
		case errors.Is(svc.Err, slot.ErrSlotNotFound):
			return "Slot no longer exists"
		case errors.Is(svc.Err, slot.ErrSlotOverlap):
			return "Rejected by storage: overlaps an active slot"
		}
		return fmt.Sprintf("Could not %s slot: %v", svc.Op, svc.Err)
	}

	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
