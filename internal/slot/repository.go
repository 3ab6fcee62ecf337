package slot

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service is the persistence boundary for slot mutations.
type Service interface {
	// CreateSlot stores a new slot and returns it with its assigned ID.
	CreateSlot(ctx context.Context, day Weekday, start, end, capacity int) (Slot, error)

	// UpdateSlot changes a slot's day, times and capacity.
	UpdateSlot(ctx context.Context, id string, day Weekday, start, end, capacity int) (Slot, error)

	// DeleteSlot removes a slot. The service decides whether removal is permitted.
	DeleteSlot(ctx context.Context, id string) error

	// ActivateSlot marks a slot active. Overlaps are not re-checked.
	ActivateSlot(ctx context.Context, id string) error

	// DeactivateSlot marks a slot inactive.
	DeactivateSlot(ctx context.Context, id string) error
}

// Lister returns the full slot set, ordered by day then start time.
type Lister interface {
	ListSlots(ctx context.Context) ([]Slot, error)
}

// Repository is a complete storage backend.
type Repository interface {
	Service
	Lister

	// Close releases any resources held by the repository.
	Close() error
}

// NewID returns a fresh time-ordered slot identifier.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating slot id: %w", err)
	}
	return id.String(), nil
}
