// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/lifecycle"
	"github.com/javiermolinar/rota/internal/slot"
)

// requestTimeout bounds a single storage round trip.
const requestTimeout = 10 * time.Second

// Lifecycle is the part of the orchestrator the TUI drives.
type Lifecycle interface {
	Refresh(ctx context.Context, l slot.Lister) ([]slot.Slot, error)
	Create(ctx context.Context, in lifecycle.Input) (slot.Slot, error)
	Update(ctx context.Context, id string, in lifecycle.Input) (slot.Slot, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
}

// SlotsLoadedMsg is sent when the slot set is (re)loaded.
type SlotsLoadedMsg struct {
	Slots []slot.Slot
}

// LifecycleResultMsg reports the outcome of a mutation. Err is nil on success.
type LifecycleResultMsg struct {
	Op   lifecycle.Op
	ID   string
	Slot slot.Slot // set for create and update
	Err  error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg     string
	Warning bool
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadSlots refreshes the orchestrator snapshot from l.
func LoadSlots(lc Lifecycle, l slot.Lister) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		slots, err := lc.Refresh(ctx, l)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SlotsLoadedMsg{Slots: slots}
	}
}

// CreateSlot submits a new slot.
func CreateSlot(lc Lifecycle, in lifecycle.Input) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		created, err := lc.Create(ctx, in)
		return LifecycleResultMsg{Op: lifecycle.OpCreate, ID: created.ID, Slot: created, Err: err}
	}
}

// UpdateSlot submits new times or capacity for an existing slot.
func UpdateSlot(lc Lifecycle, id string, in lifecycle.Input) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		updated, err := lc.Update(ctx, id, in)
		return LifecycleResultMsg{Op: lifecycle.OpUpdate, ID: id, Slot: updated, Err: err}
	}
}

// DeleteSlot removes a slot.
func DeleteSlot(lc Lifecycle, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return LifecycleResultMsg{Op: lifecycle.OpDelete, ID: id, Err: lc.Delete(ctx, id)}
	}
}

// SetActive activates or deactivates a slot.
func SetActive(lc Lifecycle, id string, active bool) tea.Cmd {
	op := lifecycle.OpDeactivate
	if active {
		op = lifecycle.OpActivate
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return LifecycleResultMsg{Op: op, ID: id, Err: lc.SetActive(ctx, id, active)}
	}
}

// Copy hands text to write off the event loop and reports the outcome in
// the footer.
func Copy(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return StatusMsgCmd{Msg: fmt.Sprintf("Copy failed: %v", err), Warning: true}
		}
		return StatusMsgCmd{Msg: "Copied week slots"}
	}
}
