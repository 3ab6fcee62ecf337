package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/javiermolinar/rota/internal/slot"
)

type slotRow struct {
	bun.BaseModel `bun:"table:weekly_slots"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	DayOfWeek   int       `bun:"day_of_week,notnull"`
	StartMinute int       `bun:"start_minute,notnull"`
	EndMinute   int       `bun:"end_minute,notnull"`
	Capacity    int       `bun:"capacity,notnull"`
	IsActive    bool      `bun:"is_active,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func (r slotRow) toSlot() slot.Slot {
	return slot.Slot{
		ID:        r.ID.String(),
		Day:       slot.Weekday(r.DayOfWeek),
		Start:     r.StartMinute,
		End:       r.EndMinute,
		Capacity:  r.Capacity,
		Active:    r.IsActive,
		UpdatedAt: r.UpdatedAt,
	}
}

// Store implements slot.Repository on PostgreSQL.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

// New wraps an open database and ensures the schema exists.
func New(ctx context.Context, db *bun.DB) (*Store, error) {
	if err := migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Connect opens databaseURL and returns a ready store.
func Connect(ctx context.Context, databaseURL string, pool PoolConfig) (*Store, error) {
	db, err := Open(databaseURL, pool)
	if err != nil {
		return nil, err
	}
	s, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateSlot inserts a new active slot.
// Returns slot.ErrSlotOverlap if it overlaps an active slot on the same day.
func (s *Store) CreateSlot(ctx context.Context, day slot.Weekday, start, end, capacity int) (slot.Slot, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return slot.Slot{}, fmt.Errorf("generating slot id: %w", err)
	}

	row := slotRow{
		ID:          id,
		DayOfWeek:   int(day),
		StartMinute: start,
		EndMinute:   end,
		Capacity:    capacity,
		IsActive:    true,
		UpdatedAt:   s.now().UTC(),
	}

	err = s.inWeekTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := checkOverlap(ctx, tx, day, start, end, uuid.Nil); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(&row).Exec(ctx); err != nil {
			return fmt.Errorf("inserting slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return slot.Slot{}, err
	}

	return row.toSlot(), nil
}

// UpdateSlot changes day, times and capacity of an existing slot.
// The overlap check skips the slot itself and only applies while it is active.
func (s *Store) UpdateSlot(ctx context.Context, id string, day slot.Weekday, start, end, capacity int) (slot.Slot, error) {
	uid, err := parseID(id)
	if err != nil {
		return slot.Slot{}, err
	}

	var row slotRow
	err = s.inWeekTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(&row).Where("id = ?", uid).For("UPDATE").Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", slot.ErrSlotNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("loading slot: %w", err)
		}

		if row.IsActive {
			if err := checkOverlap(ctx, tx, day, start, end, uid); err != nil {
				return err
			}
		}

		row.DayOfWeek = int(day)
		row.StartMinute = start
		row.EndMinute = end
		row.Capacity = capacity
		row.UpdatedAt = s.now().UTC()

		_, err = tx.NewUpdate().
			Model(&row).
			Column("day_of_week", "start_minute", "end_minute", "capacity", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("updating slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return slot.Slot{}, err
	}

	return row.toSlot(), nil
}

// DeleteSlot removes a slot.
func (s *Store) DeleteSlot(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.db.NewDelete().Model((*slotRow)(nil)).Where("id = ?", uid).Exec(ctx)
	if err != nil {
		return fmt.Errorf("deleting slot: %w", err)
	}
	return requireRow(res, id)
}

// ActivateSlot marks a slot active. Overlaps are not re-checked.
func (s *Store) ActivateSlot(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true)
}

// DeactivateSlot marks a slot inactive.
func (s *Store) DeactivateSlot(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false)
}

func (s *Store) setActive(ctx context.Context, id string, active bool) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.db.NewUpdate().
		Model((*slotRow)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = ?", s.now().UTC()).
		Where("id = ?", uid).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("updating slot state: %w", err)
	}
	return requireRow(res, id)
}

// ListSlots returns every slot ordered by day then start time.
func (s *Store) ListSlots(ctx context.Context) ([]slot.Slot, error) {
	var rows []slotRow
	err := s.db.NewSelect().
		Model(&rows).
		OrderExpr("day_of_week ASC, start_minute ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}

	out := make([]slot.Slot, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toSlot())
	}
	return out, nil
}

// inWeekTx runs fn in a transaction holding the weekly advisory lock, so
// concurrent writers cannot both pass the overlap check.
func (s *Store) inWeekTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", "weekly_slots").Exec(ctx); err != nil {
			return fmt.Errorf("locking slots: %w", err)
		}
		return fn(ctx, tx)
	})
}

// checkOverlap returns slot.ErrSlotOverlap if an active slot other than
// exclude intersects [start, end) on day.
func checkOverlap(ctx context.Context, tx bun.Tx, day slot.Weekday, start, end int, exclude uuid.UUID) error {
	var existing slotRow
	q := tx.NewSelect().
		Model(&existing).
		Where("day_of_week = ?", int(day)).
		Where("is_active").
		Where("start_minute < ?", end).
		Where("end_minute > ?", start)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}

	err := q.Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}

	return fmt.Errorf("%w: conflicts with %s %s (%s)",
		slot.ErrSlotOverlap, day, slot.FormatRange(existing.StartMinute, existing.EndMinute), existing.ID)
}

// parseID maps ids that cannot exist in the table to slot.ErrSlotNotFound.
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", slot.ErrSlotNotFound, id)
	}
	return uid, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", slot.ErrSlotNotFound, id)
	}
	return nil
}
