// Package sqlite provides the default SQLite slot store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/rota/internal/slot"
)

// Store implements slot.Repository using SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens the database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSlot inserts a new active slot.
// Returns slot.ErrSlotOverlap if it overlaps an active slot on the same day.
func (s *Store) CreateSlot(ctx context.Context, day slot.Weekday, start, end, capacity int) (slot.Slot, error) {
	id, err := slot.NewID()
	if err != nil {
		return slot.Slot{}, err
	}

	created := slot.Slot{
		ID:        id,
		Day:       day,
		Start:     start,
		End:       end,
		Capacity:  capacity,
		Active:    true,
		UpdatedAt: s.now().UTC().Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return slot.Slot{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkOverlapTx(ctx, tx, day, start, end, ""); err != nil {
		return slot.Slot{}, err
	}

	query := `
		INSERT INTO weekly_slots (id, day_of_week, start_minute, end_minute, capacity, is_active, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)
	`
	if _, err := tx.ExecContext(ctx, query,
		created.ID,
		int(created.Day),
		created.Start,
		created.End,
		created.Capacity,
		created.UpdatedAt.Format(time.RFC3339),
	); err != nil {
		return slot.Slot{}, fmt.Errorf("inserting slot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return slot.Slot{}, fmt.Errorf("committing transaction: %w", err)
	}

	return created, nil
}

// UpdateSlot changes day, times and capacity of an existing slot.
// The overlap check skips the slot itself and only applies while it is active.
func (s *Store) UpdateSlot(ctx context.Context, id string, day slot.Weekday, start, end, capacity int) (slot.Slot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return slot.Slot{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getSlotTx(ctx, tx, id)
	if err != nil {
		return slot.Slot{}, err
	}

	if current.Active {
		if err := checkOverlapTx(ctx, tx, day, start, end, id); err != nil {
			return slot.Slot{}, err
		}
	}

	updated := current
	updated.Day = day
	updated.Start = start
	updated.End = end
	updated.Capacity = capacity
	updated.UpdatedAt = s.now().UTC().Truncate(time.Second)

	query := `
		UPDATE weekly_slots
		SET day_of_week = ?, start_minute = ?, end_minute = ?, capacity = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, query,
		int(updated.Day),
		updated.Start,
		updated.End,
		updated.Capacity,
		updated.UpdatedAt.Format(time.RFC3339),
		id,
	); err != nil {
		return slot.Slot{}, fmt.Errorf("updating slot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return slot.Slot{}, fmt.Errorf("committing transaction: %w", err)
	}

	return updated, nil
}

// DeleteSlot removes a slot.
func (s *Store) DeleteSlot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM weekly_slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting slot: %w", err)
	}
	return requireRow(result, id)
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
	query := `UPDATE weekly_slots SET is_active = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, boolToInt(active), s.now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating slot state: %w", err)
	}
	return requireRow(result, id)
}

// ListSlots returns every slot ordered by day then start time.
func (s *Store) ListSlots(ctx context.Context) ([]slot.Slot, error) {
	rows, err := s.db.QueryContext(ctx, selectSlot+` ORDER BY day_of_week, start_minute, id`)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var slots []slot.Slot
	for rows.Next() {
		sl, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}

	return slots, nil
}

const selectSlot = `
	SELECT id, day_of_week, start_minute, end_minute, capacity, is_active, updated_at
	FROM weekly_slots`

type scanner interface {
	Scan(dest ...any) error
}

func scanSlot(row scanner) (slot.Slot, error) {
	var (
		sl        slot.Slot
		day       int
		active    int
		updatedAt sql.NullString
	)

	if err := row.Scan(&sl.ID, &day, &sl.Start, &sl.End, &sl.Capacity, &active, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return slot.Slot{}, err
		}
		return slot.Slot{}, fmt.Errorf("scanning slot: %w", err)
	}

	sl.Day = slot.Weekday(day)
	sl.Active = active != 0
	if updatedAt.Valid {
		sl.UpdatedAt = parseTimestamp(updatedAt.String)
	}

	return sl, nil
}

func getSlotTx(ctx context.Context, tx *sql.Tx, id string) (slot.Slot, error) {
	sl, err := scanSlot(tx.QueryRowContext(ctx, selectSlot+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return slot.Slot{}, fmt.Errorf("%w: %s", slot.ErrSlotNotFound, id)
	}
	return sl, err
}

// checkOverlapTx returns slot.ErrSlotOverlap if an active slot other than
// excludeID intersects [start, end) on day.
// Two time ranges overlap if: start1 < end2 AND start2 < end1
func checkOverlapTx(ctx context.Context, tx *sql.Tx, day slot.Weekday, start, end int, excludeID string) error {
	query := `
		SELECT id, start_minute, end_minute
		FROM weekly_slots
		WHERE day_of_week = ?
		  AND is_active = 1
		  AND id != ?
		  AND start_minute < ?
		  AND end_minute > ?
		LIMIT 1
	`

	var (
		id         string
		existStart int
		existEnd   int
	)

	err := tx.QueryRowContext(ctx, query, int(day), excludeID, end, start).Scan(&id, &existStart, &existEnd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}

	return fmt.Errorf("%w: conflicts with %s %s (%s)",
		slot.ErrSlotOverlap, day, slot.FormatRange(existStart, existEnd), id)
}

func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", slot.ErrSlotNotFound, id)
	}
	return nil
}

// parseTimestamp accepts RFC3339 and the "2006-01-02 15:04:05" form
// SQLite uses for CURRENT_TIMESTAMP. Unparseable values yield zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
