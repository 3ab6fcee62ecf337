package sqlite

import "fmt"

// migrate runs database migrations.
func (s *Store) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS weekly_slots (
			id           TEXT PRIMARY KEY,
			day_of_week  INTEGER NOT NULL CHECK(day_of_week BETWEEN 0 AND 6),
			start_minute INTEGER NOT NULL CHECK(start_minute >= 0 AND start_minute < 1440),
			end_minute   INTEGER NOT NULL CHECK(end_minute > start_minute AND end_minute <= 1440),
			capacity     INTEGER NOT NULL CHECK(capacity > 0),
			is_active    INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
			updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_weekly_slots_day ON weekly_slots(day_of_week, start_minute);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating weekly_slots table: %w", err)
	}

	return nil
}
