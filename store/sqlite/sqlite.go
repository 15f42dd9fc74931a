/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements agenda.Store (events and holidays) using SQLite. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  agenda.EventStore:   Agenda events anchored on Jalali dates
  agenda.HolidayStore: Named non-working days, fixed or yearly recurring

EPOCH-DAY KEYING:
  Event rows store the date as an integer epoch day (days since 1970-01-01).
  Any Gregorian-based system reading the same database interprets the key
  identically; the Jalali rendering happens at the API boundary only.
  Recurring rows additionally store (month, day) so the yearly pattern can
  be queried without decoding the epoch day in SQL.

KEY TABLES:
  events:   Agenda entries, unique per (epoch_day, title)
  holidays: Holiday definitions, fixed (year set) or recurring (year NULL)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/calendar.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - agenda/store.go: Interface definitions
  - agenda/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/calendar-engine/agenda"
	"github.com/warp/calendar-engine/jalali"
)

// Store implements agenda.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Events (epoch_day is the interop key; month/day serve recurrence queries)
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		epoch_day INTEGER NOT NULL,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		recurring BOOLEAN DEFAULT FALSE,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_epoch_day
		ON events(epoch_day);
	CREATE INDEX IF NOT EXISTS idx_events_recurring
		ON events(month, day) WHERE recurring = TRUE;

	-- No two events share a day and a title
	CREATE UNIQUE INDEX IF NOT EXISTS idx_events_unique_day_title
		ON events(epoch_day, title);

	-- Holidays (year NULL means yearly recurring)
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		year INTEGER,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_year
		ON holidays(year);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(name, year, month, day);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EVENT STORE (agenda.EventStore interface)
// =============================================================================

// SaveEvent inserts a new event.
func (s *Store) SaveEvent(ctx context.Context, e agenda.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO events (id, title, epoch_day, month, day, recurring, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		string(e.ID),
		e.Title,
		e.Date.EpochDay(),
		int(e.Date.Month()),
		e.Date.Day(),
		e.Recurring,
		e.Notes,
		time.Now().UTC().Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueConstraintError(err) {
			return agenda.ErrDuplicateEvent
		}
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}

// GetEvent retrieves an event by ID.
func (s *Store) GetEvent(ctx context.Context, id agenda.EventID) (agenda.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, title, epoch_day, recurring, notes
		FROM events
		WHERE id = ?
	`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, string(id)))
	if err == sql.ErrNoRows {
		return agenda.Event{}, agenda.ErrEventNotFound
	}
	return e, err
}

// UpdateEvent replaces an existing event.
func (s *Store) UpdateEvent(ctx context.Context, e agenda.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE events
		SET title = ?, epoch_day = ?, month = ?, day = ?, recurring = ?, notes = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		e.Title,
		e.Date.EpochDay(),
		int(e.Date.Month()),
		e.Date.Day(),
		e.Recurring,
		e.Notes,
		string(e.ID),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return agenda.ErrDuplicateEvent
		}
		return fmt.Errorf("failed to update event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return agenda.ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes an event by ID.
func (s *Store) DeleteEvent(ctx context.Context, id agenda.EventID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return agenda.ErrEventNotFound
	}
	return nil
}

// ListEvents returns events anchored in [from, to], ordered by date.
func (s *Store) ListEvents(ctx context.Context, from, to jalali.Date) ([]agenda.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, title, epoch_day, recurring, notes
		FROM events
		WHERE epoch_day >= ? AND epoch_day <= ?
		ORDER BY epoch_day ASC, title ASC
	`

	return s.queryEvents(ctx, query, from.EpochDay(), to.EpochDay())
}

// ListRecurring returns every recurring event.
func (s *Store) ListRecurring(ctx context.Context) ([]agenda.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, title, epoch_day, recurring, notes
		FROM events
		WHERE recurring = TRUE
		ORDER BY month ASC, day ASC, title ASC
	`

	return s.queryEvents(ctx, query)
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]agenda.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []agenda.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (agenda.Event, error) {
	var (
		e        agenda.Event
		id       string
		epochDay int64
		notes    sql.NullString
	)

	if err := row.Scan(&id, &e.Title, &epochDay, &e.Recurring, &notes); err != nil {
		return agenda.Event{}, err
	}

	date, err := jalali.FromEpochDay(epochDay)
	if err != nil {
		return agenda.Event{}, fmt.Errorf("event %s has corrupt epoch day %d: %w", id, epochDay, err)
	}

	e.ID = agenda.EventID(id)
	e.Date = date
	e.Notes = notes.String
	return e, nil
}

// =============================================================================
// HOLIDAY STORE (agenda.HolidayStore interface)
// =============================================================================

// SaveHoliday saves a holiday definition.
func (s *Store) SaveHoliday(ctx context.Context, h agenda.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var year *int
	if !h.Recurring {
		y := h.Date.Year()
		year = &y
	}

	// Recurring rows carry year = NULL, and SQLite treats NULLs as distinct
	// in unique indexes, so conflicts surface on the id primary key.
	query := `
		INSERT INTO holidays (id, name, year, month, day, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID,
		h.Name,
		year,
		int(h.Date.Month()),
		h.Date.Day(),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

// HolidaysInYear returns the observances of all stored holidays in the
// given Jalali year.
func (s *Store) HolidaysInYear(ctx context.Context, year int) ([]agenda.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, year, month, day
		FROM holidays
		WHERE year = ? OR year IS NULL
		ORDER BY month ASC, day ASC, name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []agenda.Holiday
	for rows.Next() {
		var (
			h          agenda.Holiday
			fixedYear  sql.NullInt64
			month, day int
		)
		if err := rows.Scan(&h.ID, &h.Name, &fixedYear, &month, &day); err != nil {
			return nil, err
		}
		h.Recurring = !fixedYear.Valid

		// Esfand 30 of a recurring pattern is observed on the 29th in a
		// common year; fixed rows were validated against their own year.
		if h.Recurring && month == 12 && day == 30 && !jalali.IsLeapYear(year) {
			day = 29
		}
		date, err := jalali.New(year, month, day)
		if err != nil {
			return nil, fmt.Errorf("holiday %s has corrupt date %d-%d: %w", h.ID, month, day, err)
		}
		h.Date = date
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"events", "holidays"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// CountEvents returns the number of stored events (for admin view).
func (s *Store) CountEvents(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count)
	return count, err
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
