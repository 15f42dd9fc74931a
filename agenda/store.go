/*
store.go - Persistence interfaces for events and holidays

PURPOSE:
  Defines the interface between the agenda logic and the database. Dates
  cross the boundary as jalali.Date values; implementations persist the
  epoch day so rows stay readable by Gregorian-based tooling.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - agenda/store/memory.go: In-memory for testing

SEE ALSO:
  - types.go: Event and Holiday
*/
package agenda

import (
	"context"
	"errors"

	"github.com/warp/calendar-engine/jalali"
)

var (
	// ErrEventNotFound is returned when looking up an event that does not
	// exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrDuplicateEvent is returned when saving an event whose (date, title)
	// pair already exists.
	ErrDuplicateEvent = errors.New("event already exists on that day")
)

// EventStore handles persistence of agenda events.
type EventStore interface {
	// SaveEvent inserts a new event. Returns ErrDuplicateEvent when another
	// event with the same title sits on the same day.
	SaveEvent(ctx context.Context, e Event) error

	// GetEvent returns an event by ID, or ErrEventNotFound.
	GetEvent(ctx context.Context, id EventID) (Event, error)

	// UpdateEvent replaces an existing event, or ErrEventNotFound.
	UpdateEvent(ctx context.Context, e Event) error

	// DeleteEvent removes an event by ID, or ErrEventNotFound.
	DeleteEvent(ctx context.Context, id EventID) error

	// ListEvents returns events anchored in [from, to], ordered by date.
	// Recurring events are matched by their anchor date, not observances.
	ListEvents(ctx context.Context, from, to jalali.Date) ([]Event, error)

	// ListRecurring returns every recurring event regardless of anchor.
	ListRecurring(ctx context.Context) ([]Event, error)
}

// HolidayStore handles persistence of holidays.
type HolidayStore interface {
	SaveHoliday(ctx context.Context, h Holiday) error
	DeleteHoliday(ctx context.Context, id string) error

	// HolidaysInYear returns the observances of all stored holidays in the
	// given Jalali year, ordered by date.
	HolidaysInYear(ctx context.Context, year int) ([]Holiday, error)
}

// Store combines all agenda persistence.
type Store interface {
	EventStore
	HolidayStore
}

// Calendar answers day-classification questions over a holiday source. The
// Persian weekend is Friday; Thursday is a working day in this model.
type Calendar struct {
	store HolidayStore
}

// NewCalendar wraps a holiday store.
func NewCalendar(store HolidayStore) *Calendar {
	return &Calendar{store: store}
}

// IsHoliday reports whether d is an observed holiday.
func (c *Calendar) IsHoliday(ctx context.Context, d jalali.Date) (bool, error) {
	holidays, err := c.store.HolidaysInYear(ctx, d.Year())
	if err != nil {
		return false, err
	}
	for _, h := range holidays {
		if h.Date.Equal(d) {
			return true, nil
		}
	}
	return false, nil
}

// IsWorkingDay reports whether d is neither Friday nor a holiday.
func (c *Calendar) IsWorkingDay(ctx context.Context, d jalali.Date) (bool, error) {
	if d.DayOfWeek() == jalali.Jomeh {
		return false, nil
	}
	holiday, err := c.IsHoliday(ctx, d)
	return !holiday, err
}

// WorkingDaysBetween counts working days in [from, to].
func (c *Calendar) WorkingDaysBetween(ctx context.Context, from, to jalali.Date) (int, error) {
	if to.Before(from) {
		from, to = to, from
	}
	count := 0
	for d := from; !d.After(to); {
		working, err := c.IsWorkingDay(ctx, d)
		if err != nil {
			return 0, err
		}
		if working {
			count++
		}
		next, err := d.PlusDays(1)
		if err != nil {
			return count, nil // hit the calendar edge
		}
		d = next
	}
	return count, nil
}
