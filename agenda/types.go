/*
types.go - Core types for the Jalali agenda

PURPOSE:
  Events and holidays anchored on Jalali dates. Storage keys events by the
  epoch day, so the same rows interoperate with any Gregorian-based system
  reading the database.

RECURRENCE:
  A recurring event repeats every year on the same (month, day). A
  recurrence on Esfand 30 is observed on Esfand 29 in common years, the
  same clamp the date arithmetic uses.

SEE ALSO:
  - store.go: Persistence interfaces
  - factory/holiday.go: Holiday calendars built from JSON definitions
*/
package agenda

import (
	"github.com/warp/calendar-engine/jalali"
)

// EventID uniquely identifies an event.
type EventID string

// Event is a single agenda entry on a Jalali date.
type Event struct {
	ID        EventID
	Title     string
	Date      jalali.Date
	Recurring bool // repeats yearly on (month, day)
	Notes     string
}

// Holiday is a named non-working day.
type Holiday struct {
	ID        string
	Name      string
	Date      jalali.Date
	Recurring bool
}

// ObservedIn returns where the event falls in the given year. Non-recurring
// events only occur in their own year.
func (e Event) ObservedIn(year int) (jalali.Date, bool) {
	if !e.Recurring {
		if e.Date.Year() != year {
			return jalali.Date{}, false
		}
		return e.Date, true
	}
	d, err := observedDate(year, e.Date.Month(), e.Date.Day())
	if err != nil {
		return jalali.Date{}, false
	}
	return d, true
}

// ObservedIn returns where the holiday falls in the given year.
func (h Holiday) ObservedIn(year int) (jalali.Date, bool) {
	if !h.Recurring {
		if h.Date.Year() != year {
			return jalali.Date{}, false
		}
		return h.Date, true
	}
	d, err := observedDate(year, h.Date.Month(), h.Date.Day())
	if err != nil {
		return jalali.Date{}, false
	}
	return d, true
}

// observedDate places a yearly (month, day) pattern in a target year,
// clamping Esfand 30 to 29 when the year is common.
func observedDate(year int, month jalali.Month, day int) (jalali.Date, error) {
	if month == jalali.Esfand && day == 30 && !jalali.IsLeapYear(year) {
		day = 29
	}
	return jalali.New(year, int(month), day)
}
