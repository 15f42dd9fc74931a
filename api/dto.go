/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal calendar model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

DATE RENDERING:
  Every date crosses the wire twice: as the canonical Jalali text form and
  as the ISO Gregorian rendering, plus the integer epoch day so numeric
  clients never re-parse text.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - jalali/date.go: The canonical text forms
*/
package api

import (
	"fmt"

	"github.com/warp/calendar-engine/jalali"
)

// =============================================================================
// DATE TYPES
// =============================================================================

// DateDTO is the full rendering of one Jalali date.
type DateDTO struct {
	Jalali        string `json:"jalali"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	MonthName     string `json:"month_name"`
	Day           int    `json:"day"`
	DayOfYear     int    `json:"day_of_year"`
	Weekday       int    `json:"weekday"`
	WeekdayName   string `json:"weekday_name"`
	WeekBasedYear int    `json:"week_based_year"`
	WeekOfYear    int    `json:"week_of_year"`
	LeapYear      bool   `json:"leap_year"`
	EpochDay      int64  `json:"epoch_day"`
	Gregorian     string `json:"gregorian"`
}

func toDateDTO(d jalali.Date) DateDTO {
	g := d.ToGregorian()
	return DateDTO{
		Jalali:        d.String(),
		Year:          d.Year(),
		Month:         int(d.Month()),
		MonthName:     d.Month().String(),
		Day:           d.Day(),
		DayOfYear:     d.DayOfYear(),
		Weekday:       int(d.DayOfWeek()),
		WeekdayName:   d.DayOfWeek().String(),
		WeekBasedYear: jalali.WeekBasedYear(d),
		WeekOfYear:    jalali.WeekOfWeekBasedYear(d),
		LeapYear:      d.IsLeapYear(),
		EpochDay:      d.EpochDay(),
		Gregorian:     fmt.Sprintf("%04d-%02d-%02d", g.Year, g.Month, g.Day),
	}
}

// YearDTO summarizes one Jalali year.
type YearDTO struct {
	Year     int  `json:"year"`
	LeapYear bool `json:"leap_year"`
	Days     int  `json:"days"`
	Weeks    int  `json:"weeks"`
}

// =============================================================================
// RESOLUTION TYPES
// =============================================================================

// ResolveRequest carries a parsed field map and the strictness mode.
// Field names follow the canonical jalali field spelling ("year",
// "month-of-year", "epoch-day", ...).
type ResolveRequest struct {
	Fields map[string]int64 `json:"fields"`
	Mode   string           `json:"mode,omitempty"` // strict (default), clamp, lenient
}

// =============================================================================
// CALENDAR GRID TYPES
// =============================================================================

// MonthDTO is one month rendered as a grid of days.
type MonthDTO struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	MonthName string   `json:"month_name"`
	Length    int      `json:"length"`
	Days      []DayDTO `json:"days"`
}

// DayDTO is one cell of the month grid.
type DayDTO struct {
	Day       int      `json:"day"`
	Weekday   int      `json:"weekday"`
	Holiday   bool     `json:"holiday"`
	Events    []string `json:"events,omitempty"`
	Gregorian string   `json:"gregorian"`
}

// =============================================================================
// SPAN TYPES
// =============================================================================

// SpanRequest measures the distance between two Jalali dates.
type SpanRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SpanDTO carries the whole-unit spans plus fractional renderings computed
// with decimal arithmetic (mean Jalali year of 365 + 8/33 days), and the
// working-day count honoring stored holidays and the Jomeh weekend.
type SpanDTO struct {
	Days        int64  `json:"days"`
	Weeks       int64  `json:"weeks"`
	Months      int64  `json:"months"`
	Years       int64  `json:"years"`
	WorkingDays int    `json:"working_days"`
	WeeksExact  string `json:"weeks_exact"`
	MonthsExact string `json:"months_exact"`
	YearsExact  string `json:"years_exact"`
}

// =============================================================================
// EVENT TYPES
// =============================================================================

// EventDTO represents an agenda event in API responses.
type EventDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Date      DateDTO `json:"date"`
	Recurring bool    `json:"recurring"`
	Notes     string  `json:"notes,omitempty"`
}

// SaveEventRequest is the request to create or update an event.
type SaveEventRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date"` // canonical Jalali form
	Recurring bool   `json:"recurring"`
	Notes     string `json:"notes,omitempty"`
}

// =============================================================================
// HOLIDAY TYPES
// =============================================================================

// HolidayDTO represents a holiday observance.
type HolidayDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Date      DateDTO `json:"date"`
	Recurring bool    `json:"recurring"`
}

// CreateHolidayRequest is the request to add a holiday.
type CreateHolidayRequest struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	Recurring bool   `json:"recurring"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
