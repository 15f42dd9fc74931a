/*
Package factory provides JSON to Go holiday-calendar conversion.

PURPOSE:
  Converts JSON holiday definitions into agenda.Holiday values. This enables
  calendar configuration without code changes - operators can define an
  organization's closure days in JSON, and the factory creates the proper
  Go structs.

WHY JSON?
  - Non-developers can modify the calendar
  - Easy integration with an admin UI
  - Version control for calendar definitions
  - Database storage of calendar configs

JSON SCHEMA:
  {
    "name": "iran-official",
    "holidays": [
      {"name": "Nowruz", "month": 1, "day": 1, "recurring": true},
      {"name": "Company offsite", "year": 1404, "month": 7, "day": 15}
    ]
  }

  A recurring entry omits "year" and repeats every year on (month, day).
  A fixed entry names its year and occurs exactly once.

LUNAR HOLIDAYS:
  Only solar-calendar holidays can be expressed as recurring entries. The
  Islamic lunar observances drift against the solar year and must be loaded
  as fixed per-year entries.

USAGE:
  factory := NewHolidayFactory()
  holidays, err := factory.ParseCalendar(jsonString)

  // Or start from the official Iranian solar holidays
  holidays := factory.OfficialIranian()

SEE ALSO:
  - agenda/types.go: Holiday type and observance rules
  - store/sqlite/sqlite.go: Persistence
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/calendar-engine/agenda"
	"github.com/warp/calendar-engine/jalali"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CalendarJSON is the JSON representation of a holiday calendar.
type CalendarJSON struct {
	Name     string        `json:"name"`
	Holidays []HolidayJSON `json:"holidays"`
}

// HolidayJSON represents one holiday definition.
type HolidayJSON struct {
	Name      string `json:"name"`
	Year      int    `json:"year,omitempty"` // 0 means recurring
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	Recurring bool   `json:"recurring,omitempty"`
}

// =============================================================================
// HOLIDAY FACTORY
// =============================================================================

// HolidayFactory converts JSON calendars to agenda holidays.
type HolidayFactory struct{}

// NewHolidayFactory creates a new holiday factory.
func NewHolidayFactory() *HolidayFactory {
	return &HolidayFactory{}
}

// ParseCalendar parses a JSON string into a list of holidays.
func (f *HolidayFactory) ParseCalendar(jsonStr string) ([]agenda.Holiday, error) {
	var cj CalendarJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse calendar JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts a parsed calendar into holidays, validating each entry.
func (f *HolidayFactory) FromJSON(cj CalendarJSON) ([]agenda.Holiday, error) {
	holidays := make([]agenda.Holiday, 0, len(cj.Holidays))
	for i, hj := range cj.Holidays {
		h, err := f.fromEntry(cj.Name, i, hj)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

func (f *HolidayFactory) fromEntry(calendar string, idx int, hj HolidayJSON) (agenda.Holiday, error) {
	if hj.Name == "" {
		return agenda.Holiday{}, fmt.Errorf("holiday %d: name is required", idx)
	}
	recurring := hj.Recurring || hj.Year == 0

	// Recurring entries are anchored in an arbitrary leap year so Esfand 30
	// validates; observance shifts it per target year.
	year := hj.Year
	if recurring {
		year = 1399
	}
	date, err := jalali.New(year, hj.Month, hj.Day)
	if err != nil {
		return agenda.Holiday{}, fmt.Errorf("holiday %q: %w", hj.Name, err)
	}

	return agenda.Holiday{
		ID:        fmt.Sprintf("%s-%02d-%02d-%s", calendar, hj.Month, hj.Day, slug(hj.Name)),
		Name:      hj.Name,
		Date:      date,
		Recurring: recurring,
	}, nil
}

// OfficialIranian returns the fixed solar-calendar public holidays of Iran.
// Lunar observances are excluded; load those as per-year entries.
func (f *HolidayFactory) OfficialIranian() []agenda.Holiday {
	entries := []HolidayJSON{
		{Name: "Nowruz", Month: 1, Day: 1},
		{Name: "Nowruz", Month: 1, Day: 2},
		{Name: "Nowruz", Month: 1, Day: 3},
		{Name: "Nowruz", Month: 1, Day: 4},
		{Name: "Islamic Republic Day", Month: 1, Day: 12},
		{Name: "Sizdah Bedar", Month: 1, Day: 13},
		{Name: "Demise of Imam Khomeini", Month: 3, Day: 14},
		{Name: "Khordad 15 Uprising", Month: 3, Day: 15},
		{Name: "Victory of the Islamic Revolution", Month: 11, Day: 22},
		{Name: "Oil Nationalization Day", Month: 12, Day: 29},
	}
	holidays, err := f.FromJSON(CalendarJSON{Name: "iran-official", Holidays: entries})
	if err != nil {
		// The built-in table is static and always valid.
		panic(err)
	}
	return holidays
}

func slug(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c-'A'+'a')
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			out = append(out, c)
		case c == ' ' || c == '-':
			out = append(out, '-')
		}
	}
	return string(out)
}
