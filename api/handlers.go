/*
handlers.go - HTTP API handlers for the Jalali calendar engine

PURPOSE:
  Exposes the calendar core and the agenda via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the jalali and
  agenda packages.

ENDPOINTS:
  Conversion:
    GET    /api/today                   Today as a Jalali date
    GET    /api/convert/to-jalali       Gregorian -> Jalali (?date=2026-08-26)
    GET    /api/convert/to-gregorian    Jalali -> Gregorian (?date=1405-06-04)
    POST   /api/resolve                 Field map -> date under a mode

  Calendar:
    GET    /api/years/{year}            Year summary (leap, days, weeks)
    GET    /api/calendar/{year}/{month} Month grid with holidays and events
    POST   /api/span                    Distance between two dates

  Events:
    GET    /api/events                  List events (?from=&to=)
    POST   /api/events                  Create event
    GET    /api/events/{id}             Get event
    PUT    /api/events/{id}             Update event
    DELETE /api/events/{id}             Delete event

  Holidays:
    GET    /api/holidays/{year}         Observances in a year
    POST   /api/holidays                Add a holiday
    POST   /api/holidays/defaults       Load the official Iranian set
    DELETE /api/holidays/{id}           Remove a holiday

  Scenarios:
    GET    /api/scenarios               List demo scenarios
    POST   /api/scenarios/load          Load a demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (jalali.IsValidationError)
  - 404: Resource not found
  - 409: Conflict (duplicate event)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/calendar-engine/agenda"
	"github.com/warp/calendar-engine/factory"
	"github.com/warp/calendar-engine/jalali"
	"github.com/warp/calendar-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Factory  *factory.HolidayFactory
	Calendar *agenda.Calendar

	// today is swappable so tests control the clock.
	today func() jalali.Date

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		Factory:  factory.NewHolidayFactory(),
		Calendar: agenda.NewCalendar(store),
		today:    jalali.Today,
	}
}

// =============================================================================
// CONVERSION HANDLERS
// =============================================================================

// Today returns the current Jalali date.
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toDateDTO(h.today()))
}

// ToJalali converts a Gregorian date given as ?date=YYYY-MM-DD.
func (h *Handler) ToJalali(w http.ResponseWriter, r *http.Request) {
	var g jalali.GregorianDate
	if _, err := fmt.Sscanf(r.URL.Query().Get("date"), "%d-%d-%d", &g.Year, &g.Month, &g.Day); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}
	if err := g.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Gregorian date", err)
		return
	}

	d, err := jalali.FromGregorian(g)
	if err != nil {
		writeDomainError(w, "Conversion failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toDateDTO(d))
}

// ToGregorian converts a Jalali date given as ?date=YYYY-MM-DD.
func (h *Handler) ToGregorian(w http.ResponseWriter, r *http.Request) {
	d, err := jalali.Parse(r.URL.Query().Get("date"))
	if err != nil {
		writeDomainError(w, "Invalid Jalali date", err)
		return
	}
	writeJSON(w, http.StatusOK, toDateDTO(d))
}

// Resolve reconstructs a date from a field map under a strictness mode.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mode, err := parseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode", err)
		return
	}

	values := jalali.FieldValues{}
	for name, v := range req.Fields {
		f, ok := fieldByName(name)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown field %q", name), nil)
			return
		}
		values[f] = v
	}

	d, err := jalali.Resolve(values, mode)
	if err != nil {
		writeDomainError(w, "Resolution failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toDateDTO(d))
}

func parseMode(s string) (jalali.ResolveMode, error) {
	switch s {
	case "", "strict":
		return jalali.ResolveStrict, nil
	case "clamp":
		return jalali.ResolveClamp, nil
	case "lenient":
		return jalali.ResolveLenient, nil
	default:
		return 0, fmt.Errorf("mode %q is not strict, clamp or lenient", s)
	}
}

var resolvableFields = []jalali.Field{
	jalali.FieldYear,
	jalali.FieldMonthOfYear,
	jalali.FieldDayOfMonth,
	jalali.FieldDayOfYear,
	jalali.FieldDayOfWeek,
	jalali.FieldEpochDay,
	jalali.FieldAlignedWeekOfYear,
	jalali.FieldWeekBasedYear,
	jalali.FieldWeekOfWeekBasedYear,
}

func fieldByName(name string) (jalali.Field, bool) {
	for _, f := range resolvableFields {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// GetYear returns a year summary.
func (h *Handler) GetYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	if _, err := jalali.New(year, 1, 1); err != nil {
		writeDomainError(w, "Invalid year", err)
		return
	}

	writeJSON(w, http.StatusOK, YearDTO{
		Year:     year,
		LeapYear: jalali.IsLeapYear(year),
		Days:     jalali.YearLength(year),
		Weeks:    jalali.WeeksInYear(year),
	})
}

// GetMonth returns one month as a grid of days with holidays and events.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	first, err := jalali.New(year, month, 1)
	if err != nil {
		writeDomainError(w, "Invalid month", err)
		return
	}
	length := first.LengthOfMonth()

	ctx := r.Context()
	holidays, err := h.Store.HolidaysInYear(ctx, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holidays", err)
		return
	}
	last, _ := first.PlusDays(int64(length) - 1)
	events, err := h.eventsObservedIn(ctx, first, last)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load events", err)
		return
	}

	dto := MonthDTO{
		Year:      year,
		Month:     month,
		MonthName: first.Month().String(),
		Length:    length,
	}
	d := first
	for day := 1; day <= length; day++ {
		g := d.ToGregorian()
		cell := DayDTO{
			Day:       day,
			Weekday:   int(d.DayOfWeek()),
			Gregorian: fmt.Sprintf("%04d-%02d-%02d", g.Year, g.Month, g.Day),
		}
		for _, hd := range holidays {
			if hd.Date.Equal(d) {
				cell.Holiday = true
			}
		}
		for _, e := range events[d.EpochDay()] {
			cell.Events = append(cell.Events, e.Title)
		}
		dto.Days = append(dto.Days, cell)
		d, _ = d.PlusDays(1)
	}

	writeJSON(w, http.StatusOK, dto)
}

// eventsObservedIn collects fixed events in [from, to] plus the observances
// of recurring events falling inside the window, keyed by epoch day.
func (h *Handler) eventsObservedIn(ctx context.Context, from, to jalali.Date) (map[int64][]agenda.Event, error) {
	out := make(map[int64][]agenda.Event)

	fixed, err := h.Store.ListEvents(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, e := range fixed {
		if !e.Recurring {
			out[e.Date.EpochDay()] = append(out[e.Date.EpochDay()], e)
		}
	}

	recurring, err := h.Store.ListRecurring(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range recurring {
		for year := from.Year(); year <= to.Year(); year++ {
			observed, ok := e.ObservedIn(year)
			if !ok || observed.Before(from) || observed.After(to) {
				continue
			}
			shifted := e
			shifted.Date = observed
			out[observed.EpochDay()] = append(out[observed.EpochDay()], shifted)
		}
	}
	return out, nil
}

// Span measures the distance between two dates in every date unit.
func (h *Handler) Span(w http.ResponseWriter, r *http.Request) {
	var req SpanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	from, err := jalali.Parse(req.From)
	if err != nil {
		writeDomainError(w, "Invalid from date", err)
		return
	}
	to, err := jalali.Parse(req.To)
	if err != nil {
		writeDomainError(w, "Invalid to date", err)
		return
	}

	days := from.DaysUntil(to)
	weeks, _ := from.Until(to, jalali.UnitWeeks)
	months, _ := from.Until(to, jalali.UnitMonths)
	years, _ := from.Until(to, jalali.UnitYears)

	working, err := h.Calendar.WorkingDaysBetween(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count working days", err)
		return
	}

	// Fractional spans over the mean year of 365 + 8/33 days.
	dDays := decimal.NewFromInt(days)
	meanYear := decimal.NewFromInt(365).Add(decimal.NewFromInt(8).Div(decimal.NewFromInt(33)))
	yearsExact := dDays.Div(meanYear)

	writeJSON(w, http.StatusOK, SpanDTO{
		Days:        days,
		Weeks:       weeks,
		Months:      months,
		Years:       years,
		WorkingDays: working,
		WeeksExact:  dDays.Div(decimal.NewFromInt(7)).Round(4).String(),
		MonthsExact: yearsExact.Mul(decimal.NewFromInt(12)).Round(4).String(),
		YearsExact:  yearsExact.Round(4).String(),
	})
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

// ListEvents returns events in a date range (defaults to the current year).
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	from, _ := jalali.New(today.Year(), 1, 1)
	to, _ := jalali.FromYearDay(today.Year(), today.LengthOfYear())
	var err error
	if q := r.URL.Query().Get("from"); q != "" {
		if from, err = jalali.Parse(q); err != nil {
			writeDomainError(w, "Invalid from date", err)
			return
		}
	}
	if q := r.URL.Query().Get("to"); q != "" {
		if to, err = jalali.Parse(q); err != nil {
			writeDomainError(w, "Invalid to date", err)
			return
		}
	}

	events, err := h.Store.ListEvents(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}

	dtos := make([]EventDTO, len(events))
	for i, e := range events {
		dtos[i] = toEventDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEvent returns a single event.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.GetEvent(r.Context(), agenda.EventID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "Failed to get event", err)
		return
	}
	writeJSON(w, http.StatusOK, toEventDTO(e))
}

// CreateEvent creates a new event.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}
	e.ID = agenda.EventID(fmt.Sprintf("ev-%d-%s", e.Date.EpochDay(), slugify(e.Title)))

	if err := h.Store.SaveEvent(r.Context(), e); err != nil {
		writeDomainError(w, "Failed to create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventDTO(e))
}

// UpdateEvent replaces an existing event.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}
	e.ID = agenda.EventID(chi.URLParam(r, "id"))

	if err := h.Store.UpdateEvent(r.Context(), e); err != nil {
		writeDomainError(w, "Failed to update event", err)
		return
	}
	writeJSON(w, http.StatusOK, toEventDTO(e))
}

// DeleteEvent removes an event.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEvent(r.Context(), agenda.EventID(chi.URLParam(r, "id"))); err != nil {
		writeDomainError(w, "Failed to delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeEvent(w http.ResponseWriter, r *http.Request) (agenda.Event, bool) {
	var req SaveEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return agenda.Event{}, false
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required", nil)
		return agenda.Event{}, false
	}
	date, err := jalali.Parse(req.Date)
	if err != nil {
		writeDomainError(w, "Invalid date", err)
		return agenda.Event{}, false
	}
	return agenda.Event{
		Title:     req.Title,
		Date:      date,
		Recurring: req.Recurring,
		Notes:     req.Notes,
	}, true
}

func toEventDTO(e agenda.Event) EventDTO {
	return EventDTO{
		ID:        string(e.ID),
		Title:     e.Title,
		Date:      toDateDTO(e.Date),
		Recurring: e.Recurring,
		Notes:     e.Notes,
	}
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the observances in a year.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	holidays, err := h.Store.HolidaysInYear(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hd := range holidays {
		dtos[i] = HolidayDTO{
			ID:        hd.ID,
			Name:      hd.Name,
			Date:      toDateDTO(hd.Date),
			Recurring: hd.Recurring,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a holiday.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := jalali.Parse(req.Date)
	if err != nil {
		writeDomainError(w, "Invalid date", err)
		return
	}

	holiday := agenda.Holiday{
		ID:        fmt.Sprintf("custom-%02d-%02d-%s", int(date.Month()), date.Day(), slugify(req.Name)),
		Name:      req.Name,
		Date:      date,
		Recurring: req.Recurring,
	}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID:        holiday.ID,
		Name:      holiday.Name,
		Date:      toDateDTO(holiday.Date),
		Recurring: holiday.Recurring,
	})
}

// AddDefaultHolidays loads the official Iranian solar holidays.
func (h *Handler) AddDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	for _, hd := range h.Factory.OfficialIranian() {
		if err := h.Store.SaveHoliday(ctx, hd); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}

// DeleteHoliday removes a holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ResetDatabase clears all stored events and holidays. Dev only.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps the core error categories onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case jalali.IsValidationError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, agenda.ErrEventNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, agenda.ErrDuplicateEvent):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func slugify(s string) string {
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
