/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates holidays and events
	that demonstrate specific calendar features.

AVAILABLE SCENARIOS:

	iran-official:  The official Iranian solar holiday set, nothing else
	team-planning:  Official holidays plus a quarter of project events
	leap-year-edge: Recurring entries anchored on Esfand 30 to show the
	                common-year observance shift

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create holidays via factory
 3. Add fixed and recurring events

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "team-planning"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Event and holiday handlers
  - factory/holiday.go: Holiday JSON definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/calendar-engine/agenda"
	"github.com/warp/calendar-engine/jalali"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "iran-official",
		Name:        "Official Holidays",
		Description: "The official Iranian solar holiday calendar",
		Category:    "holidays",
	},
	{
		ID:          "team-planning",
		Name:        "Team Planning",
		Description: "Official holidays plus a quarter of milestones and reviews",
		Category:    "agenda",
	},
	{
		ID:          "leap-year-edge",
		Name:        "Leap Year Edges",
		Description: "Recurring Esfand 30 entries observed on Esfand 29 in common years",
		Category:    "calendar",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = "" // Clear current scenario on reset

	var err error
	switch req.ScenarioID {
	case "iran-official":
		err = h.loadOfficialHolidays(ctx)
	case "team-planning":
		err = h.loadTeamPlanningScenario(ctx)
	case "leap-year-edge":
		err = h.loadLeapYearEdgeScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadOfficialHolidays(ctx context.Context) error {
	for _, hd := range h.Factory.OfficialIranian() {
		if err := h.Store.SaveHoliday(ctx, hd); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadTeamPlanningScenario(ctx context.Context) error {
	if err := h.loadOfficialHolidays(ctx); err != nil {
		return err
	}

	year := jalali.Today().Year()
	fixtures := []struct {
		month, day int
		title      string
		notes      string
	}{
		{1, 16, "Quarter kickoff", "First working week after Nowruz"},
		{1, 30, "Design review", ""},
		{2, 15, "Milestone 1 due", "Conversion service feature-complete"},
		{3, 10, "Mid-quarter retro", ""},
		{3, 28, "Release candidate", ""},
	}
	for _, f := range fixtures {
		date, err := jalali.New(year, f.month, f.day)
		if err != nil {
			return err
		}
		ev := agenda.Event{
			ID:    agenda.EventID(fmt.Sprintf("ev-%d-%s", date.EpochDay(), slugify(f.title))),
			Title: f.title,
			Date:  date,
			Notes: f.notes,
		}
		if err := h.Store.SaveEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadLeapYearEdgeScenario(ctx context.Context) error {
	// 1399 is a leap year, so Esfand 30 validates at creation time.
	anchor, err := jalali.New(1399, 12, 30)
	if err != nil {
		return err
	}
	if err := h.Store.SaveEvent(ctx, agenda.Event{
		ID:        "ev-yearend-audit",
		Title:     "Year-end audit",
		Date:      anchor,
		Recurring: true,
		Notes:     "Observed on Esfand 29 in common years",
	}); err != nil {
		return err
	}
	return h.Store.SaveHoliday(ctx, agenda.Holiday{
		ID:        "demo-12-30-leap-day",
		Name:      "Leap Day Celebration",
		Date:      anchor,
		Recurring: true,
	})
}
