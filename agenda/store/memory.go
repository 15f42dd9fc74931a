// Package store provides agenda.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/calendar-engine/agenda"
	"github.com/warp/calendar-engine/jalali"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	events   map[agenda.EventID]agenda.Event
	holidays map[string]agenda.Holiday
}

func NewMemory() *Memory {
	return &Memory{
		events:   make(map[agenda.EventID]agenda.Event),
		holidays: make(map[string]agenda.Holiday),
	}
}

func (m *Memory) SaveEvent(_ context.Context, e agenda.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.events {
		if existing.Date.Equal(e.Date) && existing.Title == e.Title {
			return agenda.ErrDuplicateEvent
		}
	}
	m.events[e.ID] = e
	return nil
}

func (m *Memory) GetEvent(_ context.Context, id agenda.EventID) (agenda.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[id]
	if !ok {
		return agenda.Event{}, agenda.ErrEventNotFound
	}
	return e, nil
}

func (m *Memory) UpdateEvent(_ context.Context, e agenda.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[e.ID]; !ok {
		return agenda.ErrEventNotFound
	}
	m.events[e.ID] = e
	return nil
}

func (m *Memory) DeleteEvent(_ context.Context, id agenda.EventID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return agenda.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *Memory) ListEvents(_ context.Context, from, to jalali.Date) ([]agenda.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []agenda.Event
	for _, e := range m.events {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, nil
}

func (m *Memory) ListRecurring(_ context.Context) ([]agenda.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []agenda.Event
	for _, e := range m.events {
		if e.Recurring {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, nil
}

func (m *Memory) SaveHoliday(_ context.Context, h agenda.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.holidays[h.ID] = h
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.holidays, id)
	return nil
}

func (m *Memory) HolidaysInYear(_ context.Context, year int) ([]agenda.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []agenda.Holiday
	for _, h := range m.holidays {
		if observed, ok := h.ObservedIn(year); ok {
			h.Date = observed
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].Name < out[j].Name
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func sortEvents(events []agenda.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].Title < events[j].Title
		}
		return events[i].Date.Before(events[j].Date)
	})
}
