/*
scheduler.go - Background reminder scheduler

PURPOSE:
  Periodically scans the agenda for upcoming events and holidays and logs
  reminders. Keeps the agenda warm without any client needing to poll.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Looks ahead a configurable number of days from today
  - Recurring entries are expanded to their observance in the current year
  - Remembers what it already announced so reminders fire once per day

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - LookAheadDays: How far ahead to announce (default: 7)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewReminderScheduler(store, handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: Event and holiday handlers
  - store/sqlite/sqlite.go: Event queries
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/calendar-engine/jalali"
	"github.com/warp/calendar-engine/store/sqlite"
)

// ReminderScheduler announces upcoming agenda entries.
type ReminderScheduler struct {
	Store         *sqlite.Store
	Handler       *Handler
	CheckInterval time.Duration
	LookAheadDays int
	Enabled       bool

	ticker    *time.Ticker
	stop      chan bool
	wg        sync.WaitGroup
	mu        sync.Mutex
	announced map[string]int64 // event ID -> epoch day last announced for
}

// NewReminderScheduler creates a new scheduler.
func NewReminderScheduler(store *sqlite.Store, handler *Handler) *ReminderScheduler {
	return &ReminderScheduler{
		Store:         store,
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		LookAheadDays: 7,
		Enabled:       true,
		stop:          make(chan bool),
		announced:     make(map[string]int64),
	}
}

// Start begins the scheduler.
func (rs *ReminderScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Scheduler] Started with check interval: %v", rs.CheckInterval)
}

// Stop stops the scheduler.
func (rs *ReminderScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (rs *ReminderScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.CheckNow()

	for {
		select {
		case <-rs.ticker.C:
			rs.CheckNow()
		case <-rs.stop:
			return
		}
	}
}

// CheckNow scans the look-ahead window once and logs reminders for entries
// not yet announced for their observed day.
func (rs *ReminderScheduler) CheckNow() {
	ctx := context.Background()
	today := rs.Handler.today()

	horizon, err := today.PlusDays(int64(rs.LookAheadDays))
	if err != nil {
		log.Printf("[Scheduler] Error computing horizon: %v", err)
		return
	}

	upcoming, err := rs.Handler.eventsObservedIn(ctx, today, horizon)
	if err != nil {
		log.Printf("[Scheduler] Error listing events: %v", err)
		return
	}

	announcedCount := 0
	rs.mu.Lock()
	for epochDay, events := range upcoming {
		for _, e := range events {
			if rs.announced[string(e.ID)] == epochDay {
				continue
			}
			rs.announced[string(e.ID)] = epochDay
			announcedCount++

			d, derr := jalali.FromEpochDay(epochDay)
			if derr != nil {
				continue
			}
			log.Printf("[Scheduler] Upcoming: %q on %s (%s, in %d days)",
				e.Title, d, d.DayOfWeek(), today.DaysUntil(d))
		}
	}
	rs.mu.Unlock()

	if announcedCount > 0 {
		log.Printf("[Scheduler] Announced %d upcoming entries", announcedCount)
	}
}
