/*
scheduler_test.go - Tests for the reminder scheduler
*/
package api

import (
	"context"
	"testing"

	"github.com/warp/calendar-engine/agenda"
	"github.com/warp/calendar-engine/jalali"
)

func TestReminderScheduler_CheckNow(t *testing.T) {
	// GIVEN: One fixed event inside the window, one outside, one recurring
	h, _ := newTestHandler(t)
	ctx := context.Background()

	inWindow := agenda.Event{ID: "ev-soon", Title: "Soon", Date: jalali.MustNew(1405, 6, 6)}
	outside := agenda.Event{ID: "ev-later", Title: "Later", Date: jalali.MustNew(1405, 7, 1)}
	recurring := agenda.Event{ID: "ev-annual", Title: "Annual", Date: jalali.MustNew(1399, 6, 8), Recurring: true}
	for _, e := range []agenda.Event{inWindow, outside, recurring} {
		if err := h.Store.SaveEvent(ctx, e); err != nil {
			t.Fatalf("Failed to save event: %v", err)
		}
	}

	rs := NewReminderScheduler(h.Store, h)

	// WHEN: Scanning once (today is 1405-06-04, look-ahead 7 days)
	rs.CheckNow()

	// THEN: The fixed and the recurring entries inside the window are
	// announced once, for their observed epoch day
	if len(rs.announced) != 2 {
		t.Fatalf("Expected 2 announcements, got %d: %v", len(rs.announced), rs.announced)
	}
	if rs.announced["ev-soon"] != jalali.MustNew(1405, 6, 6).EpochDay() {
		t.Errorf("Expected ev-soon announced for 1405-06-06, got %d", rs.announced["ev-soon"])
	}
	if rs.announced["ev-annual"] != jalali.MustNew(1405, 6, 8).EpochDay() {
		t.Errorf("Expected ev-annual observed in 1405, got %d", rs.announced["ev-annual"])
	}

	// Re-scanning announces nothing new
	rs.CheckNow()
	if len(rs.announced) != 2 {
		t.Errorf("Expected announcements to stay at 2, got %d", len(rs.announced))
	}
}
