// Package schedule fires event reminders. The next fire time is a
// pure function of the event list so it can be recomputed whenever the
// events table changes.
package schedule

import (
	"context"
	"time"

	"github.com/stratizen/stratizen/internal/config"
	"github.com/stratizen/stratizen/internal/event"
)

// NextReminder returns the earliest event whose reminder time (event
// timestamp minus lead) is still ahead of now. ok is false when
// nothing is due anymore.
func NextReminder(now time.Time, events []event.Event, lead time.Duration) (event.Event, time.Time, bool) {
	var (
		best   event.Event
		bestAt time.Time
		found  bool
	)
	for _, e := range events {
		at := time.UnixMilli(e.Timestamp).Add(-lead)
		if !at.After(now) {
			continue
		}
		if !found || at.Before(bestAt) {
			best, bestAt, found = e, at, true
		}
	}
	return best, bestAt, found
}

// Run watches the event stream and invokes fire for each event when
// its reminder comes due, until ctx is canceled. The timer re-arms on
// every change to the events table, so edits and deletes take effect
// immediately.
func Run(ctx context.Context, events <-chan []event.Event, cfg config.Config, fire func(event.Event)) {
	lead := time.Duration(cfg.Reminder.LeadMinutes) * time.Minute

	var current []event.Event
	t := time.NewTimer(time.Hour)
	stopTimer(t)

	arm := func() {
		stopTimer(t)
		if _, at, ok := NextReminder(time.Now(), current, lead); ok {
			t.Reset(time.Until(at))
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer(t)
			return
		case evs, ok := <-events:
			if !ok {
				stopTimer(t)
				return
			}
			current = evs
			arm()
		case <-t.C:
			// Fire everything due as of now, then re-arm.
			now := time.Now()
			for _, e := range current {
				at := time.UnixMilli(e.Timestamp).Add(-lead)
				if !at.After(now) && at.After(now.Add(-time.Minute)) {
					fire(e)
				}
			}
			arm()
		}
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
