package controller

import (
	"context"

	"github.com/stratizen/stratizen/internal/event"
)

// Events forwards mutation intents to the event repository from a
// background worker and exposes the repository's reactive views. The
// done callbacks are optional and run on the worker goroutine; they
// must not block.
type Events struct {
	repo *event.Repository
	q    *queue
}

func NewEvents(repo *event.Repository) *Events {
	return &Events{repo: repo, q: newQueue()}
}

// Add validates and stores a new event. Validation failures are
// reported before anything is enqueued.
func (c *Events) Add(e event.Event, done func(error)) error {
	return c.AddAndReturnID(e, func(_ int64, err error) {
		if done != nil {
			done(err)
		}
	})
}

// AddAndReturnID stores a new event and hands the assigned identity to
// done, so the caller can key follow-up work (like a reminder) to the
// stored row.
func (c *Events) AddAndReturnID(e event.Event, done func(int64, error)) error {
	if err := event.Validate(e); err != nil {
		return err
	}
	return c.q.dispatch(func() {
		id, err := c.repo.Insert(e)
		if done != nil {
			done(id, err)
		}
	})
}

// Update overwrites an existing event.
func (c *Events) Update(e event.Event, done func(error)) error {
	if err := event.Validate(e); err != nil {
		return err
	}
	return c.q.dispatch(func() {
		err := c.repo.Update(e)
		if done != nil {
			done(err)
		}
	})
}

// Delete removes an event; deleting an absent id reports success.
func (c *Events) Delete(id int64, done func(error)) error {
	return c.q.dispatch(func() {
		err := c.repo.Delete(id)
		if done != nil {
			done(err)
		}
	})
}

// Read-side delegation. These are safe to call from any goroutine.

func (c *Events) All() ([]event.Event, error)              { return c.repo.All() }
func (c *Events) ByGroup(g string) ([]event.Event, error)  { return c.repo.ByGroup(g) }
func (c *Events) Get(id int64) (*event.Event, error)       { return c.repo.Get(id) }
func (c *Events) WatchAll(ctx context.Context) <-chan []event.Event {
	return c.repo.WatchAll(ctx)
}
func (c *Events) WatchGroup(ctx context.Context, g string) <-chan []event.Event {
	return c.repo.WatchGroup(ctx, g)
}
func (c *Events) WatchOne(ctx context.Context, id int64) <-chan *event.Event {
	return c.repo.WatchOne(ctx, id)
}

// Close drains pending mutations and stops the worker.
func (c *Events) Close() { c.q.close() }
