package controller

import (
	"context"

	"github.com/stratizen/stratizen/internal/xp"
)

// XP exposes the experience state and dispatches awards off the
// calling goroutine. The 10-points-per-event convention belongs to
// callers, not to this controller.
type XP struct {
	repo *xp.Repository
	q    *queue
}

func NewXP(repo *xp.Repository) *XP {
	return &XP{repo: repo, q: newQueue()}
}

// Award adds points in the background; done receives the post-award
// state.
func (c *XP) Award(points int, done func(xp.Xp, error)) error {
	return c.q.dispatch(func() {
		x, err := c.repo.Award(points)
		if done != nil {
			done(x, err)
		}
	})
}

func (c *XP) Current() (xp.Xp, error) { return c.repo.Current() }

func (c *XP) Watch(ctx context.Context) <-chan xp.Xp { return c.repo.Watch(ctx) }

// Close drains pending awards and stops the worker.
func (c *XP) Close() { c.q.close() }
