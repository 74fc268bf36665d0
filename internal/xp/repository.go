package xp

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/stratizen/stratizen/internal/store"
)

// Repository reads and updates the singleton XP row. Award is a
// read-modify-write, so it runs under a mutex: two concurrent awards
// must both land rather than clobber each other.
type Repository struct {
	st *store.Store
	mu sync.Mutex
}

func NewRepository(st *store.Store) *Repository {
	return &Repository{st: st}
}

// Current returns the XP record, or the zero-progress default if no
// points were ever awarded.
func (r *Repository) Current() (Xp, error) {
	var x Xp
	err := r.st.DB.QueryRow(
		`SELECT id, points, level FROM xp_table WHERE id = ?`, SingletonID,
	).Scan(&x.ID, &x.Points, &x.Level)
	if err == sql.ErrNoRows {
		return Default(), nil
	}
	if err != nil {
		return Xp{}, fmt.Errorf("read xp: %w", err)
	}
	return x, nil
}

// Award adds points to the running total and rederives the level.
// Negative amounts are rejected; zero is a no-op that still reports
// the current state. The row is created on first award.
func (r *Repository) Award(points int) (Xp, error) {
	if points < 0 {
		return Xp{}, fmt.Errorf("award %d points: amount must not be negative", points)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.Current()
	if err != nil {
		return Xp{}, err
	}
	if points == 0 {
		return cur, nil
	}

	next := Xp{
		ID:     SingletonID,
		Points: cur.Points + points,
		Level:  Level(cur.Points + points),
	}
	_, err = r.st.DB.Exec(
		`INSERT OR REPLACE INTO xp_table (id, points, level) VALUES (?, ?, ?)`,
		next.ID, next.Points, next.Level,
	)
	if err != nil {
		return Xp{}, fmt.Errorf("write xp: %w", err)
	}

	r.st.Hub.Publish(store.TopicXP)
	return next, nil
}

// Watch streams the XP record: the current state on subscribe, then
// one emission per award.
func (r *Repository) Watch(ctx context.Context) <-chan Xp {
	return store.Watch(ctx, r.st.Hub, store.TopicXP, r.Current)
}
