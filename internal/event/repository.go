package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stratizen/stratizen/internal/store"
)

// Repository is the CRUD facade over the events table. Reads are
// available both as one-shot queries and as push streams backed by the
// store's change hub.
type Repository struct {
	st *store.Store
}

func NewRepository(st *store.Store) *Repository {
	return &Repository{st: st}
}

const eventColumns = `id, title, description, timestamp, grp`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Timestamp, &e.Group)
	return e, err
}

func (r *Repository) queryEvents(query string, args ...any) ([]Event, error) {
	rows, err := r.st.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return events, nil
}

// All returns every event ordered by timestamp ascending.
func (r *Repository) All() ([]Event, error) {
	return r.queryEvents(`SELECT ` + eventColumns + ` FROM events ORDER BY timestamp ASC`)
}

// ByGroup returns the events whose group matches exactly, in the same
// timestamp-ascending order as All.
func (r *Repository) ByGroup(group string) ([]Event, error) {
	return r.queryEvents(`SELECT `+eventColumns+` FROM events WHERE grp = ? ORDER BY timestamp ASC`, group)
}

// Get returns the event with the given id, or nil if no such row.
func (r *Repository) Get(id int64) (*Event, error) {
	row := r.st.DB.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return &e, nil
}

// Insert stores an event and returns its id. A zero ID asks the store
// to assign one; a nonzero ID replaces any existing row with that
// identity (replace-on-conflict).
func (r *Repository) Insert(e Event) (int64, error) {
	e = Normalize(e)

	var (
		res sql.Result
		err error
	)
	if e.ID == 0 {
		res, err = r.st.DB.Exec(
			`INSERT INTO events (title, description, timestamp, grp) VALUES (?, ?, ?, ?)`,
			e.Title, e.Description, e.Timestamp, e.Group,
		)
	} else {
		res, err = r.st.DB.Exec(
			`INSERT OR REPLACE INTO events (id, title, description, timestamp, grp) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Title, e.Description, e.Timestamp, e.Group,
		)
	}
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	r.st.Hub.Publish(store.TopicEvents)
	return id, nil
}

// Update overwrites the row matching the event's identity. Updating an
// unknown identity returns store.ErrNotFound.
func (r *Repository) Update(e Event) error {
	e = Normalize(e)
	res, err := r.st.DB.Exec(
		`UPDATE events SET title = ?, description = ?, timestamp = ?, grp = ? WHERE id = ?`,
		e.Title, e.Description, e.Timestamp, e.Group, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update event %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event %d: %w", e.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update event %d: %w", e.ID, store.ErrNotFound)
	}
	r.st.Hub.Publish(store.TopicEvents)
	return nil
}

// Delete removes the row with the given id. Deleting an id that is
// already gone is a no-op, not an error.
func (r *Repository) Delete(id int64) error {
	res, err := r.st.DB.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		r.st.Hub.Publish(store.TopicEvents)
	}
	return nil
}

// WatchAll streams the full event list: one snapshot on subscribe,
// then one per change, until ctx is done.
func (r *Repository) WatchAll(ctx context.Context) <-chan []Event {
	return store.Watch(ctx, r.st.Hub, store.TopicEvents, r.All)
}

// WatchGroup streams the events of a single group.
func (r *Repository) WatchGroup(ctx context.Context, group string) <-chan []Event {
	return store.Watch(ctx, r.st.Hub, store.TopicEvents, func() ([]Event, error) {
		return r.ByGroup(group)
	})
}

// WatchOne streams a single event by id; emissions are nil once the
// row is deleted.
func (r *Repository) WatchOne(ctx context.Context, id int64) <-chan *Event {
	return store.Watch(ctx, r.st.Hub, store.TopicEvents, func() (*Event, error) {
		return r.Get(id)
	})
}
