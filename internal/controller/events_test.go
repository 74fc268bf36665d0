package controller

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratizen/stratizen/internal/event"
	"github.com/stratizen/stratizen/internal/store"
	"github.com/stratizen/stratizen/internal/xp"
)

func setupControllers(t *testing.T) (*Events, *XP) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	events := NewEvents(event.NewRepository(st))
	xpc := NewXP(xp.NewRepository(st))
	t.Cleanup(func() {
		events.Close()
		xpc.Close()
		_ = st.Close()
	})
	return events, xpc
}

func awaitErr(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
		return nil
	}
}

func TestEvents_AddAndReturnID(t *testing.T) {
	events, _ := setupControllers(t)

	type result struct {
		id  int64
		err error
	}
	res := make(chan result, 1)
	err := events.AddAndReturnID(event.Event{Title: "Lecture", Timestamp: 1}, func(id int64, err error) {
		res <- result{id, err}
	})
	require.NoError(t, err)

	select {
	case r := <-res:
		require.NoError(t, r.err)
		require.NotZero(t, r.id)

		got, err := events.Get(r.id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Lecture", got.Title)
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
}

func TestEvents_AddRejectsBlankTitleBeforeDispatch(t *testing.T) {
	events, _ := setupControllers(t)

	err := events.Add(event.Event{Title: "  "}, nil)
	require.Error(t, err)

	var verr *event.ValidationError
	assert.ErrorAs(t, err, &verr)

	all, err := events.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEvents_MutationsRunInIssueOrder(t *testing.T) {
	events, _ := setupControllers(t)

	// Queue an insert, an update and a delete back to back without
	// waiting; the worker must apply them in order.
	done := make(chan error, 1)
	var id int64
	require.NoError(t, events.AddAndReturnID(event.Event{Title: "v1", Timestamp: 1}, func(newID int64, err error) {
		require.NoError(t, err)
		id = newID
		// Issued from the worker itself, still strictly after this insert.
		require.NoError(t, events.Update(event.Event{ID: newID, Title: "v2", Timestamp: 2}, nil))
		require.NoError(t, events.Delete(newID, func(err error) { done <- err }))
	}))

	require.NoError(t, awaitErr(t, done))

	got, err := events.Get(id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEvents_DeleteAbsentReportsSuccess(t *testing.T) {
	events, _ := setupControllers(t)

	done := make(chan error, 1)
	require.NoError(t, events.Delete(12345, func(err error) { done <- err }))
	require.NoError(t, awaitErr(t, done))
}

func TestEvents_DispatchAfterCloseFails(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	events := NewEvents(event.NewRepository(st))
	events.Close()

	err = events.Add(event.Event{Title: "late", Timestamp: 1}, nil)
	assert.ErrorIs(t, err, ErrClosed)

	// Close twice is harmless.
	events.Close()
}

func TestXP_AwardThroughController(t *testing.T) {
	_, xpc := setupControllers(t)

	res := make(chan xp.Xp, 1)
	require.NoError(t, xpc.Award(45, func(x xp.Xp, err error) {
		require.NoError(t, err)
		res <- x
	}))

	select {
	case x := <-res:
		assert.Equal(t, 45, x.Points)
		assert.Equal(t, 1, x.Level)
	case <-time.After(time.Second):
		t.Fatal("award callback never fired")
	}

	cur, err := xpc.Current()
	require.NoError(t, err)
	assert.Equal(t, 45, cur.Points)
}

func TestAddingEventAwardsTenPoints(t *testing.T) {
	events, xpc := setupControllers(t)

	// The calling convention: each added event is worth 10 points.
	added := make(chan error, 1)
	require.NoError(t, events.Add(event.Event{Title: "Club meeting", Timestamp: 1}, func(err error) {
		added <- err
	}))
	require.NoError(t, awaitErr(t, added))

	awarded := make(chan error, 1)
	require.NoError(t, xpc.Award(xp.PointsPerEvent, func(_ xp.Xp, err error) { awarded <- err }))
	require.NoError(t, awaitErr(t, awarded))

	cur, err := xpc.Current()
	require.NoError(t, err)
	assert.Equal(t, xp.PointsPerEvent, cur.Points)
}
