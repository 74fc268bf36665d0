package xp

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratizen/stratizen/internal/store"
)

func setupTestRepo(t *testing.T) *Repository {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewRepository(st)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 1, Level(0))
	assert.Equal(t, 1, Level(99))
	assert.Equal(t, 2, Level(100))
	assert.Equal(t, 2, Level(105))
	assert.Equal(t, 4, Level(310))
}

func TestRepository_CurrentDefaultsWhenAbsent(t *testing.T) {
	repo := setupTestRepo(t)

	x, err := repo.Current()
	require.NoError(t, err)
	assert.Equal(t, Default(), x)
}

func TestRepository_AwardScenario(t *testing.T) {
	repo := setupTestRepo(t)

	// XP starts absent.
	x, err := repo.Award(45)
	require.NoError(t, err)
	assert.Equal(t, 45, x.Points)
	assert.Equal(t, 1, x.Level)

	x, err = repo.Award(60)
	require.NoError(t, err)
	assert.Equal(t, 105, x.Points)
	assert.Equal(t, 2, x.Level)

	// Zero is a no-op.
	x, err = repo.Award(0)
	require.NoError(t, err)
	assert.Equal(t, 105, x.Points)
	assert.Equal(t, 2, x.Level)

	cur, err := repo.Current()
	require.NoError(t, err)
	assert.Equal(t, x, cur)
}

func TestRepository_SequentialAwardsSum(t *testing.T) {
	repo := setupTestRepo(t)

	amounts := []int{10, 10, 30, 0, 55, 10}
	sum := 0
	for _, p := range amounts {
		_, err := repo.Award(p)
		require.NoError(t, err)
		sum += p
	}

	x, err := repo.Current()
	require.NoError(t, err)
	assert.Equal(t, sum, x.Points)
	assert.Equal(t, 1+sum/PointsPerLevel, x.Level)
}

func TestRepository_AwardRejectsNegative(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Award(-5)
	require.Error(t, err)

	x, err := repo.Current()
	require.NoError(t, err)
	assert.Equal(t, Default(), x)
}

func TestRepository_ConcurrentAwardsLoseNothing(t *testing.T) {
	repo := setupTestRepo(t)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Award(10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	x, err := repo.Current()
	require.NoError(t, err)
	assert.Equal(t, workers*10, x.Points)
	assert.Equal(t, 2, x.Level)
}

func TestRepository_LevelAlwaysDerivedFromPoints(t *testing.T) {
	repo := setupTestRepo(t)

	for i := 0; i < 25; i++ {
		x, err := repo.Award(17)
		require.NoError(t, err)
		assert.Equal(t, Level(x.Points), x.Level)
	}
}

func TestRepository_WatchEmitsOnAward(t *testing.T) {
	repo := setupTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := repo.Watch(ctx)

	select {
	case x := <-ch:
		assert.Equal(t, Default(), x)
	case <-time.After(time.Second):
		t.Fatal("no initial state")
	}

	_, err := repo.Award(30)
	require.NoError(t, err)

	select {
	case x := <-ch:
		assert.Equal(t, 30, x.Points)
	case <-time.After(time.Second):
		t.Fatal("no emission after award")
	}
}

func TestProgressInLevel(t *testing.T) {
	assert.Equal(t, 0, ProgressInLevel(0))
	assert.Equal(t, 45, ProgressInLevel(45))
	assert.Equal(t, 5, ProgressInLevel(105))
	assert.Equal(t, 0, ProgressInLevel(200))
}
