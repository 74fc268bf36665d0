package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesSchema(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	for _, table := range []string{"events", "xp_table"} {
		var name string
		err := st.DB.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "missing table %s", table)
		assert.Equal(t, table, name)
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	require.NoError(t, err)

	_, err = st.DB.Exec(`INSERT INTO events (title, description, timestamp, grp) VALUES ('x', '', 0, 'General')`)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// Reopening must keep existing rows.
	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	var count int
	require.NoError(t, st.DB.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count))
	assert.Equal(t, 1, count)
}
