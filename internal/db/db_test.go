package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_InMemoryHasSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"visitors", "contact_messages"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "portfolio.db")
	database, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, Migrate(database))
	require.NoError(t, database.Close())

	database, err = OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	rows, err := database.Query(`SELECT name FROM pragma_table_info('visitors') ORDER BY cid`)
	require.NoError(t, err)
	defer rows.Close()
	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"id", "hashed_ip", "user_agent", "path", "timestamp"}, cols)
}
