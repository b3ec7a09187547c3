package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	// Second run is a no-op.
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestMigrateFSOrderAndFailure(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/002_b.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('two');`)},
		"m/001_a.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
	}
	require.NoError(t, MigrateFS(db, fsys, "m"))

	var v string
	require.NoError(t, db.QueryRow(`SELECT v FROM t`).Scan(&v))
	assert.Equal(t, "two", v)

	bad := fstest.MapFS{"m/003_c.sql": {Data: []byte(`NOT SQL`)}}
	assert.Error(t, MigrateFS(db, bad, "m"))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations WHERE name='m/003_c.sql'`).Scan(&n))
	assert.Equal(t, 0, n)
}
