package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMigrationsAreRerunnable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(path))
	// no pending change is not an error
	require.NoError(t, RunMigrations(path))

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"restaurants", "reservations", "reviews", "updates"} {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n)
		require.NoError(t, err, table)
	}
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(path))
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, SeedDemo(ctx, db, 1))

	var restaurants, reservations, feed int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM restaurants`).Scan(&restaurants))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM reservations`).Scan(&reservations))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM updates`).Scan(&feed))
	require.Positive(t, restaurants)
	require.Positive(t, reservations)
	require.Positive(t, feed)

	// a second run must not duplicate the demo data
	require.NoError(t, SeedDemo(ctx, db, 1))
	var again int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM reservations`).Scan(&again))
	require.Equal(t, reservations, again)
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(path))
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO restaurants(name) VALUES('Lume')`)
		return err
	}))

	boom := errors.New("boom")
	err = WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO restaurants(name) VALUES('Sora')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// the failed insert rolled back; only the committed row remains
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM restaurants`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestNow(t *testing.T) {
	t.Parallel()

	now := Now()
	require.Equal(t, time.UTC, now.Location())
	require.Zero(t, now.Nanosecond(), "stamps carry sqlite's second resolution")
}
