package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

// mockOpener hands out one sqlmock handle per call and counts the calls.
type mockOpener struct {
	t      *testing.T
	pings  []error
	opened int
	dbs    []*sql.DB
}

func (o *mockOpener) open(driverName, dsn string) (*sql.DB, error) {
	o.t.Helper()
	require.Equal(o.t, "postgres", driverName)
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(o.t, err)
	o.t.Cleanup(func() { _ = db.Close() })

	ping := mock.ExpectPing()
	if o.opened < len(o.pings) && o.pings[o.opened] != nil {
		ping.WillReturnError(o.pings[o.opened])
	}
	o.opened++
	o.dbs = append(o.dbs, db)
	return db, nil
}

func TestStoreConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("second call reuses the handle", func(t *testing.T) {
		opener := &mockOpener{t: t}
		store := &Store{dsn: "postgres://db/devevent", open: opener.open}

		first, err := store.Connect(ctx)
		require.NoError(t, err)
		second, err := store.Connect(ctx)
		require.NoError(t, err)

		require.Same(t, first, second)
		require.Equal(t, 1, opener.opened)
	})

	t.Run("unreachable store", func(t *testing.T) {
		opener := &mockOpener{t: t, pings: []error{errors.New("connection refused")}}
		store := &Store{dsn: "postgres://db/devevent", open: opener.open}

		db, err := store.Connect(ctx)
		require.ErrorIs(t, err, domain.ErrConnection)
		require.ErrorContains(t, err, "connection refused")
		require.Nil(t, db)
		require.NoError(t, store.Close())
	})

	t.Run("failed connect can be retried", func(t *testing.T) {
		opener := &mockOpener{t: t, pings: []error{errors.New("starting up"), nil}}
		store := &Store{dsn: "postgres://db/devevent", open: opener.open}

		_, err := store.Connect(ctx)
		require.ErrorIs(t, err, domain.ErrConnection)

		db, err := store.Connect(ctx)
		require.NoError(t, err)
		require.Same(t, opener.dbs[1], db)
		require.Equal(t, 2, opener.opened)
	})

	t.Run("open error", func(t *testing.T) {
		store := &Store{dsn: "bad", open: func(string, string) (*sql.DB, error) {
			return nil, errors.New("unknown driver")
		}}

		_, err := store.Connect(ctx)
		require.ErrorIs(t, err, domain.ErrConnection)
	})
}

func TestStoreCloseResets(t *testing.T) {
	opener := &mockOpener{t: t}
	store := &Store{dsn: "postgres://db/devevent", open: opener.open}

	_, err := store.Connect(context.Background())
	require.NoError(t, err)
	_ = store.Close()

	_, err = store.Connect(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, opener.opened)
}
