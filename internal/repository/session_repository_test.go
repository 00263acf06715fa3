package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRepo(t *testing.T) (*SessionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewSessionRepository(mock), mock
}

func TestSessionRepositoryCreate(t *testing.T) {
	repo, mock := newSessionRepo(t)

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(int64(7), "tok3n/abc=", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), 7, "tok3n/abc=", time.Hour)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryFetchExpiry(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		expires := time.Now().Add(time.Hour).Truncate(time.Microsecond)
		mock.ExpectQuery(`SELECT expires FROM sessions`).
			WithArgs("tok3n/abc=").
			WillReturnRows(pgxmock.NewRows([]string{"expires"}).AddRow(expires))

		got, err := repo.FetchExpiry(context.Background(), "tok3n/abc=")
		require.NoError(t, err)
		assert.Equal(t, expires, got)
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		mock.ExpectQuery(`SELECT expires FROM sessions`).
			WithArgs("never-issued").
			WillReturnRows(pgxmock.NewRows([]string{"expires"}))

		_, err := repo.FetchExpiry(context.Background(), "never-issued")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		mock.ExpectQuery(`SELECT expires FROM sessions`).
			WithArgs("tok3n/abc=").
			WillReturnError(errors.New("connection refused"))

		_, err := repo.FetchExpiry(context.Background(), "tok3n/abc=")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestSessionRepositoryDeleteIsIdempotent(t *testing.T) {
	repo, mock := newSessionRepo(t)

	mock.ExpectExec(`DELETE FROM sessions WHERE session_id`).
		WithArgs("tok3n/abc=").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM sessions WHERE session_id`).
		WithArgs("tok3n/abc=").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), "tok3n/abc="))
	// Zero rows affected is still success.
	assert.NoError(t, repo.Delete(context.Background(), "tok3n/abc="))
}

func TestSessionRepositoryListByUser(t *testing.T) {
	repo, mock := newSessionRepo(t)

	now := time.Now().Truncate(time.Microsecond)
	mock.ExpectQuery(`SELECT user_id, session_id, created, expires`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "session_id", "created", "expires"}).
			AddRow(int64(7), "tok-b", now, now.Add(time.Hour)).
			AddRow(int64(7), "tok-a", now.Add(-time.Minute), now.Add(59*time.Minute)))

	sessions, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "tok-b", sessions[0].Token)
	assert.Equal(t, int64(7), sessions[1].UserID)
}

func TestSessionRepositoryCountActive(t *testing.T) {
	repo, mock := newSessionRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sessions`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := repo.CountActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSessionRepositoryDeleteExpired(t *testing.T) {
	repo, mock := newSessionRepo(t)

	mock.ExpectExec(`DELETE FROM sessions WHERE expires`).
		WillReturnResult(pgxmock.NewResult("DELETE", 5))

	deleted, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}
