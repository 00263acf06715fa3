package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"photogrid/identity/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session row expiring ttl from now. The session_id
// unique constraint means a (vanishingly unlikely) token collision surfaces
// as a store error rather than silently overwriting an existing session.
func (r *SessionRepository) Create(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	const query = `
		INSERT INTO sessions (user_id, session_id, created, expires)
		VALUES ($1, $2, NOW(), $3)
	`
	if _, err := r.db.Exec(ctx, query, userID, token, time.Now().Add(ttl)); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// FetchExpiry returns the expiry timestamp for token, or ErrSessionNotFound.
func (r *SessionRepository) FetchExpiry(ctx context.Context, token string) (time.Time, error) {
	const query = `SELECT expires FROM sessions WHERE session_id = $1`

	var expires time.Time
	if err := r.db.QueryRow(ctx, query, token).Scan(&expires); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, ErrSessionNotFound
		}
		return time.Time{}, fmt.Errorf("select session expiry: %w", err)
	}
	return expires, nil
}

// GetByToken loads the full session row for token.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (models.Session, error) {
	const query = `
		SELECT user_id, session_id, created, expires
		FROM sessions WHERE session_id = $1
	`

	var session models.Session
	if err := r.db.QueryRow(ctx, query, token).Scan(
		&session.UserID,
		&session.Token,
		&session.CreatedAt,
		&session.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, fmt.Errorf("select session: %w", err)
	}
	return session, nil
}

// Delete removes the session row for token. Deleting a token that no longer
// exists is not an error; zero rows affected reads as success.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE session_id = $1`
	if _, err := r.db.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ListByUser returns all session rows owned by userID, newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID int64) ([]models.Session, error) {
	const query = `
		SELECT user_id, session_id, created, expires
		FROM sessions
		WHERE user_id = $1
		ORDER BY created DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.UserID,
			&session.Token,
			&session.CreatedAt,
			&session.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// CountActive returns the number of sessions whose expiry is in the future.
func (r *SessionRepository) CountActive(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM sessions WHERE expires > NOW()`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active sessions: %w", err)
	}
	return count, nil
}

// DeleteExpired removes rows whose expiry has passed. Liveness checks do not
// depend on this sweep; they compare expiry lazily on read.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires <= NOW()`
	cmd, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return cmd.RowsAffected(), nil
}
