package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"photogrid/identity/internal/models"
	"photogrid/identity/internal/security"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrCredentialsNotFound covers both an unknown username and a wrong
	// password so callers cannot enumerate accounts.
	ErrCredentialsNotFound = errors.New("no user matches the supplied credentials")

	// ErrDuplicateUser covers uniqueness violations on username and email
	// alike; which column collided is not disclosed.
	ErrDuplicateUser = errors.New("username or email already registered")
)

type UserRepository struct {
	db         DB
	bcryptCost int
}

func NewUserRepository(db DB, bcryptCost int) *UserRepository {
	if bcryptCost == 0 {
		bcryptCost = security.DefaultBcryptCost
	}
	return &UserRepository{db: db, bcryptCost: bcryptCost}
}

// Create inserts a new user row. The plaintext password is hashed here, at
// write time, with a per-row salt generated by the hashing primitive; the
// plaintext is never stored. Uniqueness of username and email is enforced by
// store constraints, so concurrent registrations resolve to exactly one
// winner and one ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, user models.User, password string) error {
	hash, err := security.HashPassword(password, r.bcryptCost)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO users (
			username, first_name, last_name, email, password, account_status, user_perms, created, last_login
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NULL
		)
	`

	_, err = r.db.Exec(ctx, query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		string(hash),
		user.Status,
		user.Permissions,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// VerifyCredentials looks up the user by username and checks the plaintext
// password against the stored salted hash. Unknown username and wrong
// password both return ErrCredentialsNotFound; store I/O failures propagate
// distinctly so the caller can log them, but they must read as the same
// authentication failure to the client.
func (r *UserRepository) VerifyCredentials(ctx context.Context, username, password string) (int64, error) {
	const query = `SELECT user_id, password FROM users WHERE username = $1`

	var (
		userID int64
		hash   []byte
	)
	if err := r.db.QueryRow(ctx, query, username).Scan(&userID, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrCredentialsNotFound
		}
		return 0, fmt.Errorf("select credentials: %w", err)
	}

	if !security.VerifyPassword(password, hash) {
		return 0, ErrCredentialsNotFound
	}
	return userID, nil
}

// GetByID loads a user row without its password hash; the hash stays behind
// the store boundary.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	const query = `
		SELECT user_id, username, first_name, last_name, email, account_status, user_perms, created, last_login
		FROM users WHERE user_id = $1
	`

	var user models.User
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Status,
		&user.Permissions,
		&user.CreatedAt,
		&user.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// TouchLastLogin records a successful login. Best-effort from the caller's
// perspective; a failure here never fails the login itself.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	const query = `UPDATE users SET last_login = NOW() WHERE user_id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("touch last_login: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
