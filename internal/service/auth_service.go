// Package service implements the registration, login, and session lifecycle
// workflows on top of the store adapters.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"photogrid/identity/internal/models"
	"photogrid/identity/internal/repository"
	"photogrid/identity/internal/security"
	"photogrid/identity/internal/validate"
)

var (
	ErrUsernameEmpty      = errors.New("username cannot be empty")
	ErrPasswordEmpty      = errors.New("password cannot be empty")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotLoggedIn        = errors.New("no active session for this token")
)

// UserStore is the credential store adapter the workflows compose.
type UserStore interface {
	Create(ctx context.Context, user models.User, password string) error
	VerifyCredentials(ctx context.Context, username, password string) (int64, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

// SessionStore is the session store adapter the workflows compose.
type SessionStore interface {
	Create(ctx context.Context, userID int64, token string, ttl time.Duration) error
	FetchExpiry(ctx context.Context, token string) (time.Time, error)
	GetByToken(ctx context.Context, token string) (models.Session, error)
	Delete(ctx context.Context, token string) error
	ListByUser(ctx context.Context, userID int64) ([]models.Session, error)
}

// TokenMinter issues opaque session tokens from the process-wide secure
// random source.
type TokenMinter interface {
	Mint() (security.SessionToken, error)
}

type AuthService struct {
	users      UserStore
	sessions   SessionStore
	tokens     TokenMinter
	sessionTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(users UserStore, sessions SessionStore, tokens TokenMinter, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		log:        log,
		now:        time.Now,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register validates username, then email, then password, short-circuiting
// on the first violation, and inserts the account. A duplicate username or
// email surfaces as repository.ErrDuplicateUser without revealing which
// column collided.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	if err := validate.Username(input.Username); err != nil {
		s.logRegistrationFailure(input, err)
		return err
	}
	if err := validate.Email(input.Email); err != nil {
		s.logRegistrationFailure(input, err)
		return err
	}
	if err := validate.Password(input.Password); err != nil {
		s.logRegistrationFailure(input, err)
		return err
	}

	user := models.User{
		Username:    input.Username,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Status:      models.AccountStatusActive,
		Permissions: models.PermissionsPhotographer,
	}

	if err := s.users.Create(ctx, user, input.Password); err != nil {
		s.logRegistrationFailure(input, err)
		return err
	}

	s.log.Info().
		Str("username", input.Username).
		Str("email", input.Email).
		Msg("user registered")
	return nil
}

func (s *AuthService) logRegistrationFailure(input RegisterInput, err error) {
	s.log.Error().
		Str("username", input.Username).
		Str("email", input.Email).
		Str("first_name", input.FirstName).
		Str("last_name", input.LastName).
		Err(err).
		Msg("registration failed")
}

// Login verifies credentials, mints a session token from the secure source,
// and persists the session. Whether the username was unknown or the password
// wrong is logged here but reported uniformly as ErrInvalidCredentials. A
// token minted before a failed store write is discarded, never reused.
func (s *AuthService) Login(ctx context.Context, username, password string) (security.SessionToken, error) {
	if username == "" {
		return "", ErrUsernameEmpty
	}
	if password == "" {
		return "", ErrPasswordEmpty
	}

	userID, err := s.users.VerifyCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialsNotFound) {
			s.log.Warn().Str("username", username).Msg("authentication failed")
			return "", ErrInvalidCredentials
		}
		// Store failures read as the same uniform authentication failure to
		// the client, but are logged with full detail.
		s.log.Error().Str("username", username).Err(err).Msg("credential lookup failed")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Mint()
	if err != nil {
		s.log.Error().Err(err).Msg("secure rng unavailable")
		return "", err
	}

	if err := s.sessions.Create(ctx, userID, token.String(), s.sessionTTL); err != nil {
		s.log.Error().Int64("user_id", userID).Err(err).Msg("session creation failed")
		return "", err
	}

	if err := s.users.TouchLastLogin(ctx, userID); err != nil {
		s.log.Warn().Int64("user_id", userID).Err(err).Msg("last_login update failed")
	}

	s.log.Info().
		Int64("user_id", userID).
		Str("session", token.Redacted()).
		Msg("session created")
	return token, nil
}

// IsActive reports whether token names a session whose expiry is still in
// the future. Missing rows and store errors both read as inactive; liveness
// fails closed.
func (s *AuthService) IsActive(ctx context.Context, token security.SessionToken) bool {
	expires, err := s.sessions.FetchExpiry(ctx, token.String())
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			s.log.Error().Err(err).Msg("session liveness check failed")
		}
		return false
	}
	return s.now().Before(expires)
}

// Logout terminates the session for token. A token with no active session
// yields ErrNotLoggedIn; a failed delete propagates rather than being
// silently ignored.
func (s *AuthService) Logout(ctx context.Context, token security.SessionToken) error {
	if !s.IsActive(ctx, token) {
		return ErrNotLoggedIn
	}

	if err := s.sessions.Delete(ctx, token.String()); err != nil {
		s.log.Error().Str("session", token.Redacted()).Err(err).Msg("session termination failed")
		return err
	}

	s.log.Info().Str("session", token.Redacted()).Msg("session terminated")
	return nil
}

// CurrentUser resolves an active session token to its owning user. Expired
// or unknown tokens yield ErrNotLoggedIn.
func (s *AuthService) CurrentUser(ctx context.Context, token security.SessionToken) (models.User, error) {
	session, err := s.sessions.GetByToken(ctx, token.String())
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			s.log.Error().Err(err).Msg("session lookup failed")
		}
		return models.User{}, ErrNotLoggedIn
	}
	if !session.ActiveAt(s.now()) {
		return models.User{}, ErrNotLoggedIn
	}
	return s.users.GetByID(ctx, session.UserID)
}

// Sessions lists all sessions owned by userID.
func (s *AuthService) Sessions(ctx context.Context, userID int64) ([]models.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}
