package models

import "time"

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusDisabled AccountStatus = "disabled"
)

type Permissions string

const (
	PermissionsPhotographer Permissions = "photographer"
	PermissionsAdmin        Permissions = "admin"
)

// User mirrors a row of the users relation. PasswordHash never leaves the
// repository layer; callers above it only ever see the numeric ID.
type User struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash []byte
	Status       AccountStatus
	Permissions  Permissions
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Session is a row of the sessions relation. A session is active iff the
// current time is before ExpiresAt; a missing row reads as not active.
type Session struct {
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) ActiveAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
