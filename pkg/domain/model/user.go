package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotSignedIn        = errors.New("no user is signed in")
)

// User is a registered account. Password is stored as-is and compared with
// exact match; it must never be echoed or logged.
type User struct {
	ID        uuid.UUID
	Username  string
	Password  string
	Orders    []Order
	CreatedAt time.Time
}

type UserRepository interface {
	NextID() (uuid.UUID, error)
	Create(user *User) error
	Update(user *User) error
	FindByUsername(username string) (*User, error)
}
