package domain

import (
	"errors"
	"time"
)

// Role is the numeric privilege tag stored on every account. The registration
// path only ever produces RoleUser; RoleAdmin and RoleMod are reserved values
// with no assigned behaviour yet.
type Role int

const (
	RoleAdmin Role = 0
	RoleMod   Role = 1
	RoleUser  Role = 2
)

// Valid reports whether r is one of the three defined role values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMod || r == RoleUser
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleMod:
		return "mod"
	case RoleUser:
		return "user"
	}
	return "unknown"
}

var ErrAccountExists = errors.New("account already exists")
var ErrAccountNotFound = errors.New("account not found")
var ErrInvalidUsername = errors.New("invalid username")

// Account is the sole persisted entity: one registered username.
// Username and CreatedAt are immutable after creation; LastSeenAt only moves
// forward, so CreatedAt <= LastSeenAt holds at all times.
type Account struct {
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	Role       Role      `json:"role"`
}

// NewAccount constructs an account with both timestamps set to now.
func NewAccount(username string, role Role, now time.Time) *Account {
	return &Account{
		Username:   username,
		CreatedAt:  now,
		LastSeenAt: now,
		Role:       role,
	}
}
