package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role determines a user's authorization scope. It is the sole signal the
// access guard looks at.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Profile status values shared with the SPA frontend.
const (
	StatusDefault = "Baja forma / Limitación"
	StatusActive  = "Activo"
)

// Profile carries the free-form coaching attributes of a user. It has no
// bearing on authentication.
type Profile struct {
	Limitations []string `json:"limitations"`
	Objectives  []string `json:"objectives"`
	Status      string   `json:"status"`
}

// User is the sole identity entity.
//
// The password hash and the one-time codes never leave the backend: they are
// excluded from JSON marshalling, and the invite code in particular is only
// revealed once, in the admin-create response.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Profile      Profile   `json:"profile"`
	Phone        string    `json:"phone,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	InviteCode   *string   `json:"-"`
	RecoveryCode *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the verified subject the guard attaches to the request context.
type Identity struct {
	ID   uuid.UUID
	Role Role
}
