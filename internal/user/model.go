package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account row. The password hash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        *string   `json:"phone"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type NewUser struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	Role     string
}

// Patch carries optional field updates, nil means leave unchanged.
type Patch struct {
	Name     *string
	Email    *string
	Password *string
	Phone    *string
	Role     *string
}
