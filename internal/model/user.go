package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

// UserDTO is the wire representation of a user. It intentionally has no
// password hash field: the hash must never leave the service.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// DeletedUserDTO echoes the identifying fields of a user that was removed.
type DeletedUserDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// DTO projects the user into its wire representation, dropping the
// password hash.
func (u User) DTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// DeletedDTO projects the user into the deletion response shape.
func (u User) DeletedDTO() DeletedUserDTO {
	return DeletedUserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
