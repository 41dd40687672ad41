// Package identity wraps the credential store that issues auth user ids. It is
// deliberately separate from the relational schema: profile rows reference auth
// ids, but the two systems share no transaction, which is why user provisioning
// needs a compensating delete instead of a rollback.
package identity

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("a user with this email address has already been registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("identity not found")
)

// Metadata is attached to the account at creation time. The relational profile
// row is the source of truth afterwards; this copy exists so the identity
// service is self-describing.
type Metadata struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"user_role"`
}

type CreateUserParams struct {
	Email          string
	Password       string
	EmailConfirmed bool
	Metadata       Metadata
}

// UpdateUserParams fields are applied only when non-empty.
type UpdateUserParams struct {
	Email    string
	Password string
}

type Service interface {
	CreateUser(p CreateUserParams) (uuid.UUID, error)
	UpdateUser(id uuid.UUID, p UpdateUserParams) error
	DeleteUser(id uuid.UUID) error
	VerifyPassword(email, password string) (uuid.UUID, error)
}
