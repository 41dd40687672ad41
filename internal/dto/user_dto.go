package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Role     string  `json:"role"`
	FixedFee float64 `json:"fixed_fee"`
}

type CreateUserResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	LocalRoleID int64     `json:"local_role_id"`
	Message     string    `json:"message"`
}

// UpdateUserRequest pointer fields are applied only when present; credentials
// reach the identity service only when non-empty.
type UpdateUserRequest struct {
	FullName string   `json:"full_name"`
	Phone    *string  `json:"phone"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	FixedFee *float64 `json:"fixed_fee"`
}
