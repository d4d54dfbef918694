package model

import (
	"errors"
	"time"
)

// User represents an account in the system. Users are keyed by username;
// there is no surrogate id. The password hash is never serialized.
type User struct {
	Username      string    `db:"username" json:"username"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	FirstName     *string   `db:"first_name" json:"firstName"`
	LastName      *string   `db:"last_name" json:"lastName"`
	Email         *string   `db:"email" json:"email"`
	DOB           *string   `db:"dob" json:"dob"`
	Role          string    `db:"role" json:"role"`
	LoginID       *string   `db:"login_id" json:"loginId"`
	Section       *string   `db:"section" json:"section"`
	LastActivity  *string   `db:"last_activity" json:"lastActivity"`
	TotalActivity *string   `db:"total_activity" json:"totalActivity"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`

	// Derived from the follows relation, not columns on the users table.
	Followers []string `json:"followers"`
	Following []string `json:"following"`
}

// SignupRequest represents the data needed to create a new account.
// Username and password are required; everything else is optional profile data.
type SignupRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	DOB       *string `json:"dob"`
	Role      string  `json:"role"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	DOB       *string `json:"dob"`
}

// DefaultRole is assigned when signup omits a role.
const DefaultRole = "user"

// SearchResultLimit caps user search results regardless of the query.
const SearchResultLimit = 20

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")
)
