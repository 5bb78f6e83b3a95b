package user

import "errors"

var (
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is the only signup failure exposed to the client.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response never reveals which half was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(id string) (*User, error)
}
