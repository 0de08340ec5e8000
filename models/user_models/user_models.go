package user_models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Accounts are managed outside the booking core;
// the core only reads them to validate that a caller exists.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"-"`
}

func NewUser(name, email string) (*User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &User{ID: id, Name: name, Email: email, CreatedAt: time.Now()}, nil
}
