package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account. The whole application sits behind a login
// wall; accounts are created with the createuser command, there is no
// self-service registration.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
