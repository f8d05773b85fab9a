package user

import "context"

// Service defines the interface for staff-account business logic.
type Service interface {
	RegisterUser(ctx context.Context, name, email, password string) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
}
