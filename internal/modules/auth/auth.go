package auth

import "context"

// Service authenticates staff accounts. Login verifies the password
// and returns a signed session token.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}
