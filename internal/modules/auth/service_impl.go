package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/juliettemtl/boutique-backend/internal/modules/user"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown emails and wrong
// passwords alike, so the login response never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 24 * time.Hour

type service struct {
	userRepo user.Repository
	secret   []byte
}

// NewService creates a new auth service signing tokens with the given secret.
func NewService(userRepo user.Repository, secret []byte) Service {
	return &service{userRepo: userRepo, secret: secret}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
