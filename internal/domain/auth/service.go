package auth

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 12 * time.Hour

type Service struct {
	Store  *Store
	Secret string
}

func NewService(store *Store, secret string) *Service {
	return &Service{Store: store, Secret: secret}
}

// Login verifies admin credentials and issues a signed token. The same error
// is returned for unknown emails and bad passwords.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.Store.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if err := CheckPassword(admin.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, Claims{AdminID: admin.ID, Email: admin.Email}, tokenTTL)
	if err != nil {
		return "", err
	}
	_ = s.Store.UpdateLastLogin(ctx, admin.ID)
	return token, nil
}
