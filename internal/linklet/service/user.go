package service

import (
	"context"
	"errors"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/store"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	Store store.Store
}

// GetUser resolves an authenticated user ID to its current record. The HTTP
// layer calls this after token verification so role checks always see fresh
// state rather than whatever was true when the token was minted.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
