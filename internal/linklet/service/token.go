package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/store"
	"github.com/fernwell/linklet/pkg/cryptox"
	"github.com/fernwell/linklet/pkg/jwtx"
	"github.com/fernwell/linklet/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// TokenService authenticates users and mints access tokens. It is the
// in-process authenticator collaborator for the protected endpoints.
type TokenService struct {
	Store  store.Store
	Signer *jwtx.Signer
}

// Login verifies the email/password pair and returns a signed access token
// together with the authenticated user. Lookup and verification failures
// collapse into one error so callers cannot probe which emails exist.
func (s *TokenService) Login(
	ctx context.Context,
	email string,
	password string,
) (string, time.Time, domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempt for unknown email")
			return "", time.Time{}, domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user for login", slog.Any("error", err))
		return "", time.Time{}, domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login attempt with wrong password", slog.String("user_id", user.ID))
		return "", time.Time{}, domain.User{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.Signer.Sign(user.ID)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return "", time.Time{}, domain.User{}, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return token, expiresAt, user, nil
}
