package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/store"
	"github.com/fernwell/linklet/pkg/cryptox"
	"github.com/fernwell/linklet/pkg/idx"
	"github.com/fernwell/linklet/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates the initial SuperAdmin. Every later user enters
// the system through an invitation, so this runs exactly once on an empty
// database and is guarded by a pre-configured token.
type BootstrapService struct {
	Store store.Store
	Token string // Pre-configured bootstrap token
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

func (s *BootstrapService) Bootstrap(
	ctx context.Context,
	token string,
	name string,
	email string,
	password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Check if already bootstrapped
	if bootstrapped, _ := s.IsBootstrapped(ctx); bootstrapped {
		log.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, ErrBootstrapAlready
	}

	// 2. Validate provided token
	if s.Token == "" || token != s.Token {
		log.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	// 3. Hash password
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash bootstrap password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Create the SuperAdmin. No company: super admins sit above tenants.
	admin := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleSuperAdmin,
	}
	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		log.Error("failed to create bootstrap super admin", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("system bootstrapped", slog.String("user_id", admin.ID))
	return admin, nil
}
