package service

import (
	"context"
	"testing"
	"time"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/pkg/cryptox"
	"github.com/fernwell/linklet/pkg/idx"
	"github.com/fernwell/linklet/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	signer := jwtx.NewSigner("test-secret", "test-issuer", time.Minute)
	svc := &TokenService{Store: st, Signer: signer}

	hash, err := cryptox.HashPassword("hunter22")
	require.NoError(t, err)
	user := domain.User{
		ID:           idx.New().String(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	t.Run("valid credentials mint a verifiable token", func(t *testing.T) {
		token, expiresAt, got, err := svc.Login(ctx, "alice@example.com", "hunter22")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)

		claims, err := signer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email collapses into the same error", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "nobody@example.com", "hunter22")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user := seedUser(t, st, "alice@example.com", domain.RoleMember, nil)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)

	_, err = svc.GetUser(ctx, idx.New().String())
	require.ErrorIs(t, err, ErrUserNotFound)
}
