package service

import (
	"context"
	"testing"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the first super admin", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Token: "seed-token"}

		bootstrapped, err := svc.IsBootstrapped(ctx)
		require.NoError(t, err)
		require.False(t, bootstrapped)

		admin, err := svc.Bootstrap(ctx, "seed-token", "Root", "root@example.com", "hunter22")
		require.NoError(t, err)
		require.Equal(t, domain.RoleSuperAdmin, admin.Role)
		require.Nil(t, admin.CompanyID)
		require.NoError(t, cryptox.VerifyPassword("hunter22", admin.PasswordHash))

		bootstrapped, err = svc.IsBootstrapped(ctx)
		require.NoError(t, err)
		require.True(t, bootstrapped)
	})

	t.Run("wrong token", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Token: "seed-token"}

		_, err := svc.Bootstrap(ctx, "guess", "Root", "root@example.com", "hunter22")
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("refuses when no token is configured", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st}

		_, err := svc.Bootstrap(ctx, "", "Root", "root@example.com", "hunter22")
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("runs only once", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Token: "seed-token"}

		_, err := svc.Bootstrap(ctx, "seed-token", "Root", "root@example.com", "hunter22")
		require.NoError(t, err)

		_, err = svc.Bootstrap(ctx, "seed-token", "Root II", "root2@example.com", "hunter22")
		require.ErrorIs(t, err, ErrBootstrapAlready)
	})

	t.Run("any existing user blocks bootstrap", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Token: "seed-token"}
		seedUser(t, st, "existing@example.com", domain.RoleMember, nil)

		_, err := svc.Bootstrap(ctx, "seed-token", "Root", "root@example.com", "hunter22")
		require.ErrorIs(t, err, ErrBootstrapAlready)
	})
}
