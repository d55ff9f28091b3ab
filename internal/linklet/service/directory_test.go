package service

import (
	"context"
	"testing"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/stretchr/testify/require"
)

func TestListCompanies(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &DirectoryService{Store: st}

	acme := seedCompany(t, st, "Acme")
	globex := seedCompany(t, st, "Globex")

	superAdmin := seedUser(t, st, "root@example.com", domain.RoleSuperAdmin, nil)
	admin := seedUser(t, st, "admin@acme.com", domain.RoleAdmin, &acme.ID)
	dev := seedUser(t, st, "dev@acme.com", domain.RoleMember, &acme.ID)

	urls := &ShortURLService{Store: st}
	_, err := urls.Create(ctx, dev, "https://example.com/1")
	require.NoError(t, err)
	_, err = urls.Create(ctx, dev, "https://example.com/2")
	require.NoError(t, err)

	t.Run("super admin gets counts, newest company first", func(t *testing.T) {
		overviews, err := svc.ListCompanies(ctx, superAdmin)
		require.NoError(t, err)
		require.Len(t, overviews, 2)

		require.Equal(t, globex.ID, overviews[0].ID)
		require.Zero(t, overviews[0].UserCount)
		require.Zero(t, overviews[0].ShortURLCount)

		require.Equal(t, acme.ID, overviews[1].ID)
		require.EqualValues(t, 2, overviews[1].UserCount)
		require.EqualValues(t, 2, overviews[1].ShortURLCount)
	})

	t.Run("admins and members are refused", func(t *testing.T) {
		_, err := svc.ListCompanies(ctx, admin)
		require.ErrorIs(t, err, ErrCompaniesForbidden)
		_, err = svc.ListCompanies(ctx, dev)
		require.ErrorIs(t, err, ErrCompaniesForbidden)
	})
}

func TestListTeam(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &DirectoryService{Store: st}

	acme := seedCompany(t, st, "Acme")
	globex := seedCompany(t, st, "Globex")

	superAdmin := seedUser(t, st, "root@example.com", domain.RoleSuperAdmin, nil)
	admin := seedUser(t, st, "admin@acme.com", domain.RoleAdmin, &acme.ID)
	dev := seedUser(t, st, "dev@acme.com", domain.RoleMember, &acme.ID)
	seedUser(t, st, "outsider@globex.com", domain.RoleMember, &globex.ID)

	// A user row with no role yet; the listing shows it as "N/A".
	limbo := seedUser(t, st, "limbo@acme.com", domain.RoleNone, &acme.ID)

	urls := &ShortURLService{Store: st}
	_, err := urls.Create(ctx, dev, "https://example.com/1")
	require.NoError(t, err)

	t.Run("admin sees own company only, newest first", func(t *testing.T) {
		members, err := svc.ListTeam(ctx, admin)
		require.NoError(t, err)
		require.Len(t, members, 3)

		require.Equal(t, limbo.ID, members[0].ID)
		require.Equal(t, "N/A", members[0].Role)

		require.Equal(t, dev.ID, members[1].ID)
		require.Equal(t, "Member", members[1].Role)
		require.EqualValues(t, 1, members[1].URLCount)

		require.Equal(t, admin.ID, members[2].ID)
		require.Equal(t, "Admin", members[2].Role)
		require.Zero(t, members[2].URLCount)
	})

	t.Run("non-admins are refused", func(t *testing.T) {
		_, err := svc.ListTeam(ctx, dev)
		require.ErrorIs(t, err, ErrTeamForbidden)
		_, err = svc.ListTeam(ctx, superAdmin)
		require.ErrorIs(t, err, ErrTeamForbidden)
	})
}
