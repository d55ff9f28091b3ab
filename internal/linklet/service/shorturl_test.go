package service

import (
	"context"
	"testing"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestCreateShortURL(t *testing.T) {
	ctx := context.Background()

	t.Run("member creates a company-scoped mapping", func(t *testing.T) {
		st := newTestStore(t)
		svc := &ShortURLService{Store: st}
		company := seedCompany(t, st, "Acme")
		member := seedUser(t, st, "dev@acme.com", domain.RoleMember, &company.ID)

		shortURL, err := svc.Create(ctx, member, "https://example.com/some/long/path?q=1")
		require.NoError(t, err)
		require.Len(t, shortURL.ShortCode, cryptox.ShortCodeLength)
		require.Equal(t, company.ID, shortURL.CompanyID)
		require.Equal(t, member.ID, shortURL.CreatedBy)

		resolved, err := svc.Resolve(ctx, shortURL.ShortCode)
		require.NoError(t, err)
		require.Equal(t, "https://example.com/some/long/path?q=1", resolved.OriginalURL)
	})

	t.Run("admin can create too", func(t *testing.T) {
		st := newTestStore(t)
		svc := &ShortURLService{Store: st}
		company := seedCompany(t, st, "Acme")
		admin := seedUser(t, st, "admin@acme.com", domain.RoleAdmin, &company.ID)

		_, err := svc.Create(ctx, admin, "http://example.com")
		require.NoError(t, err)
	})

	t.Run("super admin cannot create", func(t *testing.T) {
		st := newTestStore(t)
		svc := &ShortURLService{Store: st}
		superAdmin := seedUser(t, st, "root@example.com", domain.RoleSuperAdmin, nil)

		_, err := svc.Create(ctx, superAdmin, "https://example.com")
		require.ErrorIs(t, err, ErrShortURLForbidden)
	})

	t.Run("rejects malformed urls", func(t *testing.T) {
		st := newTestStore(t)
		svc := &ShortURLService{Store: st}
		company := seedCompany(t, st, "Acme")
		member := seedUser(t, st, "dev@acme.com", domain.RoleMember, &company.ID)

		for _, raw := range []string{
			"",
			"not a url",
			"example.com/no-scheme",
			"ftp://example.com/wrong-scheme",
			"https://",
		} {
			_, err := svc.Create(ctx, member, raw)
			require.ErrorIs(t, err, ErrInvalidOriginalURL, "url %q", raw)
		}
	})

	t.Run("retries on short code collision", func(t *testing.T) {
		st := newTestStore(t)
		company := seedCompany(t, st, "Acme")
		member := seedUser(t, st, "dev@acme.com", domain.RoleMember, &company.ID)

		codes := []string{"AAAAAA", "AAAAAA", "BBBBBB"}
		svc := &ShortURLService{
			Store: st,
			GenerateCode: func() (string, error) {
				code := codes[0]
				codes = codes[1:]
				return code, nil
			},
		}

		first, err := svc.Create(ctx, member, "https://example.com/1")
		require.NoError(t, err)
		require.Equal(t, "AAAAAA", first.ShortCode)

		// Second create draws AAAAAA, collides, retries with BBBBBB.
		second, err := svc.Create(ctx, member, "https://example.com/2")
		require.NoError(t, err)
		require.Equal(t, "BBBBBB", second.ShortCode)
	})

	t.Run("gives up when the generator never produces a free code", func(t *testing.T) {
		st := newTestStore(t)
		company := seedCompany(t, st, "Acme")
		member := seedUser(t, st, "dev@acme.com", domain.RoleMember, &company.ID)

		svc := &ShortURLService{
			Store:        st,
			GenerateCode: func() (string, error) { return "STUCK1", nil },
		}

		_, err := svc.Create(ctx, member, "https://example.com/1")
		require.NoError(t, err)

		_, err = svc.Create(ctx, member, "https://example.com/2")
		require.ErrorIs(t, err, ErrCodeSpaceExhausted)
	})
}

func TestResolveShortURL(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ShortURLService{Store: st}

	_, err := svc.Resolve(ctx, "missing")
	require.ErrorIs(t, err, ErrShortURLNotFound)
}

func TestListShortURLs(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ShortURLService{Store: st}

	acme := seedCompany(t, st, "Acme")
	globex := seedCompany(t, st, "Globex")

	superAdmin := seedUser(t, st, "root@example.com", domain.RoleSuperAdmin, nil)
	acmeAdmin := seedUser(t, st, "admin@acme.com", domain.RoleAdmin, &acme.ID)
	acmeDev := seedUser(t, st, "dev@acme.com", domain.RoleMember, &acme.ID)
	globexDev := seedUser(t, st, "dev@globex.com", domain.RoleMember, &globex.ID)

	mustCreate := func(u domain.User, target string) domain.ShortURL {
		shortURL, err := svc.Create(ctx, u, target)
		require.NoError(t, err)
		return shortURL
	}
	adminURL := mustCreate(acmeAdmin, "https://example.com/admin")
	devURL1 := mustCreate(acmeDev, "https://example.com/dev/1")
	devURL2 := mustCreate(acmeDev, "https://example.com/dev/2")
	globexURL := mustCreate(globexDev, "https://example.com/globex")

	t.Run("super admin sees everything with creator and company context", func(t *testing.T) {
		views, err := svc.List(ctx, superAdmin)
		require.NoError(t, err)
		require.Len(t, views, 4)

		require.Equal(t, adminURL.ID, views[0].ID)
		require.Equal(t, "admin@acme.com", views[0].CreatorEmail)
		require.Equal(t, "Acme", views[0].CompanyName)
		require.Equal(t, globexURL.ID, views[3].ID)
		require.Equal(t, "Globex", views[3].CompanyName)
	})

	t.Run("admin sees its whole company", func(t *testing.T) {
		views, err := svc.List(ctx, acmeAdmin)
		require.NoError(t, err)
		require.Len(t, views, 3)
		for _, v := range views {
			require.Equal(t, acme.ID, v.CompanyID)
		}
	})

	t.Run("member sees only its own rows", func(t *testing.T) {
		views, err := svc.List(ctx, acmeDev)
		require.NoError(t, err)
		require.Len(t, views, 2)
		require.Equal(t, devURL1.ID, views[0].ID)
		require.Equal(t, devURL2.ID, views[1].ID)
	})

	t.Run("user without a role gets an empty list, not an error", func(t *testing.T) {
		limbo := seedUser(t, st, "limbo@example.com", domain.RoleNone, nil)
		views, err := svc.List(ctx, limbo)
		require.NoError(t, err)
		require.Empty(t, views)
	})
}
