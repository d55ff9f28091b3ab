package service

import (
	"context"
	"testing"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/store/drivers/sqlite"
	"github.com/fernwell/linklet/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedCompany(t *testing.T, st *sqlite.Store, name string) domain.Company {
	t.Helper()

	company := domain.Company{ID: idx.New().String(), Name: name}
	require.NoError(t, st.Companies().CreateCompany(context.Background(), company))
	return company
}

func seedUser(t *testing.T, st *sqlite.Store, email string, role domain.Role, companyID *string) domain.User {
	t.Helper()

	user := domain.User{
		ID:           idx.New().String(),
		Name:         email,
		Email:        email,
		PasswordHash: "hash",
		CompanyID:    companyID,
		Role:         role,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}
