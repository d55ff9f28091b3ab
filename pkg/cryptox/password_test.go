package cryptox_test

import (
	"strings"
	"testing"

	"github.com/fernwell/linklet/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("produces PHC-format argon2id hashes", func(t *testing.T) {
		hash, err := cryptox.HashPassword("secret1")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
		require.NotContains(t, hash, "secret1")
	})

	t.Run("salts every hash", func(t *testing.T) {
		a, err := cryptox.HashPassword("secret1")
		require.NoError(t, err)
		b, err := cryptox.HashPassword("secret1")
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashPassword("secret1")
	require.NoError(t, err)

	t.Run("accepts the original password", func(t *testing.T) {
		require.NoError(t, cryptox.VerifyPassword("secret1", hash))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		err := cryptox.VerifyPassword("wrong", hash)
		require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
	})

	t.Run("rejects malformed hashes", func(t *testing.T) {
		require.Error(t, cryptox.VerifyPassword("secret1", "not-a-hash"))
		require.Error(t, cryptox.VerifyPassword("secret1", "$bcrypt$v=19$m=1,t=1,p=1$abc$def"))
	})
}
