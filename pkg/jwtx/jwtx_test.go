package jwtx_test

import (
	"testing"
	"time"

	"github.com/fernwell/linklet/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	signer := jwtx.NewSigner("test-secret", "linklet", time.Minute)

	t.Run("round trips claims", func(t *testing.T) {
		raw, expiresAt, err := signer.Sign("user-123")
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)

		claims, err := signer.Verify(raw)
		require.NoError(t, err)
		require.Equal(t, "user-123", claims.Subject)
	})

	t.Run("rejects a foreign secret", func(t *testing.T) {
		other := jwtx.NewSigner("other-secret", "linklet", time.Minute)
		raw, _, err := other.Sign("user-123")
		require.NoError(t, err)

		_, err = signer.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		other := jwtx.NewSigner("test-secret", "someone-else", time.Minute)
		raw, _, err := other.Sign("user-123")
		require.NoError(t, err)

		_, err = signer.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := jwtx.NewSigner("test-secret", "linklet", -time.Minute)
		raw, _, err := expired.Sign("user-123")
		require.NoError(t, err)

		_, err = signer.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrTokenExpired)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := signer.Verify("not.a.token")
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})
}
