package idx_test

import (
	"testing"
	"time"

	"github.com/fernwell/linklet/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("generates unique sortable ids", func(t *testing.T) {
		a := idx.New()
		b := idx.New()
		require.NotEqual(t, a, b)
		require.Less(t, a.String(), b.String())
	})

	t.Run("round trips through Parse", func(t *testing.T) {
		id := idx.New()
		parsed, err := idx.Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := idx.Parse("")
		require.ErrorIs(t, err, idx.ErrInvalid)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := idx.Parse("not-a-ulid")
		require.ErrorIs(t, err, idx.ErrInvalid)
	})
}

func TestTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)
	require.WithinDuration(t, at, id.Time(), time.Millisecond)

	require.True(t, idx.Zero.Time().IsZero())
}
