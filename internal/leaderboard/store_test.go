package leaderboard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndTop(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "ada", 1200, 3, 22)
	require.NoError(t, err)
	_, err = s.Add(ctx, "grace", 4800, 6, 51)
	require.NoError(t, err)
	_, err = s.Add(ctx, "linus", 300, 1, 4)
	require.NoError(t, err)

	top, err := s.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "grace", top[0].Player)
	assert.Equal(t, 4800, top[0].Score)
	assert.Equal(t, "ada", top[1].Player)
}

func TestTopEmpty(t *testing.T) {
	s := openTestStore(t)
	top, err := s.Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestAddReturnsEntry(t *testing.T) {
	s := openTestStore(t)
	e, err := s.Add(context.Background(), "ada", 100, 1, 1)
	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, [16]byte(e.ID))
	assert.Equal(t, "ada", e.Player)
	assert.False(t, e.CreatedAt.IsZero())
}
