package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	return s
}

// blobStore is the surface both implementations share.
type blobStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)
}

func eachStore(t *testing.T, fn func(t *testing.T, s blobStore)) {
	t.Run("file", func(t *testing.T) { fn(t, setupTestStore(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewStore(root)
	require.NoError(t, err)

	info, err := os.Stat(s.Root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetMissingKey(t *testing.T) {
	eachStore(t, func(t *testing.T, s blobStore) {
		v, ok, err := s.Get("leaderboard")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})
}

func TestSetGetRemove(t *testing.T) {
	eachStore(t, func(t *testing.T, s blobStore) {
		require.NoError(t, s.Set("leaderboard", `[{"days":3}]`))

		v, ok, err := s.Get("leaderboard")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"days":3}]`, v)

		require.NoError(t, s.Set("leaderboard", `[]`))
		v, _, err = s.Get("leaderboard")
		require.NoError(t, err)
		assert.Equal(t, `[]`, v)

		require.NoError(t, s.Remove("leaderboard"))
		_, ok, err = s.Get("leaderboard")
		require.NoError(t, err)
		assert.False(t, ok)

		// Removing twice is fine
		assert.NoError(t, s.Remove("leaderboard"))
	})
}

func TestKeys(t *testing.T) {
	eachStore(t, func(t *testing.T, s blobStore) {
		require.NoError(t, s.Set("b", "2"))
		require.NoError(t, s.Set("a", "1"))

		keys, err := s.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, keys)
	})
}

func TestInvalidKeys(t *testing.T) {
	eachStore(t, func(t *testing.T, s blobStore) {
		for _, key := range []string{"", "../escape", `a\b`, ".hidden"} {
			assert.ErrorIs(t, s.Set(key, "x"), ErrInvalidKey, key)
			_, _, err := s.Get(key)
			assert.ErrorIs(t, err, ErrInvalidKey, key)
			assert.ErrorIs(t, s.Remove(key), ErrInvalidKey, key)
		}
	})
}

func TestFileStoreLayout(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Set("leaderboard", "[]"))

	assert.Equal(t, filepath.Join(s.Root, "leaderboard.json"), s.Path("leaderboard"))
	data, err := os.ReadFile(s.Path("leaderboard"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	// No temp files are left behind
	entries, err := os.ReadDir(s.Root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreIgnoresForeignFiles(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Root, "notes.txt"), []byte("hi"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(s.Root, "dir.json"), 0755))
	require.NoError(t, s.Set("leaderboard", "[]"))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"leaderboard"}, keys)
}

func TestFileStoreSharedBetweenInstances(t *testing.T) {
	dir := t.TempDir()
	a, err := NewStore(dir)
	require.NoError(t, err)
	b, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, a.Set("leaderboard", "[1]"))
	v, ok, err := b.Get("leaderboard")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1]", v)
}
