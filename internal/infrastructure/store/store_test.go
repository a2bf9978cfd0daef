package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sangkips/retail-pos/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseBlobStore(t *testing.T, s BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "database")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, s.Put(ctx, "database", []byte(`{"v":1}`)))
	require.NoError(t, s.Put(ctx, "database", []byte(`{"v":2}`)))
	require.NoError(t, s.Put(ctx, "settings", []byte(`{}`)))

	body, err := s.Get(ctx, "database")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(body))

	// a long sales history is far beyond 64 KiB
	large := []byte(`{"sales":"` + strings.Repeat("x", 256<<10) + `"}`)
	require.NoError(t, s.Put(ctx, "database", large))
	body, err = s.Get(ctx, "database")
	require.NoError(t, err)
	assert.JSONEq(t, string(large), string(body))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseBlobStore(t, s)

	t.Run("returned bytes are a copy", func(t *testing.T) {
		body, err := s.Get(context.Background(), "database")
		require.NoError(t, err)
		body[0] = 'x'

		again, err := s.Get(context.Background(), "database")
		require.NoError(t, err)
		assert.Equal(t, byte('{'), again[0])
	})
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	exerciseBlobStore(t, s)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"database.json", "settings.json"}, names, "no temp files are left behind")

	t.Run("json is indented on disk", func(t *testing.T) {
		require.NoError(t, s.Put(context.Background(), "settings", []byte(`{"store_name":"HIJRAH CELL"}`)))
		raw, err := os.ReadFile(filepath.Join(dir, "settings.json"))
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"store_name\": \"HIJRAH CELL\"\n}", string(raw))
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, closeFn, err := Open(ctx, &config.Config{Store: config.StoreConfig{Driver: DriverMemory}})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &MemoryStore{}, s)
	})

	t.Run("file", func(t *testing.T) {
		s, closeFn, err := Open(ctx, &config.Config{Store: config.StoreConfig{Driver: DriverFile, DataDir: t.TempDir()}})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &FileStore{}, s)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := Open(ctx, &config.Config{Store: config.StoreConfig{Driver: "etcd"}})
		assert.ErrorContains(t, err, "unknown driver")
	})
}
