package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) map[string]KeyValueStore {
	t.Helper()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "storage.json"))
	require.NoError(t, err)

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "storage.db"))
	require.NoError(t, err)

	stores := map[string]KeyValueStore{
		"memory": NewMemoryStore(),
		"file":   fileStore,
		"sqlite": sqliteStore,
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisStore := NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), 0, 0)
		require.NoError(t, redisStore.RemoveItem(context.Background(), "test-key"))
		stores["redis"] = redisStore
	}

	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func putItem(ctx context.Context, store KeyValueStore, key, value string) error {
	return store.Update(ctx, key, func(string, bool) (string, error) { return value, nil })
}

func TestKeyValueStore_ItemLifecycle(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Ping(ctx))

			_, found, err := store.GetItem(ctx, "test-key")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, putItem(ctx, store, "test-key", `["a"]`))
			value, found, err := store.GetItem(ctx, "test-key")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `["a"]`, value)

			require.NoError(t, putItem(ctx, store, "test-key", `["b"]`))
			value, _, err = store.GetItem(ctx, "test-key")
			require.NoError(t, err)
			assert.Equal(t, `["b"]`, value)

			require.NoError(t, store.RemoveItem(ctx, "test-key"))
			_, found, err = store.GetItem(ctx, "test-key")
			require.NoError(t, err)
			assert.False(t, found)

			// Removing a missing key is not an error.
			require.NoError(t, store.RemoveItem(ctx, "test-key"))
		})
	}
}

func TestKeyValueStore_Update(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Update(ctx, "test-key", func(current string, found bool) (string, error) {
				assert.False(t, found)
				assert.Empty(t, current)
				return "1", nil
			})
			require.NoError(t, err)

			err = store.Update(ctx, "test-key", func(current string, found bool) (string, error) {
				assert.True(t, found)
				return current + "2", nil
			})
			require.NoError(t, err)

			err = store.Update(ctx, "test-key", func(string, bool) (string, error) {
				return "", boom
			})
			assert.ErrorIs(t, err, boom)

			value, _, err := store.GetItem(ctx, "test-key")
			require.NoError(t, err)
			assert.Equal(t, "12", value, "a failed update must leave the value untouched")

			require.NoError(t, store.RemoveItem(ctx, "test-key"))
		})
	}
}

func TestKeyValueStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	const writers = 20

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := store.Update(ctx, "counter", func(current string, found bool) (string, error) {
						n := 0
						if found {
							n, _ = strconv.Atoi(current)
						}
						return strconv.Itoa(n + 1), nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			value, _, err := store.GetItem(ctx, "counter")
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(writers), value)
			require.NoError(t, store.RemoveItem(ctx, "counter"))
		})
	}
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	store, err := Initialize(ctx, Options{Driver: ""})
	require.NoError(t, err)
	assert.Equal(t, "memory", store.Driver())

	store, err = Initialize(ctx, Options{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", store.Driver())
	require.NoError(t, store.Close())

	_, err = Initialize(ctx, Options{Driver: "file"})
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = Initialize(ctx, Options{Driver: "etcd"})
	assert.Error(t, err)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = store.GetItem(context.Background(), "k")
	assert.Error(t, err)
}
