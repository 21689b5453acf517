package storage_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/carrito/internal/port"
)

// runCartStorageTests exercises the CartStorage contract shared by all
// backends. Keys are random so backends reused across tests never collide.
func runCartStorageTests(t *testing.T, store port.CartStorage) {
	t.Helper()

	t.Run("get absent key", func(t *testing.T) {
		_, ok, err := store.Get(t.Context(), gofakeit.UUID())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		key := gofakeit.UUID()
		value := gofakeit.Sentence(8)

		require.NoError(t, store.Set(t.Context(), key, value))

		got, ok, err := store.Get(t.Context(), key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, value, got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		key := gofakeit.UUID()

		require.NoError(t, store.Set(t.Context(), key, "first"))
		require.NoError(t, store.Set(t.Context(), key, "second"))

		got, ok, err := store.Get(t.Context(), key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "second", got)
	})

	t.Run("delete", func(t *testing.T) {
		key := gofakeit.UUID()

		require.NoError(t, store.Set(t.Context(), key, "value"))
		require.NoError(t, store.Delete(t.Context(), key))

		_, ok, err := store.Get(t.Context(), key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete absent key is a no-op", func(t *testing.T) {
		require.NoError(t, store.Delete(t.Context(), gofakeit.UUID()))
	})

	t.Run("empty key rejected", func(t *testing.T) {
		_, _, err := store.Get(t.Context(), "")
		require.ErrorContains(t, err, "key is empty")

		err = store.Set(t.Context(), "", "value")
		require.ErrorContains(t, err, "key is empty")

		err = store.Delete(t.Context(), "")
		require.ErrorContains(t, err, "key is empty")
	})
}
