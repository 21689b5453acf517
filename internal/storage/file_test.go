package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/carrito/internal/storage"
)

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carrito.json")

	store, err := storage.NewFile(path)
	require.NoError(t, err)

	runCartStorageTests(t, store)
}

func TestFileStorageDurability(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carrito.json")

	store, err := storage.NewFile(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(t.Context(), "carrito", `[{"id":1}]`))

	// A second instance over the same path sees the value, the way a
	// reloaded page sees localStorage.
	reopened, err := storage.NewFile(path)
	require.NoError(t, err)

	got, ok, err := reopened.Get(t.Context(), "carrito")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, got)
}

func TestFileStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carrito.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	store, err := storage.NewFile(path)
	require.NoError(t, err)

	_, _, err = store.Get(t.Context(), "carrito")
	require.Error(t, err)
}

func TestMemoryStorage(t *testing.T) {
	runCartStorageTests(t, storage.NewMemory())
}

func TestNewFileValidation(t *testing.T) {
	_, err := storage.NewFile("")
	require.ErrorContains(t, err, "path is empty")
}
