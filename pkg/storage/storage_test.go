package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStorage_WriteAndReadJSON(t *testing.T) {
	store, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	path := store.RootFile("record.json")
	assert.False(t, store.Exists(path))

	in := testRecord{Name: "pikachu", Count: 3}
	require.NoError(t, store.WriteJSON(path, in))
	assert.True(t, store.Exists(path))

	var out testRecord
	require.NoError(t, store.ReadJSON(path, &out))
	assert.Equal(t, in, out)

	// No temp file left behind
	assert.False(t, store.Exists(path+".tmp"))
}

func TestStorage_ReadMissingFile(t *testing.T) {
	store, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	var out testRecord
	err = store.ReadJSON(store.RootFile("missing.json"), &out)
	assert.Error(t, err)
}

func TestStorage_UserFiles(t *testing.T) {
	base := t.TempDir()
	store, err := NewStorage(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "user-1", "favorites.json"), store.UserFile("user-1", "favorites.json"))
	assert.Equal(t, filepath.Join(base, "users.json"), store.RootFile("users.json"))

	require.NoError(t, store.EnsureUserDir("user-1"))
	require.NoError(t, store.WriteJSON(store.UserFile("user-1", "favorites.json"), []int{25}))
	assert.True(t, store.Exists(store.UserFile("user-1", "favorites.json")))
}

func TestStorage_OverwriteIsAtomicReplace(t *testing.T) {
	store, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	path := store.RootFile("record.json")
	require.NoError(t, store.WriteJSON(path, testRecord{Name: "old", Count: 1}))
	require.NoError(t, store.WriteJSON(path, testRecord{Name: "new", Count: 2}))

	var out testRecord
	require.NoError(t, store.ReadJSON(path, &out))
	assert.Equal(t, testRecord{Name: "new", Count: 2}, out)
}
