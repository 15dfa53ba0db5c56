package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alegarazh/internal/app/model"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)
	return store
}

func TestFileStore_Empty(t *testing.T) {
	store := newTestStore(t)

	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveToken("t1"))
	assert.Equal(t, "t1", store.Token())

	user := &model.User{ID: "1", Nickname: "Garage42", Login: "a@b.com"}
	require.NoError(t, store.SaveUser(user))

	// Saving one half keeps the other intact.
	assert.Equal(t, "t1", store.Token())
	got := store.User()
	require.NotNil(t, got)
	assert.Equal(t, "Garage42", got.Nickname)
}

func TestFileStore_Clear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveToken("t1"))
	require.NoError(t, store.SaveUser(&model.User{ID: "1"}))

	require.NoError(t, store.Clear())

	// Token and snapshot go away together.
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())

	// Clearing an already-clear store is fine.
	require.NoError(t, store.Clear())
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())

	// Writing over the corrupt file works.
	require.NoError(t, store.SaveToken("t2"))
	assert.Equal(t, "t2", store.Token())
}
