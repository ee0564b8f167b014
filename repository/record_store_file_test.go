package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrivaldo/code-challenge-backend/models"
)

func newTestStore(t *testing.T) (*FileRecordStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return NewFileRecordStore(path), path
}

func TestFileStore_LoadInitializesEmptyDocument(t *testing.T) {
	store, path := newTestStore(t)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), doc.Version)
	assert.Empty(t, doc.Users)
	assert.Empty(t, doc.Admins)

	// First load must not create the file.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Load(ctx)
	require.NoError(t, err)

	doc.Users = append(doc.Users, models.User{ID: "u1", Email: "a@x.com", Password: "hash"})
	require.NoError(t, store.Save(ctx, doc))
	assert.Equal(t, int64(1), doc.Version)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.Version)
	require.Len(t, loaded.Users, 1)
	assert.Equal(t, "a@x.com", loaded.Users[0].Email)
	assert.Equal(t, "hash", loaded.Users[0].Password)
}

func TestFileStore_StaleSaveRejected(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Load(ctx)
	require.NoError(t, err)
	second, err := store.Load(ctx)
	require.NoError(t, err)

	first.Users = append(first.Users, models.User{ID: "u1", Email: "a@x.com"})
	require.NoError(t, store.Save(ctx, first))

	second.Users = append(second.Users, models.User{ID: "u2", Email: "b@x.com"})
	err = store.Save(ctx, second)
	require.ErrorIs(t, err, ErrVersionConflict)

	// The losing writer must not have clobbered the winner.
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Users, 1)
	assert.Equal(t, "u1", loaded.Users[0].ID)
}

func TestFileStore_CorruptFileIsStorageUnavailable(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, doc))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}
