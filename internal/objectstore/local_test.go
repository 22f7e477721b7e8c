package objectstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/assetd/internal/config"
	"github.com/xxxsen/assetd/internal/objectstore"
)

func newLocalStore(t *testing.T) objectstore.Store {
	t.Helper()
	store, err := objectstore.New(config.ObjectStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)
	return store
}

func TestLocalRoundTrip(t *testing.T) {
	store := newLocalStore(t)
	body := []byte{0x00, 0x01, 0xff, 0x42}

	require.NoError(t, store.Put(context.Background(), "assets/abc-file.bin", body, "application/octet-stream"))
	got, err := store.Get(context.Background(), "assets/abc-file.bin")
	require.NoError(t, err)
	require.Equal(t, body, got)
}

func TestLocalCopyIsIndependent(t *testing.T) {
	store := newLocalStore(t)
	original := []byte("original")

	require.NoError(t, store.Put(context.Background(), "assets/src", original, ""))
	require.NoError(t, store.Copy(context.Background(), "assets/src", "versions/dst"))

	require.NoError(t, store.Put(context.Background(), "assets/src", []byte("changed"), ""))
	got, err := store.Get(context.Background(), "versions/dst")
	require.NoError(t, err)
	require.Equal(t, original, got)
}

func TestLocalRejectsBadKeys(t *testing.T) {
	store := newLocalStore(t)
	for _, key := range []string{"", "/abs", "a/../b", "..", `a\b`, "a//b"} {
		require.Error(t, store.Put(context.Background(), key, []byte("x"), ""), "key %q", key)
		_, err := store.Get(context.Background(), key)
		require.Error(t, err, "key %q", key)
	}
}

func TestLocalGetMissing(t *testing.T) {
	store := newLocalStore(t)
	_, err := store.Get(context.Background(), "assets/missing")
	require.Error(t, err)
}

func TestUnsupportedType(t *testing.T) {
	_, err := objectstore.New(config.ObjectStoreConfig{Type: "ftp"})
	require.Error(t, err)
}
