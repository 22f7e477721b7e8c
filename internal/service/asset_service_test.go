package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/assetd/internal/config"
	"github.com/xxxsen/assetd/internal/objectstore"
	appErr "github.com/xxxsen/assetd/internal/pkg/errors"
	"github.com/xxxsen/assetd/internal/pkg/fingerprint"
	"github.com/xxxsen/assetd/internal/service"
)

func newTestStore(t *testing.T) objectstore.Store {
	t.Helper()
	store, err := objectstore.New(config.ObjectStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)
	return store
}

func newLifecycle(t *testing.T) (*service.AssetService, *memAssetRepo, *memVersionRepo, *memTokenRepo, objectstore.Store) {
	t.Helper()
	assets := newMemAssetRepo()
	versions := newMemVersionRepo()
	tokens := newMemTokenRepo()
	store := newTestStore(t)
	svc := service.NewAssetService(assets, versions, tokens, store, 0)
	return svc, assets, versions, tokens, store
}

func TestUploadStoresBytesAndMetadata(t *testing.T) {
	svc, assets, _, _, store := newLifecycle(t)
	content := []byte("hello asset")

	asset, err := svc.Upload(context.Background(), content, "hello.txt", "text/plain")
	require.NoError(t, err)
	require.Equal(t, fingerprint.Sum(content), asset.ETag)
	require.True(t, strings.HasPrefix(asset.ObjectStorageKey, "assets/"))
	require.Equal(t, int64(len(content)), asset.SizeBytes)
	require.Empty(t, asset.CurrentVersionID)
	require.False(t, asset.IsPrivate)

	stored, err := store.Get(context.Background(), asset.ObjectStorageKey)
	require.NoError(t, err)
	require.Equal(t, content, stored)

	persisted, err := assets.GetByID(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Equal(t, asset.ETag, persisted.ETag)
	require.Equal(t, asset.ObjectStorageKey, persisted.ObjectStorageKey)
}

func TestUploadIdenticalContentDistinctAssets(t *testing.T) {
	svc, _, _, _, _ := newLifecycle(t)
	content := []byte("same bytes")

	first, err := svc.Upload(context.Background(), content, "a.bin", "application/octet-stream")
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), content, "a.bin", "application/octet-stream")
	require.NoError(t, err)

	require.Equal(t, first.ETag, second.ETag)
	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, first.ObjectStorageKey, second.ObjectStorageKey)
}

type failingStore struct {
	objectstore.Store
}

func (failingStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	return errors.New("backend down")
}

func TestUploadStorageFailureLeavesNoMetadata(t *testing.T) {
	assets := newMemAssetRepo()
	svc := service.NewAssetService(assets, newMemVersionRepo(), newMemTokenRepo(), failingStore{}, 0)

	_, err := svc.Upload(context.Background(), []byte("x"), "x.bin", "")
	require.ErrorIs(t, err, appErr.ErrStorageWrite)
	require.Empty(t, assets.items)
}

func TestPublishSnapshotsAndMovesPointer(t *testing.T) {
	svc, assets, _, _, store := newLifecycle(t)
	content := []byte("v1 bytes")

	asset, err := svc.Upload(context.Background(), content, "doc.pdf", "application/pdf")
	require.NoError(t, err)

	version, err := svc.Publish(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Equal(t, asset.ID, version.AssetID)
	require.Equal(t, asset.ETag, version.ETag)
	require.True(t, strings.HasPrefix(version.ObjectStorageKey, "versions/"))
	require.NotEqual(t, asset.ObjectStorageKey, version.ObjectStorageKey)

	updated, err := assets.GetByID(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Equal(t, version.ID, updated.CurrentVersionID)

	// Overwriting the live object must never alter the published snapshot.
	require.NoError(t, store.Put(context.Background(), asset.ObjectStorageKey, []byte("mutated"), "application/pdf"))
	snapshot, err := store.Get(context.Background(), version.ObjectStorageKey)
	require.NoError(t, err)
	require.Equal(t, content, snapshot)
}

func TestPublishMissingAsset(t *testing.T) {
	svc, _, _, _, _ := newLifecycle(t)
	_, err := svc.Publish(context.Background(), "no-such-asset")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestRepublishProducesIndependentVersions(t *testing.T) {
	svc, assets, _, _, _ := newLifecycle(t)

	asset, err := svc.Upload(context.Background(), []byte("bytes"), "f", "text/plain")
	require.NoError(t, err)

	v1, err := svc.Publish(context.Background(), asset.ID)
	require.NoError(t, err)
	v2, err := svc.Publish(context.Background(), asset.ID)
	require.NoError(t, err)
	require.NotEqual(t, v1.ID, v2.ID)
	require.NotEqual(t, v1.ObjectStorageKey, v2.ObjectStorageKey)

	updated, err := assets.GetByID(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Equal(t, v2.ID, updated.CurrentVersionID)

	versions, err := svc.ListVersions(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.Equal(t, v2.ID, versions[0].ID)
}

func TestIssueTokenDefaultTTL(t *testing.T) {
	svc, _, _, tokens, _ := newLifecycle(t)

	asset, err := svc.Upload(context.Background(), []byte("secret"), "s", "text/plain")
	require.NoError(t, err)

	before := time.Now().Unix()
	accessToken, err := svc.IssueToken(context.Background(), asset.ID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken.Token)
	require.Equal(t, asset.ID, accessToken.AssetID)
	require.GreaterOrEqual(t, accessToken.ExpiresAt, before+int64((10*time.Minute)/time.Second))

	persisted, err := tokens.GetByToken(context.Background(), accessToken.Token)
	require.NoError(t, err)
	require.Equal(t, accessToken.ExpiresAt, persisted.ExpiresAt)
}

func TestIssueTokenMissingAsset(t *testing.T) {
	svc, _, _, _, _ := newLifecycle(t)
	_, err := svc.IssueToken(context.Background(), "missing", time.Minute)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
