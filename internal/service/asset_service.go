package service

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/assetd/internal/model"
	"github.com/xxxsen/assetd/internal/objectstore"
	appErr "github.com/xxxsen/assetd/internal/pkg/errors"
	"github.com/xxxsen/assetd/internal/pkg/fingerprint"
	"github.com/xxxsen/assetd/internal/pkg/timeutil"
	"github.com/xxxsen/assetd/internal/pkg/token"
)

const (
	assetKeyPrefix   = "assets/"
	versionKeyPrefix = "versions/"

	DefaultTokenTTL = 10 * time.Minute
)

// AssetService owns every write to asset metadata: upload, publish and token
// issuance. Delivery only ever reads.
type AssetService struct {
	assets   AssetRepo
	versions VersionRepo
	tokens   TokenRepo
	store    objectstore.Store
	tokenTTL time.Duration
}

func NewAssetService(assets AssetRepo, versions VersionRepo, tokens TokenRepo, store objectstore.Store, tokenTTL time.Duration) *AssetService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AssetService{
		assets:   assets,
		versions: versions,
		tokens:   tokens,
		store:    store,
		tokenTTL: tokenTTL,
	}
}

// Upload writes the bytes to the object store first and records metadata
// second. A failed insert leaves an orphaned blob, which is harmless; the
// reverse order could leave a row pointing at nothing.
func (s *AssetService) Upload(ctx context.Context, content []byte, filename, mimeType string) (*model.Asset, error) {
	if mimeType == "" {
		mimeType = http.DetectContentType(content)
	}
	id := newID()
	key := buildAssetKey(id, filename)
	if err := s.store.Put(ctx, key, content, mimeType); err != nil {
		logutil.GetLogger(ctx).Error("object write failed", zap.String("key", key), zap.Error(err))
		return nil, appErr.ErrStorageWrite
	}
	now := timeutil.NowUnix()
	asset := &model.Asset{
		ID:               id,
		ObjectStorageKey: key,
		Filename:         filename,
		MimeType:         mimeType,
		SizeBytes:        int64(len(content)),
		ETag:             fingerprint.Sum(content),
		IsPrivate:        false,
		Ctime:            now,
		Mtime:            now,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		logutil.GetLogger(ctx).Error("asset insert failed, blob orphaned",
			zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return asset, nil
}

// Publish snapshots the asset's current bytes into an immutable version.
// The copy is server-side, so the snapshot is byte-identical to the live
// object at copy time. The version row is persisted before the pointer moves:
// a crash in between orphans a harmless row instead of dangling the pointer.
func (s *AssetService) Publish(ctx context.Context, assetID string) (*model.AssetVersion, error) {
	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	versionID := newID()
	versionKey := versionKeyPrefix + versionID
	if err := s.store.Copy(ctx, asset.ObjectStorageKey, versionKey); err != nil {
		logutil.GetLogger(ctx).Error("version copy failed",
			zap.String("src", asset.ObjectStorageKey), zap.String("dst", versionKey), zap.Error(err))
		return nil, appErr.ErrStorageWrite
	}
	version := &model.AssetVersion{
		ID:               versionID,
		AssetID:          asset.ID,
		ObjectStorageKey: versionKey,
		ETag:             asset.ETag,
		Ctime:            timeutil.NowUnix(),
	}
	if err := s.versions.Create(ctx, version); err != nil {
		return nil, err
	}
	if err := s.assets.UpdateCurrentVersion(ctx, asset.ID, version.ID, timeutil.NowUnix()); err != nil {
		return nil, err
	}
	return version, nil
}

// IssueToken mints a bearer token for private access to the asset. Zero ttl
// means the service default.
func (s *AssetService) IssueToken(ctx context.Context, assetID string, ttl time.Duration) (*model.AccessToken, error) {
	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = s.tokenTTL
	}
	now := timeutil.NowUnix()
	accessToken := &model.AccessToken{
		Token:     token.New(),
		AssetID:   assetID,
		ExpiresAt: now + int64(ttl/time.Second),
		Ctime:     now,
	}
	if err := s.tokens.Create(ctx, accessToken); err != nil {
		return nil, err
	}
	return accessToken, nil
}

func (s *AssetService) ListVersions(ctx context.Context, assetID string) ([]model.AssetVersion, error) {
	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		return nil, err
	}
	return s.versions.ListByAsset(ctx, assetID)
}

func buildAssetKey(id, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return assetKeyPrefix + id + "-" + base
}
