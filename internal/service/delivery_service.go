package service

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/assetd/internal/model"
	"github.com/xxxsen/assetd/internal/objectstore"
	appErr "github.com/xxxsen/assetd/internal/pkg/errors"
	"github.com/xxxsen/assetd/internal/pkg/timeutil"
)

// Cache policies for the three access modes. A CDN may hold a mutable asset
// for an hour while browsers revalidate after a minute; published versions
// never change so they cache for a year without revalidation; private content
// must be refetched on every request because the token is the only gate.
const (
	CacheControlMutable   = "public, s-maxage=3600, max-age=60"
	CacheControlImmutable = "public, max-age=31536000, immutable"
	CacheControlPrivate   = "private, no-store, no-cache, must-revalidate"
)

const (
	versionCacheSize    = 1024
	defaultFetchTimeout = 30 * time.Second
)

// Delivery is a resolved response plan: which blob to serve and under which
// headers. The body is fetched separately so HEAD never touches the store.
type Delivery struct {
	Key          string
	ContentType  string
	SizeBytes    int64
	ETag         string
	LastModified string
	CacheControl string
}

type DeliveryService struct {
	assets       AssetRepo
	versions     VersionRepo
	tokens       TokenRepo
	store        objectstore.Store
	versionCache *lru.Cache[string, *model.AssetVersion]
	fetchTimeout time.Duration
}

func NewDeliveryService(assets AssetRepo, versions VersionRepo, tokens TokenRepo, store objectstore.Store) *DeliveryService {
	cache, _ := lru.New[string, *model.AssetVersion](versionCacheSize)
	return &DeliveryService{
		assets:       assets,
		versions:     versions,
		tokens:       tokens,
		store:        store,
		versionCache: cache,
		fetchTimeout: defaultFetchTimeout,
	}
}

// Mutable resolves the live representation of an asset. The ETag is the
// fingerprint of the current bytes and changes whenever they do.
func (s *DeliveryService) Mutable(ctx context.Context, assetID string) (*Delivery, error) {
	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return &Delivery{
		Key:          asset.ObjectStorageKey,
		ContentType:  asset.MimeType,
		SizeBytes:    asset.SizeBytes,
		ETag:         asset.ETag,
		LastModified: timeutil.HTTPTime(asset.Mtime),
		CacheControl: CacheControlMutable,
	}, nil
}

// Version resolves a published snapshot. Version rows are immutable, so a
// hit in the in-process LRU is always current. The owning asset is still
// loaded for its mime type.
func (s *DeliveryService) Version(ctx context.Context, versionID string) (*Delivery, error) {
	version, ok := s.versionCache.Get(versionID)
	if !ok {
		loaded, err := s.versions.GetByID(ctx, versionID)
		if err != nil {
			return nil, err
		}
		s.versionCache.Add(versionID, loaded)
		version = loaded
	}
	asset, err := s.assets.GetByID(ctx, version.AssetID)
	if err != nil {
		return nil, err
	}
	return &Delivery{
		Key:          version.ObjectStorageKey,
		ContentType:  asset.MimeType,
		ETag:         version.ETag,
		CacheControl: CacheControlImmutable,
	}, nil
}

// Private resolves token-gated access. Unknown tokens are unauthorized,
// expired ones forbidden; the boundary is strict, a token is dead the
// instant now reaches expires_at.
func (s *DeliveryService) Private(ctx context.Context, tokenValue string) (*Delivery, error) {
	accessToken, err := s.tokens.GetByToken(ctx, tokenValue)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrUnauthorized
		}
		return nil, err
	}
	if timeutil.NowUnix() >= accessToken.ExpiresAt {
		return nil, appErr.ErrForbidden
	}
	asset, err := s.assets.GetByID(ctx, accessToken.AssetID)
	if err != nil {
		return nil, err
	}
	return &Delivery{
		Key:          asset.ObjectStorageKey,
		ContentType:  asset.MimeType,
		SizeBytes:    asset.SizeBytes,
		CacheControl: CacheControlPrivate,
	}, nil
}

// Fetch reads the blob for a resolved delivery. The read inherits the
// request deadline and is additionally capped, since the object store is the
// one slow collaborator on this path.
func (s *DeliveryService) Fetch(ctx context.Context, d *Delivery) ([]byte, error) {
	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	body, err := s.store.Get(fetchCtx, d.Key)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			logutil.GetLogger(ctx).Error("object fetch timed out", zap.String("key", d.Key), zap.Error(err))
			return nil, appErr.ErrStorageUnavailable
		}
		logutil.GetLogger(ctx).Error("object fetch failed", zap.String("key", d.Key), zap.Error(err))
		return nil, appErr.ErrStorageRead
	}
	return body, nil
}
