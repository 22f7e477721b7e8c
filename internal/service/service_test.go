package service_test

import (
	"context"
	"sync"

	"github.com/xxxsen/assetd/internal/model"
	appErr "github.com/xxxsen/assetd/internal/pkg/errors"
)

// In-memory repositories backing the service tests; postgres-specific
// behavior is covered by the repo tests.

type memAssetRepo struct {
	mu    sync.Mutex
	items map[string]model.Asset
}

func newMemAssetRepo() *memAssetRepo {
	return &memAssetRepo{items: make(map[string]model.Asset)}
}

func (r *memAssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[asset.ID] = *asset
	return nil
}

func (r *memAssetRepo) GetByID(ctx context.Context, assetID string) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[assetID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &item, nil
}

func (r *memAssetRepo) UpdateCurrentVersion(ctx context.Context, assetID, versionID string, mtime int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[assetID]
	if !ok {
		return appErr.ErrNotFound
	}
	item.CurrentVersionID = versionID
	item.Mtime = mtime
	r.items[assetID] = item
	return nil
}

type memVersionRepo struct {
	mu    sync.Mutex
	items map[string]model.AssetVersion
	order []string
}

func newMemVersionRepo() *memVersionRepo {
	return &memVersionRepo{items: make(map[string]model.AssetVersion)}
}

func (r *memVersionRepo) Create(ctx context.Context, version *model.AssetVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[version.ID] = *version
	r.order = append(r.order, version.ID)
	return nil
}

func (r *memVersionRepo) GetByID(ctx context.Context, versionID string) (*model.AssetVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[versionID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &item, nil
}

func (r *memVersionRepo) ListByAsset(ctx context.Context, assetID string) ([]model.AssetVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]model.AssetVersion, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		item := r.items[r.order[i]]
		if item.AssetID == assetID {
			items = append(items, item)
		}
	}
	return items, nil
}

type memTokenRepo struct {
	mu    sync.Mutex
	items map[string]model.AccessToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{items: make(map[string]model.AccessToken)}
}

func (r *memTokenRepo) Create(ctx context.Context, token *model.AccessToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[token.Token] = *token
	return nil
}

func (r *memTokenRepo) GetByToken(ctx context.Context, tokenValue string) (*model.AccessToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[tokenValue]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &item, nil
}
