package service

import (
	"context"

	"github.com/xxxsen/assetd/internal/model"
)

// Consumer-side views of the repositories; satisfied by the concrete types
// in internal/repo and by in-memory fakes in tests.

type AssetRepo interface {
	Create(ctx context.Context, asset *model.Asset) error
	GetByID(ctx context.Context, assetID string) (*model.Asset, error)
	UpdateCurrentVersion(ctx context.Context, assetID, versionID string, mtime int64) error
}

type VersionRepo interface {
	Create(ctx context.Context, version *model.AssetVersion) error
	GetByID(ctx context.Context, versionID string) (*model.AssetVersion, error)
	ListByAsset(ctx context.Context, assetID string) ([]model.AssetVersion, error)
}

type TokenRepo interface {
	Create(ctx context.Context, token *model.AccessToken) error
	GetByToken(ctx context.Context, tokenValue string) (*model.AccessToken, error)
}
