package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/assetd/internal/model"
	"github.com/xxxsen/assetd/internal/pkg/dbutil"
	appErr "github.com/xxxsen/assetd/internal/pkg/errors"
)

var versionColumns = []string{"id", "asset_id", "object_storage_key", "etag", "ctime"}

type VersionRepo struct {
	db *sql.DB
}

func NewVersionRepo(db *sql.DB) *VersionRepo {
	return &VersionRepo{db: db}
}

func (r *VersionRepo) Create(ctx context.Context, version *model.AssetVersion) error {
	sqlStr := `
		INSERT INTO asset_versions (id, asset_id, object_storage_key, etag, ctime)
		VALUES (?, ?, ?, ?, ?)
	`
	args := []interface{}{
		version.ID,
		version.AssetID,
		version.ObjectStorageKey,
		version.ETag,
		version.Ctime,
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *VersionRepo) GetByID(ctx context.Context, versionID string) (*model.AssetVersion, error) {
	sqlStr, args, err := builder.BuildSelect("asset_versions", map[string]interface{}{"id": versionID}, versionColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var item model.AssetVersion
	if err := rows.Scan(&item.ID, &item.AssetID, &item.ObjectStorageKey, &item.ETag, &item.Ctime); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *VersionRepo) ListByAsset(ctx context.Context, assetID string) ([]model.AssetVersion, error) {
	sqlStr, args, err := builder.BuildSelect("asset_versions",
		map[string]interface{}{"asset_id": assetID, "_orderby": "ctime desc"}, versionColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.AssetVersion, 0)
	for rows.Next() {
		var item model.AssetVersion
		if err := rows.Scan(&item.ID, &item.AssetID, &item.ObjectStorageKey, &item.ETag, &item.Ctime); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
