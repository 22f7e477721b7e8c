package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/assetd/internal/model"
	"github.com/xxxsen/assetd/internal/pkg/dbutil"
	appErr "github.com/xxxsen/assetd/internal/pkg/errors"
)

var assetColumns = []string{
	"id", "object_storage_key", "filename", "mime_type", "size_bytes",
	"etag", "is_private", "current_version_id", "ctime", "mtime",
}

type AssetRepo struct {
	db *sql.DB
}

func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

func (r *AssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	sqlStr := `
		INSERT INTO assets (id, object_storage_key, filename, mime_type, size_bytes, etag, is_private, current_version_id, ctime, mtime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	args := []interface{}{
		asset.ID,
		asset.ObjectStorageKey,
		asset.Filename,
		asset.MimeType,
		asset.SizeBytes,
		asset.ETag,
		asset.IsPrivate,
		nullable(asset.CurrentVersionID),
		asset.Ctime,
		asset.Mtime,
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *AssetRepo) GetByID(ctx context.Context, assetID string) (*model.Asset, error) {
	sqlStr, args, err := builder.BuildSelect("assets", map[string]interface{}{"id": assetID}, assetColumns)
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
	return scanAsset(rows)
}

// UpdateCurrentVersion moves the current-version pointer. It is the second
// step of publish; the version row must already exist.
func (r *AssetRepo) UpdateCurrentVersion(ctx context.Context, assetID, versionID string, mtime int64) error {
	sqlStr, args, err := builder.BuildUpdate("assets",
		map[string]interface{}{"id": assetID},
		map[string]interface{}{"current_version_id": versionID, "mtime": mtime},
	)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func scanAsset(rows *sql.Rows) (*model.Asset, error) {
	var item model.Asset
	var currentVersion sql.NullString
	if err := rows.Scan(&item.ID, &item.ObjectStorageKey, &item.Filename, &item.MimeType,
		&item.SizeBytes, &item.ETag, &item.IsPrivate, &currentVersion, &item.Ctime, &item.Mtime); err != nil {
		return nil, err
	}
	item.CurrentVersionID = currentVersion.String
	return &item, nil
}

func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
