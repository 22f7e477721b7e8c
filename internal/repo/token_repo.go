package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/assetd/internal/model"
	"github.com/xxxsen/assetd/internal/pkg/dbutil"
	appErr "github.com/xxxsen/assetd/internal/pkg/errors"
)

var tokenColumns = []string{"token", "asset_id", "expires_at", "ctime"}

type TokenRepo struct {
	db *sql.DB
}

func NewTokenRepo(db *sql.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) Create(ctx context.Context, token *model.AccessToken) error {
	sqlStr := `
		INSERT INTO access_tokens (token, asset_id, expires_at, ctime)
		VALUES (?, ?, ?, ?)
	`
	args := []interface{}{
		token.Token,
		token.AssetID,
		token.ExpiresAt,
		token.Ctime,
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *TokenRepo) GetByToken(ctx context.Context, tokenValue string) (*model.AccessToken, error) {
	sqlStr, args, err := builder.BuildSelect("access_tokens", map[string]interface{}{"token": tokenValue}, tokenColumns)
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
	var item model.AccessToken
	if err := rows.Scan(&item.Token, &item.AssetID, &item.ExpiresAt, &item.Ctime); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteExpired removes tokens whose expiry has passed. Hygiene only:
// validity is always re-checked against expires_at at request time.
func (r *TokenRepo) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	sqlStr, args, err := builder.BuildDelete("access_tokens", map[string]interface{}{"expires_at <=": now})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
