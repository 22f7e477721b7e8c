package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/assetd/internal/pkg/timeutil"
	"github.com/xxxsen/assetd/internal/repo"
)

// TokenCleanupJob purges access tokens whose expiry has passed. Expired
// tokens are already rejected at request time; this only reclaims rows.
type TokenCleanupJob struct {
	tokens *repo.TokenRepo
}

func NewTokenCleanupJob(tokens *repo.TokenRepo) *TokenCleanupJob {
	return &TokenCleanupJob{tokens: tokens}
}

func (j *TokenCleanupJob) Name() string {
	return "token_cleanup"
}

func (j *TokenCleanupJob) Run(ctx context.Context) error {
	if j.tokens == nil {
		return nil
	}
	deleted, err := j.tokens.DeleteExpired(ctx, timeutil.NowUnix())
	if err != nil {
		return err
	}
	if deleted > 0 {
		logutil.GetLogger(ctx).Info("expired tokens purged", zap.Int64("count", deleted))
	}
	return nil
}
