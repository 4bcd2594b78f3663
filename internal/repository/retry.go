package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commerce/internal/auctionerrors"
	"commerce/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// errStaleRow is returned inside a transaction when a conditional update
// matched no row because another writer got there first.
var errStaleRow = errors.New("row changed by a concurrent transaction")

const retryBaseDelay = 5 * time.Millisecond

// withRetry runs fn until it succeeds, fails with a non-retryable error, or
// the attempts run out.
func (r *GormRepo) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err = fn()
		if err == nil || !isRetryable(err) {
			return err
		}

		utils.Warn("repository: transaction conflict, retrying", map[string]any{
			"operation": op,
			"attempt":   attempt,
			"error":     err.Error(),
		})

		if attempt == r.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBaseDelay):
		}
	}
	return fmt.Errorf("%s: %w", op, auctionerrors.ErrBidConflict)
}

// isRetryable reports whether err is a transient concurrency failure
func isRetryable(err error) bool {
	if errors.Is(err, errStaleRow) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	// a concurrent insert of the same key lost the race
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
