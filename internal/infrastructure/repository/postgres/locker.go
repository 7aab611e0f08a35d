package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
)

// fetchLockClass namespaces the advisory locks taken for fetch cycles.
const fetchLockClass int32 = 0x5f46

// AdvisoryLocker holds pg_advisory_lock(class, api_id) on a dedicated
// connection for the duration of fn, so it serializes across processes.
type AdvisoryLocker struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewAdvisoryLocker(db *sqlx.DB, logger *logging.Logger) *AdvisoryLocker {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdvisoryLocker{db: db, logger: logger}
}

func (l *AdvisoryLocker) WithLock(ctx context.Context, apiID int64, fn func(ctx context.Context) error) error {
	key, err := advisoryLockKey(apiID)
	if err != nil {
		return err
	}
	conn, err := l.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire lock connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1, $2)", fetchLockClass, key); err != nil {
		return fmt.Errorf("acquire advisory lock for api %d: %w", apiID, err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1, $2)", fetchLockClass, key); err != nil {
			l.logger.WarnContext(ctx, "release advisory lock failed", "api_id", apiID, "error", err)
		}
	}()

	return fn(ctx)
}

// advisoryLockKey maps an api id onto the int4 key of pg_advisory_lock(int4, int4).
func advisoryLockKey(apiID int64) (int32, error) {
	if apiID < math.MinInt32 || apiID > math.MaxInt32 {
		return 0, fmt.Errorf("api id %d does not fit an advisory lock key", apiID)
	}
	return int32(apiID), nil
}
