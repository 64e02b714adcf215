package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartPoolStatsReporter logs connection pool statistics every interval
// until ctx is cancelled.
func StartPoolStatsReporter(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st := db.Stats()
				log.Info("db pool stats",
					zap.Int("open", st.OpenConnections),
					zap.Int("in_use", st.InUse),
					zap.Int("idle", st.Idle),
					zap.Int64("wait_count", st.WaitCount),
					zap.Duration("wait_duration", st.WaitDuration),
				)
				if st.MaxOpenConnections > 0 && st.InUse >= st.MaxOpenConnections {
					log.Warn("db pool exhausted", zap.Int("max_open", st.MaxOpenConnections))
				}
			}
		}
	}()
}
