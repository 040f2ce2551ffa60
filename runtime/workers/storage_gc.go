package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// StorageGC periodically reclaims badger value-log space. Badger only
// garbage-collects when asked, so a long-running server needs this.
type StorageGC struct {
	Log      *slog.Logger
	db       *badger.DB
	interval time.Duration
}

func NewStorageGC(log *slog.Logger, db *badger.DB, interval time.Duration) *StorageGC {
	return &StorageGC{Log: log, db: db, interval: interval}
}

func (w *StorageGC) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// One pass per tick; ErrNoRewrite just means nothing to reclaim.
			err := w.db.RunValueLogGC(0.5)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				w.Log.Warn("value log GC failed", "error", err)
			}
		case <-ctx.Done():
			w.Log.Debug("Context done, stopping storage GC")
			return nil
		}
	}
}
