package internal

import (
	"context"
	"time"
)

// Default poll budget for WaitForSync.
const (
	DefaultSyncAttempts = 30
	DefaultSyncDelay    = 3 * time.Second
)

// SyncOptions bounds the poll loop. Zero values take the defaults.
type SyncOptions struct {
	MaxAttempts int
	Delay       time.Duration
}

func (o SyncOptions) withDefaults() SyncOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultSyncAttempts
	}
	if o.Delay <= 0 {
		o.Delay = DefaultSyncDelay
	}
	return o
}

// WaitForSync polls dataset status until every data source has synced.
// It has three terminal outcomes:
//   - all sources synced: returns the final status;
//   - any source invalid: returns *InvalidDataSourceError immediately,
//     without exhausting the attempt budget;
//   - budget exhausted while sources are still syncing: returns
//     *SyncTimeoutError.
//
// The loop blocks the caller for up to MaxAttempts status calls plus
// (MaxAttempts-1) delays; cancel ctx to abort early.
func (c *Client) WaitForSync(ctx context.Context, datasetID string, opts SyncOptions) (*DatasetStatus, error) {
	opts = opts.withDefaults()

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		status, err := c.DatasetStatus(ctx, datasetID)
		if err != nil {
			return nil, err
		}

		if status.InvalidCount > 0 {
			return nil, &InvalidDataSourceError{DatasetID: datasetID, InvalidCount: status.InvalidCount}
		}
		if status.SynchingCount == 0 {
			LogInfo("All %d data source(s) synced.", status.SynchedCount)
			return status, nil
		}

		if attempt < opts.MaxAttempts {
			LogInfo("[%d/%d] %d source(s) still syncing, %d synced. Waiting %s...",
				attempt, opts.MaxAttempts, status.SynchingCount, status.SynchedCount, opts.Delay)
			if err := sleepCtx(ctx, opts.Delay); err != nil {
				return nil, err
			}
		}
	}

	return nil, &SyncTimeoutError{DatasetID: datasetID, Attempts: opts.MaxAttempts}
}
