package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/dbx"
)

// Sweeper deletes jobs whose deadline has passed. Job listings call Sweep
// before reading; Run adds an optional periodic pass.
type Sweeper struct {
	*env
	batch int
}

// Sweep deletes at most one batch of expired jobs and their dependents in a
// single transaction and returns how many jobs were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	ids, err := s.rm.Jobs(s.rm.Conn()).ListExpired(ctx, s.now(), s.batch)
	if err != nil {
		return 0, fmt.Errorf("error listing expired jobs: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var n int
	err = s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		n, err = deleteJobs(ctx, s.rm, tx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info(ctx, "expired jobs removed", "count", n)
	}
	return n, nil
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.log.Error(ctx, "expiry sweep failed", "error", err)
			}
		}
	}
}
