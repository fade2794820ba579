package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/linanwx/chatwidget/logger"
	robfigcron "github.com/robfig/cron/v3"
)

// Janitor periodically removes expired cache entries.
type Janitor struct {
	cron   *robfigcron.Cron
	store  *Store
	maxAge time.Duration
}

// NewJanitor schedules Clean on the standard 5-field cron expression expr.
func NewJanitor(store *Store, expr string, maxAge time.Duration) (*Janitor, error) {
	j := &Janitor{
		cron:   robfigcron.New(),
		store:  store,
		maxAge: maxAge,
	}
	if _, err := j.cron.AddFunc(expr, func() { j.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("cache: invalid cleanup expression %q: %w", expr, err)
	}
	return j, nil
}

// RunOnce cleans expired entries now.
func (j *Janitor) RunOnce(ctx context.Context) int64 {
	n, err := j.store.Clean(ctx, j.maxAge)
	if err != nil {
		logger.Warn("cache cleanup failed", "err", err)
		return 0
	}
	if n > 0 {
		logger.Info("cache cleanup", "removed", n)
	}
	return n
}

func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts scheduling and waits for a running cleanup to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}
