package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/groupfit/backend/usecase/cache"
)

// NotifierConfig controls how frequently notification instants are scanned.
type NotifierConfig struct {
	Interval time.Duration
}

// Notifier periodically scans the active session caches for tasks whose
// notification instant has come due since the previous scan and emits a
// log record for each. Delivery to devices happens outside this service.
type Notifier struct {
	caches *cache.Manager
	logger *zap.Logger
	cron   *cron.Cron
	cfg    NotifierConfig

	mu      sync.Mutex
	lastRun time.Time
}

func NewNotifier(caches *cache.Manager, logger *zap.Logger, cfg NotifierConfig) *Notifier {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	n := &Notifier{
		caches:  caches,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
		lastRun: time.Now(),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = n.cron.AddFunc(schedule, n.Scan)

	return n
}

// Start launches the cron scheduler.
func (n *Notifier) Start() {
	if n == nil || n.cron == nil {
		return
	}
	n.cron.Start()
	n.logger.Info("notifier started", zap.Duration("interval", n.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (n *Notifier) Stop(ctx context.Context) {
	if n == nil || n.cron == nil {
		return
	}
	stopCtx := n.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	n.logger.Info("notifier stopped")
}

// Scan emits a record for every notification that fired since the last
// scan. Runs against the in-memory snapshots only.
func (n *Notifier) Scan() {
	now := time.Now()

	n.mu.Lock()
	from := n.lastRun
	n.lastRun = now
	n.mu.Unlock()

	for _, c := range n.caches.Active() {
		for _, task := range c.UpcomingNotifications(from, now) {
			n.logger.Info("task notification due",
				zap.String("user_id", c.UserID()),
				zap.String("task_id", task.ID),
				zap.String("title", task.Title),
				zap.Time("notification", *task.Notification))
		}
	}
}
