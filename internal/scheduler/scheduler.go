// Package scheduler keeps the price cache warm on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ChartFeed/internal/datafeed"
	"ChartFeed/internal/model"
	"ChartFeed/internal/notifier"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages the warm-up cron task.
type Scheduler struct {
	Cron     *cron.Cron
	Feed     *datafeed.Datafeed
	Notifier notifier.Notifier
	Symbols  []string // empty means the whole catalog
	Ctx      context.Context

	logger *zap.Logger
	runMu  sync.Mutex // one warm-up at a time
	mu     sync.Mutex
	last   *model.WarmReport
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, feed *datafeed.Datafeed, n notifier.Notifier, symbols []string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if n == nil {
		n = notifier.Noop{}
	}
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Named("cron")))
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		Feed:     feed,
		Notifier: n,
		Symbols:  symbols,
		Ctx:      ctx,
		logger:   logger,
	}
}

// Register adds the warm-up task under warmCron (six fields, seconds first).
func (s *Scheduler) Register(warmCron string) error {
	if _, err := s.Cron.AddFunc(warmCron, s.warmTask); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunWarmNow executes the warm-up immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunWarmNow() *model.WarmReport {
	return s.warm()
}

// LastReport returns the most recent warm-up report, or nil.
func (s *Scheduler) LastReport() *model.WarmReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) warmTask() {
	s.warm()
}

func (s *Scheduler) warm() *model.WarmReport {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	symbols := s.Symbols
	if len(symbols) == 0 {
		symbols = s.Feed.Catalog.Symbols()
	}
	s.logger.Info("running cache warm-up", zap.Int("symbols", len(symbols)))

	report := &model.WarmReport{
		StartedAt: time.Now(),
		Refreshed: make(map[string]int),
		Failed:    make(map[string]string),
	}
	for _, sym := range symbols {
		// report under the catalog's casing; unknown symbols keep theirs and fail below
		if canonical, err := s.Feed.Catalog.Canonical(sym); err == nil {
			sym = canonical
		}
		if err := s.Ctx.Err(); err != nil {
			report.Failed[sym] = err.Error()
			continue
		}
		n, err := s.Feed.Refresh(s.Ctx, sym)
		if err != nil {
			s.logger.Warn("warm-up refresh failed", zap.String("symbol", sym), zap.Error(err))
			report.Failed[sym] = err.Error()
			continue
		}
		report.Refreshed[sym] = n
	}

	purged, err := s.Feed.Cache.Purge()
	if err != nil {
		s.logger.Error("cache purge failed", zap.Error(err))
		report.PurgeErr = err.Error()
	}
	report.Purged = purged
	report.Elapsed = time.Since(report.StartedAt)

	s.logger.Info("cache warm-up finished",
		zap.Int("refreshed", len(report.Refreshed)),
		zap.Int("failed", len(report.Failed)),
		zap.Int("purged", report.Purged),
		zap.Duration("elapsed", report.Elapsed))

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	if !report.OK() {
		s.trySend(notifier.FormatWarmReport(report))
	}
	return report
}

// HandleCommand processes an operator command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/warm":
		return notifier.FormatWarmReport(s.warm())
	case "/status":
		return notifier.FormatStatus(s.Feed.Cache.Key(), len(s.Feed.Catalog.Symbols()), s.LastReport())
	default:
		return "Available commands:\n• /warm\n• /status"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.logger.Error("send notification failed", zap.Error(err))
	}
}
