package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/config"
	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/service/reporting"
)

// ReportSink receives the scheduled daily stock snapshots.
type ReportSink interface {
	SaveDailyStockReport(ctx context.Context, report models.DailyStockReport) error
}

// Scheduler runs the daily stock snapshot on a cron schedule.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	sink         ReportSink
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The snapshot job is skipped
// entirely when no sink is configured.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, sink ReportSink, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		reportingSvc: reportingSvc,
		sink:         sink,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers and starts the snapshot job.
func (s *Scheduler) Start() {
	if s.sink == nil {
		s.logger.Info("no report sink configured, daily snapshot disabled")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailySnapshot); err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailySnapshot() {
	s.logger.Info("generating daily stock snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reportingSvc.Snapshot(ctx)
	if err != nil {
		s.logger.Error("failed to build stock snapshot", zap.Error(err))
		return
	}

	if err := s.sink.SaveDailyStockReport(ctx, report); err != nil {
		s.logger.Error("failed to store stock snapshot", zap.Error(err))
		return
	}

	s.logger.Info("daily stock snapshot stored",
		zap.Int("items", report.ItemCount),
		zap.Int("total_stock", report.TotalStock),
		zap.Int("low_stock", report.LowStockCount))
}
