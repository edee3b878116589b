package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/AnsarMahir/doc4all-dashboard/internal/config"
	"github.com/AnsarMahir/doc4all-dashboard/internal/repository/mongodb"
	"github.com/AnsarMahir/doc4all-dashboard/internal/repository/sheets"
)

const reportTimeout = 2 * time.Minute

// Scheduler runs the daily ops report: summarize the last day of snapshot
// activity from the archive and append a row to the ops spreadsheet.
type Scheduler struct {
	cron    *cron.Cron
	archive mongodb.Repository
	sheet   sheets.Repository
	cfg     config.ReportingConfig
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ReportingConfig, archive mongodb.Repository, sheet sheets.Repository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.UTC
	}

	return &Scheduler{
		cron:    cron.New(cron.WithLocation(location)),
		archive: archive,
		sheet:   sheet,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start registers the daily ops report and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.publishDailyReport); err != nil {
		s.logger.Error("failed to schedule daily ops report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) publishDailyReport() {
	s.logger.Info("generating daily ops report")
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	now := time.Now()
	summary, err := s.archive.SummarizeSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		s.logger.Error("failed to summarize snapshot activity", zap.Error(err))
		return
	}

	row := []interface{}{
		now.Format("2006-01-02"),
		summary.Total,
		summary.ByRole["DOCTOR"],
		summary.ByRole["DISPENSARY"],
		summary.ByRole["PATIENT"],
		summary.Degraded,
	}

	if err := s.sheet.AppendReportRow(ctx, row); err != nil {
		s.logger.Error("failed to export ops report", zap.Error(err))
		return
	}

	s.logger.Info("daily ops report exported", zap.Int("snapshots", summary.Total), zap.Int("degraded", summary.Degraded))
}
