// Package scheduler runs the periodic AccuraBot progress reports.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// ReportEmitter is the engine operation the scheduler triggers.
type ReportEmitter interface {
	EmitProgressReports(ctx context.Context, frequency string) (int, error)
}

// Schedules maps each report frequency to a cron spec. Empty specs are
// not scheduled.
type Schedules struct {
	Daily   string
	Weekly  string
	Monthly string
}

// DefaultSchedules runs reports at midnight on the standard boundaries.
func DefaultSchedules() Schedules {
	return Schedules{Daily: "@daily", Weekly: "@weekly", Monthly: "@monthly"}
}

// ReportScheduler owns the cron runner for progress reports.
type ReportScheduler struct {
	emitter ReportEmitter
	cron    *cron.Cron
	log     zerolog.Logger
	timeout time.Duration
	entries map[string]cron.EntryID
}

func NewReportScheduler(emitter ReportEmitter, schedules Schedules, log zerolog.Logger) (*ReportScheduler, error) {
	s := &ReportScheduler{
		emitter: emitter,
		cron:    cron.New(),
		log:     log.With().Str("component", "report_scheduler").Logger(),
		timeout: time.Minute,
		entries: make(map[string]cron.EntryID),
	}

	specs := []struct {
		frequency string
		spec      string
	}{
		{models.ReportFrequencyDaily, schedules.Daily},
		{models.ReportFrequencyWeekly, schedules.Weekly},
		{models.ReportFrequencyMonthly, schedules.Monthly},
	}
	for _, sp := range specs {
		if sp.spec == "" {
			continue
		}
		frequency := sp.frequency
		id, err := s.cron.AddFunc(sp.spec, func() {
			s.run(frequency)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule %s reports: %w", frequency, err)
		}
		s.entries[frequency] = id
	}
	return s, nil
}

// Start starts the cron scheduler
func (s *ReportScheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("schedules", len(s.entries)).Msg("report scheduler started")
}

// Stop stops the scheduler and waits for a running report to finish.
func (s *ReportScheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.log.Info().Msg("report scheduler stopped")
}

// Next returns the next activation time for frequency.
func (s *ReportScheduler) Next(frequency string) (time.Time, bool) {
	id, ok := s.entries[frequency]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

// RunNow emits the reports for frequency immediately.
func (s *ReportScheduler) RunNow(ctx context.Context, frequency string) (int, error) {
	n, err := s.emitter.EmitProgressReports(ctx, frequency)
	if err != nil {
		return 0, fmt.Errorf("emit %s reports: %w", frequency, err)
	}
	return n, nil
}

func (s *ReportScheduler) run(frequency string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.RunNow(ctx, frequency)
	if err != nil {
		s.log.Error().Err(err).Str("frequency", frequency).Msg("progress reports failed")
		return
	}
	s.log.Info().Str("frequency", frequency).Int("tasks", n).Msg("progress reports sent")
}
