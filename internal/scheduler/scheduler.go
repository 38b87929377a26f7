package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nao1215/trendwatch/internal/model"
	"github.com/nao1215/trendwatch/internal/trending"
)

// DefaultTick is how often the trigger loop samples the clock.
// Well under a minute so that no trigger minute can be skipped.
const DefaultTick = 20 * time.Second

// ErrGenerationInProgress is returned by GenerateNow when a generation
// run is already in flight. The scheduled trigger treats this as a
// logged no-op; manual callers may surface it (e.g. as HTTP 409).
var ErrGenerationInProgress = errors.New("report generation already in progress")

// ProjectSource supplies the current trending records.
// *trending.Guard satisfies this.
type ProjectSource interface {
	Projects(ctx context.Context) trending.Result
}

// DocumentBuilder renders a report document for a record sequence.
// *report.Builder satisfies this.
type DocumentBuilder interface {
	BuildDocument(projects []model.Project, date time.Time) string
}

// ReportSink persists rendered documents and prunes old ones.
// *report.Store satisfies this.
type ReportSink interface {
	Save(content string, date time.Time) (string, error)
	Prune(keep int)
}

// Notifier delivers the daily reminder. Failures are logged by the
// scheduler, never escalated or retried.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// LogNotifier is the default Notifier: it writes the reminder to the log.
// Deployments wanting mail or chat delivery provide their own Notifier.
type LogNotifier struct {
	// Logger receives the reminder messages.
	Logger *slog.Logger
}

// Notify logs the reminder message.
func (n *LogNotifier) Notify(_ context.Context, message string) error {
	n.Logger.Info("daily reminder", "message", message)
	return nil
}

// ClockTime is a civil time of day.
type ClockTime struct {
	// Hour is 0-23.
	Hour int

	// Minute is 0-59.
	Minute int
}

// String renders the time in HH:MM form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Scheduler fires the daily report and reminder triggers.
type Scheduler struct {
	// source supplies trending records for a generation run.
	source ProjectSource

	// builder renders the report document.
	builder DocumentBuilder

	// sink persists and prunes report documents.
	sink ReportSink

	// notifier delivers the daily reminder.
	notifier Notifier

	// loc is the zone the trigger times are evaluated in.
	loc *time.Location

	// reportAt is the daily report trigger time.
	reportAt ClockTime

	// remindAt is the daily reminder trigger time.
	remindAt ClockTime

	// keep is how many reports retention pruning preserves.
	keep int

	// running is the process-wide single-flight guard for generation.
	running atomic.Bool

	// logger records trigger activity and swallowed failures.
	logger *slog.Logger

	// now is the clock, injectable for tests.
	now func() time.Time

	// tick is the trigger loop sampling interval.
	tick time.Duration
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithReportAt sets the daily report trigger time.
func WithReportAt(t ClockTime) Option {
	return func(s *Scheduler) {
		s.reportAt = t
	}
}

// WithReminderAt sets the daily reminder trigger time.
func WithReminderAt(t ClockTime) Option {
	return func(s *Scheduler) {
		s.remindAt = t
	}
}

// WithRetention sets how many reports pruning preserves.
func WithRetention(keep int) Option {
	return func(s *Scheduler) {
		s.keep = keep
	}
}

// WithNotifier replaces the reminder delivery mechanism.
func WithNotifier(n Notifier) Option {
	return func(s *Scheduler) {
		s.notifier = n
	}
}

// WithClock replaces the clock. Tests use this to step through trigger
// minutes without waiting.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithTick overrides the trigger loop sampling interval.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) {
		s.tick = d
	}
}

// New creates a Scheduler with the original deployment's trigger times:
// report at 08:30 and reminder at 09:30 in the given zone, keeping the
// seven newest reports.
func New(source ProjectSource, builder DocumentBuilder, sink ReportSink, loc *time.Location, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		source:   source,
		builder:  builder,
		sink:     sink,
		loc:      loc,
		reportAt: ClockTime{Hour: 8, Minute: 30},
		remindAt: ClockTime{Hour: 9, Minute: 30},
		keep:     7,
		logger:   logger,
		now:      time.Now,
		tick:     DefaultTick,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = &LogNotifier{Logger: logger}
	}
	return s
}

// Start runs the trigger loop until the context is cancelled.
// Each trigger fires at most once per calendar day, on the first tick
// inside its configured minute.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"timezone", s.loc.String(),
		"reportAt", s.reportAt.String(),
		"reminderAt", s.remindAt.String(),
	)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	var lastReport, lastRemind string // calendar day of the last firing
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			now := s.now().In(s.loc)
			day := now.Format("2006-01-02")

			if lastReport != day && reached(now, s.reportAt) {
				lastReport = day
				// Run asynchronously so a slow fetch cannot delay
				// the reminder trigger; the single-flight guard
				// handles overlap.
				go func() {
					if err := s.GenerateNow(ctx); err != nil && !errors.Is(err, ErrGenerationInProgress) {
						s.logger.Error("daily report generation failed", "error", err)
					}
				}()
			}

			if lastRemind != day && reached(now, s.remindAt) {
				lastRemind = day
				s.sendReminder(ctx)
			}
		}
	}
}

// reached reports whether now falls inside the trigger minute.
// Matching the exact minute (rather than "at or past") preserves cron
// semantics: a trigger whose minute already passed when the process
// started does not fire until the next day.
func reached(now time.Time, at ClockTime) bool {
	return now.Hour() == at.Hour && now.Minute() == at.Minute
}

// GenerateNow performs one generation run: fetch records, render the
// document, save it, prune old reports. It is the single entry point for
// both the daily trigger and manual invocation.
//
// If a run is already in progress it returns ErrGenerationInProgress
// without doing anything. The in-progress flag is cleared on every exit
// path, so a failed run never blocks the next one.
func (s *Scheduler) GenerateNow(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Info("generation already in progress, skipping")
		return ErrGenerationInProgress
	}
	defer s.running.Store(false)

	result := s.source.Projects(ctx)
	if len(result.Projects) == 0 {
		s.logger.Warn("no trending records available, skipping report")
		return nil
	}

	now := s.now().In(s.loc)
	content := s.builder.BuildDocument(result.Projects, now)
	path, err := s.sink.Save(content, now)
	if err != nil {
		return fmt.Errorf("failed to save daily report: %w", err)
	}

	s.logger.Info("daily report generated",
		"path", path,
		"projects", len(result.Projects),
		"origin", result.Origin.String(),
	)
	s.sink.Prune(s.keep)
	return nil
}

// sendReminder fires the stateless reminder side effect. Failures are
// logged, never escalated, never retried.
func (s *Scheduler) sendReminder(ctx context.Context) {
	msg := "The latest GitHub trending report is ready to view."
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.logger.Error("daily reminder failed", "error", err)
	}
}
