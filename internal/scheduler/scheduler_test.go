package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/trendwatch/internal/model"
	"github.com/nao1215/trendwatch/internal/trending"
)

// fakeSource returns a fixed payload, optionally blocking until released
// so tests can hold a generation run open.
type fakeSource struct {
	projects []model.Project
	block    chan struct{} // when non-nil, Projects waits for a receive
	started  chan struct{} // when non-nil, closed once Projects is entered
}

func (f *fakeSource) Projects(_ context.Context) trending.Result {
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.block != nil {
		<-f.block
	}
	return trending.Result{Projects: f.projects, Origin: trending.OriginFresh}
}

// fakeBuilder renders a fixed document.
type fakeBuilder struct{}

func (fakeBuilder) BuildDocument(_ []model.Project, _ time.Time) string {
	return "# report"
}

// fakeSink records Save and Prune calls.
type fakeSink struct {
	mu         sync.Mutex
	saveErr    error
	saves      int
	pruneKeeps []int
}

func (f *fakeSink) Save(_ string, _ time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saves++
	return "/tmp/report.md", nil
}

func (f *fakeSink) Prune(keep int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pruneKeeps = append(f.pruneKeeps, keep)
}

func (f *fakeSink) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

// fakeNotifier records delivered messages.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) Notify(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func someProjects() []model.Project {
	return []model.Project{{Name: "golang/go", Rank: 1}}
}

func TestSchedulerGenerateNow(t *testing.T) {
	t.Parallel()

	t.Run("saves and prunes", func(t *testing.T) {
		t.Parallel()

		sink := &fakeSink{}
		sched := New(&fakeSource{projects: someProjects()}, fakeBuilder{}, sink,
			time.UTC, testLogger(), WithRetention(3))

		if err := sched.GenerateNow(context.Background()); err != nil {
			t.Fatal(err)
		}
		if sink.saveCount() != 1 {
			t.Errorf("saves = %d, want 1", sink.saveCount())
		}
		if len(sink.pruneKeeps) != 1 || sink.pruneKeeps[0] != 3 {
			t.Errorf("pruneKeeps = %v, want [3]", sink.pruneKeeps)
		}
	})

	t.Run("empty payload skips save", func(t *testing.T) {
		t.Parallel()

		sink := &fakeSink{}
		sched := New(&fakeSource{}, fakeBuilder{}, sink, time.UTC, testLogger())

		if err := sched.GenerateNow(context.Background()); err != nil {
			t.Fatal(err)
		}
		if sink.saveCount() != 0 {
			t.Errorf("saves = %d, want 0 for empty payload", sink.saveCount())
		}
		if len(sink.pruneKeeps) != 0 {
			t.Errorf("pruneKeeps = %v, want none", sink.pruneKeeps)
		}
	})

	t.Run("concurrent run is rejected", func(t *testing.T) {
		t.Parallel()

		source := &fakeSource{
			projects: someProjects(),
			block:    make(chan struct{}),
			started:  make(chan struct{}),
		}
		sink := &fakeSink{}
		sched := New(source, fakeBuilder{}, sink, time.UTC, testLogger())

		started := source.started
		done := make(chan error, 1)
		go func() {
			done <- sched.GenerateNow(context.Background())
		}()
		<-started

		// A second call while the first holds the flag must refuse.
		if err := sched.GenerateNow(context.Background()); !errors.Is(err, ErrGenerationInProgress) {
			t.Errorf("GenerateNow() error = %v, want ErrGenerationInProgress", err)
		}

		close(source.block)
		if err := <-done; err != nil {
			t.Fatal(err)
		}
		if sink.saveCount() != 1 {
			t.Errorf("saves = %d, want 1", sink.saveCount())
		}

		// The flag is cleared after the first run completes.
		if err := sched.GenerateNow(context.Background()); err != nil {
			t.Errorf("GenerateNow() after completion error = %v, want nil", err)
		}
	})

	t.Run("save failure clears the flag", func(t *testing.T) {
		t.Parallel()

		sink := &fakeSink{saveErr: errors.New("disk full")}
		sched := New(&fakeSource{projects: someProjects()}, fakeBuilder{}, sink, time.UTC, testLogger())

		if err := sched.GenerateNow(context.Background()); err == nil {
			t.Fatal("GenerateNow() error = nil, want save error")
		}

		sink.saveErr = nil
		if err := sched.GenerateNow(context.Background()); err != nil {
			t.Errorf("GenerateNow() after failure error = %v, want nil", err)
		}
	})
}

func TestSchedulerStart(t *testing.T) {
	t.Parallel()

	t.Run("fires triggers once per day", func(t *testing.T) {
		t.Parallel()

		// The clock sits inside both trigger minutes at once so a few
		// ticks exercise the per-day dedup.
		clock := func() time.Time {
			return time.Date(2026, 8, 28, 8, 30, 5, 0, time.UTC)
		}
		sink := &fakeSink{}
		notifier := &fakeNotifier{}
		sched := New(&fakeSource{projects: someProjects()}, fakeBuilder{}, sink,
			time.UTC, testLogger(),
			WithReportAt(ClockTime{Hour: 8, Minute: 30}),
			WithReminderAt(ClockTime{Hour: 8, Minute: 30}),
			WithNotifier(notifier),
			WithClock(clock),
			WithTick(5*time.Millisecond),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		if err := sched.Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Start() error = %v, want context.DeadlineExceeded", err)
		}

		if sink.saveCount() != 1 {
			t.Errorf("saves = %d, want exactly 1 despite repeated ticks", sink.saveCount())
		}
		if notifier.count() != 1 {
			t.Errorf("reminders = %d, want exactly 1", notifier.count())
		}
	})

	t.Run("outside the trigger minute nothing fires", func(t *testing.T) {
		t.Parallel()

		clock := func() time.Time {
			return time.Date(2026, 8, 28, 8, 31, 0, 0, time.UTC)
		}
		sink := &fakeSink{}
		notifier := &fakeNotifier{}
		sched := New(&fakeSource{projects: someProjects()}, fakeBuilder{}, sink,
			time.UTC, testLogger(),
			WithNotifier(notifier),
			WithClock(clock),
			WithTick(5*time.Millisecond),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		if err := sched.Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Start() error = %v, want context.DeadlineExceeded", err)
		}

		if sink.saveCount() != 0 {
			t.Errorf("saves = %d, want 0 past the trigger minute", sink.saveCount())
		}
		if notifier.count() != 0 {
			t.Errorf("reminders = %d, want 0", notifier.count())
		}
	})
}

func TestClockTimeString(t *testing.T) {
	t.Parallel()

	if got, want := (ClockTime{Hour: 8, Minute: 30}).String(), "08:30"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := (ClockTime{Hour: 23, Minute: 5}).String(), "23:05"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
