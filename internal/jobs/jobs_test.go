package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloser struct {
	mu     sync.Mutex
	calls  []commands.CloseDeliveredOrdersCommand
	closed int
	err    error
	ctxErr error
}

func (f *fakeCloser) Handle(ctx context.Context, cmd commands.CloseDeliveredOrdersCommand) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
	if _, ok := ctx.Deadline(); !ok {
		f.ctxErr = errors.New("no deadline")
	}
	return f.closed, f.err
}

func (f *fakeCloser) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrderClosingJob_RunOnce(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should pass the cutoff and report closed orders", func(t *testing.T) {
		closer := &fakeCloser{closed: 3}
		job := NewOrderClosingJob(closer, "* * * * * *", 2*time.Hour, time.Second, discardLogger())
		job.now = func() time.Time { return now }

		assert.Equal(t, 3, job.RunOnce(context.Background()))
		require.Len(t, closer.calls, 1)
		assert.Equal(t, now.Add(-2*time.Hour), closer.calls[0].Cutoff())
		require.NoError(t, closer.ctxErr)
	})

	t.Run("should keep partial progress when some orders fail", func(t *testing.T) {
		closer := &fakeCloser{closed: 1, err: errors.New("order x: storage down")}
		job := NewOrderClosingJob(closer, "* * * * * *", time.Hour, time.Second, discardLogger())
		job.now = func() time.Time { return now }

		assert.Equal(t, 1, job.RunOnce(context.Background()))
	})

	t.Run("should not call the handler with a negative window", func(t *testing.T) {
		closer := &fakeCloser{}
		job := NewOrderClosingJob(closer, "* * * * * *", -time.Minute, time.Second, discardLogger())

		assert.Zero(t, job.RunOnce(context.Background()))
		assert.Zero(t, closer.count())
	})
}

func TestOrderClosingJob_Schedule(t *testing.T) {
	t.Run("should reject a malformed schedule", func(t *testing.T) {
		job := NewOrderClosingJob(&fakeCloser{}, "every minute", time.Hour, time.Second, discardLogger())

		require.Error(t, job.Start())
	})

	t.Run("should sweep on every tick until stopped", func(t *testing.T) {
		closer := &fakeCloser{}
		job := NewOrderClosingJob(closer, "* * * * * *", time.Hour, time.Second, discardLogger())

		require.NoError(t, job.Start())
		assert.Eventually(t, func() bool { return closer.count() > 0 }, 3*time.Second, 50*time.Millisecond)
		job.Stop()

		stoppedAt := closer.count()
		time.Sleep(1500 * time.Millisecond)
		assert.Equal(t, stoppedAt, closer.count())
	})
}

type recordingJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j recordingJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j recordingJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("should start in order and stop in reverse", func(t *testing.T) {
		var log []string
		jm := NewJobManager()
		jm.Add("a", recordingJob{name: "a", log: &log})
		jm.Add("b", recordingJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("should stop started jobs when one fails to start", func(t *testing.T) {
		var log []string
		jm := NewJobManager()
		jm.Add("a", recordingJob{name: "a", log: &log})
		jm.Add("b", recordingJob{name: "b", startErr: errors.New("bad spec"), log: &log})
		jm.Add("c", recordingJob{name: "c", log: &log})

		err := jm.StartAll()

		require.ErrorContains(t, err, "failed to start b job")
		assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
	})
}
