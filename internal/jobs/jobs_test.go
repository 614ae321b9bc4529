package jobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"parcelflow/internal/adapters/out/inmemory"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type archiveFactory struct{ archive *inmemory.Archive }

func (f archiveFactory) Create() commands.OrderUoW { return f.archive.Create() }

type stubArchiver struct {
	confirmed []*order.Order
	err       error
}

func (s *stubArchiver) ArchiveConfirmed(
	ctx context.Context,
	persist func(ctx context.Context, confirmed []*order.Order) error,
) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if err := persist(ctx, s.confirmed); err != nil {
		return 0, err
	}
	n := len(s.confirmed)
	s.confirmed = nil
	return n, nil
}

type recordingRequester struct {
	mu  sync.Mutex
	ids []order.ID
	at  []time.Time
	err error
}

func (r *recordingRequester) RequestDelivery(_ context.Context, id order.ID, _ kernel.Coordinate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.ids = append(r.ids, id)
	r.at = append(r.at, time.Now())
	return nil
}

func (r *recordingRequester) snapshot() []order.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]order.ID(nil), r.ids...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestArchiveConfirmedOrdersJob_Run(t *testing.T) {
	// Given
	o, err := order.NewOrder("ORD001", DemoDestination)
	require.NoError(t, err)
	o.Confirm(time.Now())
	archive := inmemory.NewArchive()
	dispatcher := &stubArchiver{confirmed: []*order.Order{o}}
	handler := commands.NewArchiveConfirmedOrdersCommandHandler(dispatcher, archiveFactory{archive: archive})

	var logs bytes.Buffer
	job := NewArchiveConfirmedOrdersJob(handler, "", slog.New(slog.NewTextHandler(&logs, nil)))

	// When
	job.run(t.Context())

	// Then
	got, err := archive.Create().OrderRepository().Get(t.Context(), "ORD001")
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, got.Status())
	assert.Empty(t, dispatcher.confirmed)
	assert.Contains(t, logs.String(), "Archived confirmed orders")
	assert.Contains(t, logs.String(), "count=1")
	assert.Contains(t, logs.String(), "order_ids=[ORD001]")
}

func TestArchiveConfirmedOrdersJob_RunLogsFailure(t *testing.T) {
	dispatcher := &stubArchiver{err: errors.New("runtime stopped")}
	handler := commands.NewArchiveConfirmedOrdersCommandHandler(dispatcher, archiveFactory{archive: inmemory.NewArchive()})

	var logs bytes.Buffer
	job := NewArchiveConfirmedOrdersJob(handler, "", slog.New(slog.NewTextHandler(&logs, nil)))

	job.run(t.Context())

	assert.Contains(t, logs.String(), "Archive job failed")
	assert.Contains(t, logs.String(), "runtime stopped")
}

func TestArchiveConfirmedOrdersJob_Schedule(t *testing.T) {
	handler := commands.NewArchiveConfirmedOrdersCommandHandler(&stubArchiver{}, archiveFactory{archive: inmemory.NewArchive()})

	t.Run("default", func(t *testing.T) {
		job := NewArchiveConfirmedOrdersJob(handler, "", discardLogger())
		assert.Equal(t, DefaultArchiveSchedule, job.schedule)

		require.NoError(t, job.Start())
		job.Stop()
	})

	t.Run("invalid", func(t *testing.T) {
		job := NewArchiveConfirmedOrdersJob(handler, "every now and then", discardLogger())
		require.Error(t, job.Start())
	})
}

func TestDemoScenario_Run(t *testing.T) {
	// Given
	requester := &recordingRequester{}
	stagger := 30 * time.Millisecond
	demo := NewDemoScenario(commands.NewSubmitDeliveryRequestCommandHandler(requester), stagger, discardLogger())

	// When
	require.NoError(t, demo.Run(t.Context()))

	// Then
	assert.Equal(t, []order.ID{"ORD001", "ORD002"}, requester.snapshot())
	assert.GreaterOrEqual(t, requester.at[1].Sub(requester.at[0]), stagger)
}

func TestDemoScenario_RunStopsOnCancel(t *testing.T) {
	requester := &recordingRequester{}
	demo := NewDemoScenario(commands.NewSubmitDeliveryRequestCommandHandler(requester), time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		assert.Eventually(t, func() bool { return len(requester.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
		cancel()
	}()

	err := demo.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []order.ID{"ORD001"}, requester.snapshot())
}

func TestDemoScenario_RunReturnsRequestError(t *testing.T) {
	boom := errors.New("customer stopped")
	demo := NewDemoScenario(
		commands.NewSubmitDeliveryRequestCommandHandler(&recordingRequester{err: boom}),
		time.Millisecond,
		discardLogger(),
	)

	require.ErrorIs(t, demo.Run(t.Context()), boom)
}

func TestNewDemoScenario_DefaultStagger(t *testing.T) {
	demo := NewDemoScenario(commands.NewSubmitDeliveryRequestCommandHandler(&recordingRequester{}), 0, discardLogger())
	assert.Equal(t, DefaultDemoStagger, demo.stagger)
}

func TestJobManager_StartAllAndStopAll(t *testing.T) {
	// Given
	requester := &recordingRequester{}
	handler := commands.NewArchiveConfirmedOrdersCommandHandler(&stubArchiver{}, archiveFactory{archive: inmemory.NewArchive()})
	jm := NewJobManager(
		NewArchiveConfirmedOrdersJob(handler, "", discardLogger()),
		NewDemoScenario(commands.NewSubmitDeliveryRequestCommandHandler(requester), time.Hour, discardLogger()),
		discardLogger(),
	)

	// When
	require.NoError(t, jm.StartAll(t.Context()))
	require.Eventually(t, func() bool { return len(requester.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	jm.StopAll()

	// Then
	assert.Equal(t, []order.ID{"ORD001"}, requester.snapshot())
}

func TestJobManager_WithoutDemo(t *testing.T) {
	handler := commands.NewArchiveConfirmedOrdersCommandHandler(&stubArchiver{}, archiveFactory{archive: inmemory.NewArchive()})
	jm := NewJobManager(NewArchiveConfirmedOrdersJob(handler, "", discardLogger()), nil, discardLogger())

	require.NoError(t, jm.StartAll(t.Context()))
	jm.StopAll()
}
