package agents_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"parcelflow/internal/adapters/out/inmemory"
	"parcelflow/internal/core/application/agents"
	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var nyc = kernel.MustNewCoordinate(40.7128, -74.0060)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var allAddresses = []messages.Address{
	messages.CustomerAddress,
	messages.DispatcherAddress,
	messages.DeliveryUnitAddress,
	messages.RoutePlannerAddress,
}

// recorder wraps the bus and remembers every envelope in send order.
type recorder struct {
	*inmemory.Bus

	mu   sync.Mutex
	sent []messages.Envelope
}

func newRecorder() *recorder {
	return &recorder{Bus: inmemory.NewBus(64, allAddresses...)}
}

func (r *recorder) Send(ctx context.Context, env messages.Envelope) error {
	r.mu.Lock()
	r.sent = append(r.sent, env)
	r.mu.Unlock()
	return r.Bus.Send(ctx, env)
}

// bodies returns the decoded bodies sent for id, in send order.
func (r *recorder) bodies(t *testing.T, id order.ID) []messages.Body {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []messages.Body
	for _, env := range r.sent {
		b, err := env.Decode()
		if err != nil {
			continue
		}
		if orderID(b) == id {
			out = append(out, b)
		}
	}
	return out
}

func (r *recorder) types(t *testing.T, id order.ID) []messages.Type {
	t.Helper()
	var out []messages.Type
	for _, b := range r.bodies(t, id) {
		out = append(out, b.Type())
	}
	return out
}

func orderID(b messages.Body) order.ID {
	switch v := b.(type) {
	case messages.DeliveryRequest:
		return v.OrderID
	case messages.AssignDelivery:
		return v.OrderID
	case messages.RouteRequest:
		return v.OrderID
	case messages.RerouteRequest:
		return v.OrderID
	case messages.RouteResponse:
		return v.OrderID
	case messages.StatusUpdate:
		return v.OrderID
	case messages.DeliveryUpdate:
		return v.OrderID
	case messages.DeliveryConfirmed:
		return v.OrderID
	default:
		return ""
	}
}

type system struct {
	transport    *recorder
	customer     *agents.Customer
	dispatcher   *agents.Dispatcher
	deliveryUnit *agents.DeliveryUnit
	routePlanner *agents.RoutePlanner
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSystem wires all four agents over one recorder. Nothing runs until start.
func newSystem(t *testing.T, traffic ...order.ID) *system {
	t.Helper()
	tr := newRecorder()
	logger := discardLogger()

	c, err := agents.NewCustomer(agents.CustomerConfig{}, tr, logger)
	require.NoError(t, err)
	d, err := agents.NewDispatcher(agents.DispatcherConfig{}, tr, logger)
	require.NoError(t, err)
	du, err := agents.NewDeliveryUnit(agents.DeliveryUnitConfig{
		Traffic: services.NewTrafficPolicy(traffic...),
	}, tr, logger)
	require.NoError(t, err)
	rp, err := agents.NewRoutePlanner(agents.RoutePlannerConfig{}, tr, logger)
	require.NoError(t, err)

	return &system{transport: tr, customer: c, dispatcher: d, deliveryUnit: du, routePlanner: rp}
}

type runner interface {
	Run(ctx context.Context) error
}

func run(t *testing.T, rs ...runner) {
	t.Helper()
	for _, a := range rs {
		go func() { _ = a.Run(t.Context()) }()
	}
}

func (s *system) start(t *testing.T) {
	t.Helper()
	run(t, s.customer, s.dispatcher, s.deliveryUnit, s.routePlanner)
}

func (s *system) waitForStatus(t *testing.T, id order.ID, want order.Status) {
	t.Helper()
	require.Eventually(t, func() bool {
		o, err := s.dispatcher.Order(t.Context(), id)
		return err == nil && o.Status() == want
	}, waitFor, tick)
}

// send puts a raw envelope on the transport as if from addr.
func send(t *testing.T, tr interface {
	Send(context.Context, messages.Envelope) error
}, from, to messages.Address, b messages.Body) {
	t.Helper()
	env, err := messages.NewEnvelope(from, to, b)
	require.NoError(t, err)
	require.NoError(t, tr.Send(t.Context(), env))
}

// sendMalformed puts an envelope whose body is not valid JSON on the transport.
func sendMalformed(t *testing.T, tr interface {
	Send(context.Context, messages.Envelope) error
}, from, to messages.Address) {
	t.Helper()
	env, err := messages.NewEnvelope(from, to, messages.DeliveryConfirmed{OrderID: "ORD000"})
	require.NoError(t, err)
	env.Body = []byte(`{not json`)
	require.NoError(t, tr.Send(t.Context(), env))
}

// syncBuffer is a bytes.Buffer safe for a logger goroutine and a test goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
