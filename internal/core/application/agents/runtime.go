package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// DefaultIdleTimeout is how long a runtime waits on an empty mailbox before it logs
// an idle tick.
const DefaultIdleTimeout = 20 * time.Second

// ErrRuntimeStopped is returned by Do once the runtime's loop has exited.
var ErrRuntimeStopped = errors.New("agent runtime is stopped")

// Handler processes one envelope against the agent's state. A returned error is
// logged by the runtime; it never stops the loop.
type Handler[S any] func(ctx context.Context, state S, env messages.Envelope) error

type task[S any] struct {
	fn     func(ctx context.Context, state S) error
	result chan error
}

// Runtime is a single-goroutine reactor that owns one agent's state.
//
// Envelopes from the agent's inbox and tasks submitted through Do run one at a time,
// each to completion, on the goroutine that called Run. State is never reachable
// from any other goroutine, so handlers need no locks. Context cancellation is only
// observed between messages.
type Runtime[S any] struct {
	addr        messages.Address
	state       S
	handle      Handler[S]
	transport   ports.Transport
	idleTimeout time.Duration
	logger      *slog.Logger

	tasks   chan task[S]
	stopped chan struct{}
}

// NewRuntime builds a runtime for addr. idleTimeout <= 0 selects DefaultIdleTimeout.
func NewRuntime[S any](
	addr messages.Address,
	state S,
	handle Handler[S],
	transport ports.Transport,
	idleTimeout time.Duration,
	logger *slog.Logger,
) (*Runtime[S], error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, errs.NewValueIsRequiredError("handler")
	}
	if transport == nil {
		return nil, errs.NewValueIsRequiredError("transport")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}

	return &Runtime[S]{
		addr:        addr,
		state:       state,
		handle:      handle,
		transport:   transport,
		idleTimeout: idleTimeout,
		logger:      logger.With("component", addr.String()),
		tasks:       make(chan task[S]),
		stopped:     make(chan struct{}),
	}, nil
}

// Address returns the mailbox address the runtime reads from.
func (r *Runtime[S]) Address() messages.Address {
	return r.addr
}

// Run receives until ctx is done or the inbox is closed. It must be called once.
func (r *Runtime[S]) Run(ctx context.Context) error {
	defer close(r.stopped)

	inbox, err := r.transport.Inbox(ctx, r.addr)
	if err != nil {
		return fmt.Errorf("open inbox %s: %w", r.addr, err)
	}

	r.logger.InfoContext(ctx, "Agent started", "idle_timeout", r.idleTimeout)
	defer r.logger.InfoContext(context.WithoutCancel(ctx), "Agent stopped")

	idle := time.NewTimer(r.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case env, ok := <-inbox:
			if !ok {
				return nil
			}
			if err := r.safely(ctx, func(ctx context.Context) error {
				return r.handle(ctx, r.state, env)
			}); err != nil {
				r.logger.WarnContext(ctx, "Message discarded",
					"message_id", env.ID.String(),
					"from", env.From.String(),
					"error", err,
				)
			}

		case t := <-r.tasks:
			t.result <- r.safely(ctx, func(ctx context.Context) error {
				return t.fn(ctx, r.state)
			})

		case <-idle.C:
			r.logger.DebugContext(ctx, "No message received in timeout period")
		}

		idle.Reset(r.idleTimeout)
	}
}

// Do runs fn on the runtime's goroutine between two messages and returns its error.
// It is how code outside the agent reads or changes the agent's state.
func (r *Runtime[S]) Do(ctx context.Context, fn func(ctx context.Context, state S) error) error {
	t := task[S]{fn: fn, result: make(chan error, 1)}

	select {
	case r.tasks <- t:
	case <-r.stopped:
		return ErrRuntimeStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runtime[S]) send(ctx context.Context, to messages.Address, b messages.Body) error {
	env, err := messages.NewEnvelope(r.addr, to, b)
	if err != nil {
		return fmt.Errorf("build %s: %w", b.Type(), err)
	}
	if err := r.transport.Send(ctx, env); err != nil {
		return fmt.Errorf("send %s to %s: %w", b.Type(), to, err)
	}

	r.logger.DebugContext(ctx, "Message sent", "to", to.String(), "type", string(b.Type()))
	return nil
}

// safely converts a panic in fn into an error so one bad message cannot stop the loop.
func (r *Runtime[S]) safely(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.ErrorContext(ctx, "Handler panicked", "panic", p)
			err = fmt.Errorf("handler panic: %v", p)
		}
	}()
	return fn(ctx)
}

func unexpected(b messages.Body) error {
	return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("unexpected message type %q", b.Type()))
}
