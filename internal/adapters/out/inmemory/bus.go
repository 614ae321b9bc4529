// Package inmemory provides process-local adapters: a channel-backed message bus and
// a map-backed order archive. They are used when no external broker or database is
// configured, and by tests.
package inmemory

import (
	"context"
	"sync"

	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/pkg/errs"
)

// DefaultMailboxSize is the buffer of each mailbox when NewBus gets capacity <= 0.
const DefaultMailboxSize = 256

// Bus is a ports.Transport with one buffered channel per address.
// A single channel per recipient keeps every sender's envelopes in send order.
type Bus struct {
	mu       sync.RWMutex
	boxes    map[messages.Address]chan messages.Envelope
	capacity int
}

// NewBus creates a bus with mailboxes for addrs.
func NewBus(capacity int, addrs ...messages.Address) *Bus {
	if capacity <= 0 {
		capacity = DefaultMailboxSize
	}

	b := &Bus{
		boxes:    make(map[messages.Address]chan messages.Envelope, len(addrs)),
		capacity: capacity,
	}
	for _, a := range addrs {
		b.box(a)
	}
	return b
}

// Send enqueues env for env.To. Unknown recipients are rejected with
// errs.ErrObjectNotFound so a typo in an address fails loudly.
func (b *Bus) Send(ctx context.Context, env messages.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	box, ok := b.boxes[env.To]
	b.mu.RUnlock()
	if !ok {
		return errs.NewObjectNotFoundError("address", env.To.String())
	}

	select {
	case box <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Inbox returns addr's mailbox, creating it on first use. The channel is never
// closed; readers stop on their own context.
func (b *Bus) Inbox(_ context.Context, addr messages.Address) (<-chan messages.Envelope, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return b.box(addr), nil
}

// Pending returns the number of queued envelopes for addr.
func (b *Bus) Pending(addr messages.Address) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.boxes[addr])
}

func (b *Bus) box(addr messages.Address) chan messages.Envelope {
	b.mu.Lock()
	defer b.mu.Unlock()

	box, ok := b.boxes[addr]
	if !ok {
		box = make(chan messages.Envelope, b.capacity)
		b.boxes[addr] = box
	}
	return box
}
