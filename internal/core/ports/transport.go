package ports

import (
	"context"

	"parcelflow/internal/core/application/messages"
)

// Transport delivers envelopes between agent mailboxes.
//
// Implementations must preserve send order per recipient, which gives FIFO per
// sender to recipient pair. No ordering is promised across recipients.
type Transport interface {
	// Send enqueues env for env.To. It may block while the recipient's mailbox is full
	// and returns when ctx is done.
	Send(ctx context.Context, env messages.Envelope) error

	// Inbox returns the receive side of addr's mailbox. Implementations may close the
	// channel once ctx is done; readers must watch ctx as well.
	Inbox(ctx context.Context, addr messages.Address) (<-chan messages.Envelope, error)
}
