// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command is validated by its constructor; handlers reach agents only through
// the narrow interfaces below, so they never touch agent state directly.
package commands

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/ports"
)

// Agent and Unit of Work interfaces used by command handlers.
type (
	// DeliveryRequester emits a delivery request on behalf of the customer.
	DeliveryRequester interface {
		RequestDelivery(ctx context.Context, id order.ID, destination kernel.Coordinate) error
	}

	// ConfirmedOrdersArchiver hands confirmed orders to persist and evicts them
	// once persist succeeds.
	ConfirmedOrdersArchiver interface {
		ArchiveConfirmed(
			ctx context.Context,
			persist func(ctx context.Context, confirmed []*order.Order) error,
		) (int, error)
	}

	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order archive within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AggregateTracker reports the aggregates written within a unit of work.
	AggregateTracker interface {
		TrackedIDs() []order.ID
	}

	// OrderUoW manages transactions for archive writes.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AggregateTracker
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
