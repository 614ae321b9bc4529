// Package ports defines the contracts between the application core and its
// infrastructure: the message transport agents talk over and the archive that
// confirmed orders are moved to.
package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for archived orders.
// Only confirmed orders are archived; once stored, an order never changes.
type OrderRepository interface {
	// Add persists a confirmed order. Adding an id that is already archived
	// overwrites the stored record, so a retried archive run is harmless.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an archived order by id.
	// Returns errs.ErrObjectNotFound when the id was never archived.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// List returns every archived order sorted by id.
	List(ctx context.Context) ([]*order.Order, error)
}
