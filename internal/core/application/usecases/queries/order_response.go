// Package queries contains read-only operations over the dispatcher's live order
// table and the archive. Queries never change agent state: live reads go through the
// dispatcher's own loop and return copies.
package queries

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"

	"github.com/samber/lo"
)

// Agent interfaces used by query handlers.
type (
	// TrackedOrdersReader returns a snapshot of the dispatcher's live table.
	TrackedOrdersReader interface {
		Orders(ctx context.Context) ([]*order.Order, error)
	}

	// TrackedOrderReader returns one live order or errs.ErrObjectNotFound.
	TrackedOrderReader interface {
		Order(ctx context.Context, id order.ID) (*order.Order, error)
	}
)

// OrderResponse is the read model shared by every order query.
// Destination is nil for orders first seen through a status update.
// ConfirmedAt is nil until the customer confirmed the delivery.
type OrderResponse struct {
	ID          order.ID
	Status      order.Status
	Destination *kernel.Coordinate
	ConfirmedAt *time.Time
	Archived    bool
}

func toResponse(o *order.Order, archived bool) OrderResponse {
	resp := OrderResponse{
		ID:       o.ID(),
		Status:   o.Status(),
		Archived: archived,
	}

	if dest, ok := o.Destination(); ok {
		resp.Destination = &dest
	}

	if at := o.ConfirmedAt(); !at.IsZero() {
		resp.ConfirmedAt = &at
	}

	return resp
}

func toResponses(orders []*order.Order, archived bool) []OrderResponse {
	return lo.Map(orders, func(o *order.Order, _ int) OrderResponse {
		return toResponse(o, archived)
	})
}
