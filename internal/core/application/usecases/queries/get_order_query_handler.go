package queries

import (
	"context"
	"errors"

	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// GetOrderQueryHandler resolves an order from the dispatcher's live table and falls
// back to the archive for orders that were already evicted.
type GetOrderQueryHandler struct {
	dispatcher TrackedOrderReader
	archive    ports.UnitOfWorkFactory
}

// NewGetOrderQueryHandler creates the handler.
func NewGetOrderQueryHandler(dispatcher TrackedOrderReader, archive ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		dispatcher: dispatcher,
		archive:    archive,
	}
}

// Handle returns the order or errs.ErrObjectNotFound when neither source knows it.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.dispatcher.Order(ctx, query.OrderID())
	switch {
	case err == nil:
		return toResponse(o, false), nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return OrderResponse{}, err
	}

	archived, err := h.archive.Create().OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	return toResponse(archived, true), nil
}
