package queries

import (
	"context"
)

// GetTrackedOrdersQueryHandler reads the live table through the dispatcher's loop.
type GetTrackedOrdersQueryHandler struct {
	dispatcher TrackedOrdersReader
}

// NewGetTrackedOrdersQueryHandler creates the handler.
func NewGetTrackedOrdersQueryHandler(dispatcher TrackedOrdersReader) GetTrackedOrdersQueryHandler {
	return GetTrackedOrdersQueryHandler{dispatcher: dispatcher}
}

// Handle returns the tracked orders sorted by id. An empty table yields an empty,
// non-nil slice.
func (h GetTrackedOrdersQueryHandler) Handle(ctx context.Context, query GetTrackedOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.dispatcher.Orders(ctx)
	if err != nil {
		return nil, err
	}

	return toResponses(orders, false), nil
}
