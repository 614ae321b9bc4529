package queries

import (
	"errors"

	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/pkg/guard"
)

var ErrGetArchivedOrdersQueryIsNotConstructed = errors.New(
	"GetArchivedOrdersQuery must be created via NewGetArchivedOrdersQuery constructor",
)

// GetArchivedOrdersQuery lists archived orders, optionally filtered by status.
//
// Example:
//
//	query, _ := NewGetArchivedOrdersQuery(order.Confirmed)
//	handler := NewGetArchivedOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list archive: %w", err)
//	}
type GetArchivedOrdersQuery struct { //nolint:recvcheck //using for validation
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetArchivedOrdersQuery creates the query. order.Unknown means no status filter.
func NewGetArchivedOrdersQuery(status order.Status) (GetArchivedOrdersQuery, error) {
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return GetArchivedOrdersQuery{}, err
		}
	}

	return GetArchivedOrdersQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetArchivedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetArchivedOrdersQueryIsNotConstructed)
}

// Status returns the status filter, or order.Unknown when unfiltered.
func (q GetArchivedOrdersQuery) Status() order.Status {
	return q.status
}
