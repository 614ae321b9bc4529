package queries

import (
	"errors"

	"parcelflow/internal/pkg/guard"
)

var ErrGetTrackedOrdersQueryIsNotConstructed = errors.New(
	"GetTrackedOrdersQuery must be created via NewGetTrackedOrdersQuery constructor",
)

// GetTrackedOrdersQuery lists every order in the dispatcher's live table, sorted by id.
//
// Example:
//
//	query := NewGetTrackedOrdersQuery()
//	handler := NewGetTrackedOrdersQueryHandler(dispatcher)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("%s: %s\n", o.ID, o.Status)
//	}
type GetTrackedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetTrackedOrdersQuery creates the query.
func NewGetTrackedOrdersQuery() GetTrackedOrdersQuery {
	return GetTrackedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetTrackedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackedOrdersQueryIsNotConstructed)
}
