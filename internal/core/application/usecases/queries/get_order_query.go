package queries

import (
	"errors"

	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery looks up a single order, live table first, archive second.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID order.ID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery validates the order id.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	id, err := order.NewID(orderID)
	if err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: id,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested id.
func (q GetOrderQuery) OrderID() order.ID {
	return q.orderID
}
