package queries_test

import (
	"context"
	"testing"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Orders(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockDispatcher) Order(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

var nyc = kernel.MustNewCoordinate(40.7128, -74.0060)

func pendingOrder(t *testing.T, id order.ID) *order.Order {
	t.Helper()

	o, err := order.NewOrder(id, nyc)
	require.NoError(t, err)
	return o
}

func confirmedOrder(t *testing.T, id order.ID, at time.Time) *order.Order {
	t.Helper()

	o := pendingOrder(t, id)
	_, err := o.RecordStatus(order.Delivered)
	require.NoError(t, err)
	o.Confirm(at)
	return o
}

func notFound(id order.ID) error {
	return errs.NewObjectNotFoundError("order_id", id.String())
}
