package commands_test

import (
	"context"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) TrackedIDs() []order.ID {
	args := m.Called()
	ids, _ := args.Get(0).([]order.ID)
	return ids
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDeliveryRequester struct{ mock.Mock }

func (m *MockDeliveryRequester) RequestDelivery(ctx context.Context, id order.ID, dest kernel.Coordinate) error {
	args := m.Called(ctx, id, dest)
	return args.Error(0)
}

// fakeArchiver stands in for the dispatcher: it hands its confirmed orders to
// persist and evicts them only when persist succeeds.
type fakeArchiver struct {
	confirmed []*order.Order
	evicted   int
}

func (f *fakeArchiver) ArchiveConfirmed(
	ctx context.Context,
	persist func(ctx context.Context, confirmed []*order.Order) error,
) (int, error) {
	if len(f.confirmed) == 0 {
		return 0, nil
	}
	if err := persist(ctx, f.confirmed); err != nil {
		return 0, err
	}
	n := len(f.confirmed)
	f.evicted += n
	f.confirmed = nil
	return n, nil
}
