package commands_test

import (
	"errors"
	"testing"
	"time"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func confirmedOrders(t *testing.T, ids ...order.ID) []*order.Order {
	t.Helper()

	orders := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, err := order.NewOrder(id, kernel.MustNewCoordinate(40.7128, -74.0060))
		require.NoError(t, err)
		_, err = o.RecordStatus(order.Delivered)
		require.NoError(t, err)
		o.Confirm(time.Now())
		orders = append(orders, o)
	}
	return orders
}

func TestArchiveConfirmedOrdersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	dispatcher := &fakeArchiver{confirmed: confirmedOrders(t, "ORD001", "ORD002")}

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("TrackedIDs").Return([]order.ID{"ORD001", "ORD002"}).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewArchiveConfirmedOrdersCommandHandler(dispatcher, factory)
	ids, err := h.Handle(ctx, commands.NewArchiveConfirmedOrdersCommand())

	require.NoError(t, err)
	assert.Equal(t, []order.ID{"ORD001", "ORD002"}, ids)
	assert.Equal(t, 2, dispatcher.evicted)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
	factory.AssertExpectations(t)
}

func TestArchiveConfirmedOrdersCommandHandler_Handle_NothingConfirmed(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewArchiveConfirmedOrdersCommandHandler(&fakeArchiver{}, factory)

	ids, err := h.Handle(t.Context(), commands.NewArchiveConfirmedOrdersCommand())

	require.NoError(t, err)
	assert.Empty(t, ids)
	factory.AssertNotCalled(t, "Create")
}

func TestArchiveConfirmedOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewArchiveConfirmedOrdersCommandHandler(&fakeArchiver{}, factory)

	_, err := h.Handle(t.Context(), commands.ArchiveConfirmedOrdersCommand{})

	require.ErrorIs(t, err, commands.ErrArchiveConfirmedOrdersCommandIsNotConstructed)
}

func TestArchiveConfirmedOrdersCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	dispatcher := &fakeArchiver{confirmed: confirmedOrders(t, "ORD001")}

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewArchiveConfirmedOrdersCommandHandler(dispatcher, factory)
	_, err := h.Handle(ctx, commands.NewArchiveConfirmedOrdersCommand())

	require.Error(t, err)
	assert.Zero(t, dispatcher.evicted)
	assert.Len(t, dispatcher.confirmed, 1)
}

func TestArchiveConfirmedOrdersCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	dispatcher := &fakeArchiver{confirmed: confirmedOrders(t, "ORD001")}

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewArchiveConfirmedOrdersCommandHandler(dispatcher, factory)
	_, err := h.Handle(ctx, commands.NewArchiveConfirmedOrdersCommand())

	require.ErrorContains(t, err, "ORD001")
	assert.Zero(t, dispatcher.evicted)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestArchiveConfirmedOrdersCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	dispatcher := &fakeArchiver{confirmed: confirmedOrders(t, "ORD001")}

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewArchiveConfirmedOrdersCommandHandler(dispatcher, factory)
	_, err := h.Handle(ctx, commands.NewArchiveConfirmedOrdersCommand())

	require.Error(t, err)
	assert.Zero(t, dispatcher.evicted)
	uow.AssertExpectations(t)
}
