package commands

import (
	"context"
	"fmt"

	"parcelflow/internal/core/domain/model/order"
)

// ArchiveConfirmedOrdersCommandHandler persists confirmed orders in one transaction
// and evicts them from the dispatcher only after the commit succeeded. A failed run
// leaves the live table untouched, so the next run retries the same orders.
type ArchiveConfirmedOrdersCommandHandler struct {
	dispatcher ConfirmedOrdersArchiver
	uowFactory OrderUoWFactory
}

// NewArchiveConfirmedOrdersCommandHandler creates the handler.
func NewArchiveConfirmedOrdersCommandHandler(
	dispatcher ConfirmedOrdersArchiver,
	uowFactory OrderUoWFactory,
) ArchiveConfirmedOrdersCommandHandler {
	return ArchiveConfirmedOrdersCommandHandler{
		dispatcher: dispatcher,
		uowFactory: uowFactory,
	}
}

// Handle archives confirmed orders and returns the ids the unit of work committed.
func (h ArchiveConfirmedOrdersCommandHandler) Handle(ctx context.Context, cmd ArchiveConfirmedOrdersCommand) ([]order.ID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var archived []order.ID
	_, err := h.dispatcher.ArchiveConfirmed(ctx, func(ctx context.Context, confirmed []*order.Order) error {
		ids, err := h.persist(ctx, confirmed)
		archived = ids
		return err
	})
	if err != nil {
		return nil, err
	}
	return archived, nil
}

func (h ArchiveConfirmedOrdersCommandHandler) persist(ctx context.Context, confirmed []*order.Order) ([]order.ID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback(ctx)
		}
	}()

	repo := uow.OrderRepository()
	for _, o := range confirmed {
		if err := repo.Add(ctx, o); err != nil {
			return nil, fmt.Errorf("archive order %s: %w", o.ID(), err)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true
	return uow.TrackedIDs(), nil
}
