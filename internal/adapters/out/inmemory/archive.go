package inmemory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"

	"github.com/samber/lo"
)

// ErrNoActiveTransaction is returned by Commit and Rollback without a prior Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// Archive stores confirmed orders in memory. It is the archive used when no
// database is configured.
type Archive struct {
	mu     sync.RWMutex
	orders map[order.ID]*order.Order
}

// NewArchive creates an empty archive.
func NewArchive() *Archive {
	return &Archive{orders: make(map[order.ID]*order.Order)}
}

// Create implements ports.UnitOfWorkFactory.
func (a *Archive) Create() ports.UnitOfWork {
	return &ArchiveUnitOfWork{archive: a}
}

// ArchiveUnitOfWork stages writes and applies them to the archive on Commit.
// Without Begin, writes go straight to the archive.
type ArchiveUnitOfWork struct {
	archive *Archive
	staged  map[order.ID]*order.Order
	tracked []order.ID
	active  bool
}

// Begin starts staging. Calling Begin twice keeps the current stage.
func (u *ArchiveUnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.staged = make(map[order.ID]*order.Order)
	return nil
}

// Commit applies staged writes atomically.
func (u *ArchiveUnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}

	u.archive.mu.Lock()
	for id, o := range u.staged {
		u.archive.orders[id] = o
	}
	u.archive.mu.Unlock()

	u.active, u.staged = false, nil
	return nil
}

// Rollback discards staged writes.
func (u *ArchiveUnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.active, u.staged, u.tracked = false, nil, nil
	return nil
}

// TrackedIDs implements ports.UnitOfWork.
func (u *ArchiveUnitOfWork) TrackedIDs() []order.ID {
	return slices.Clone(u.tracked)
}

// OrderRepository implements ports.UnitOfWork.
func (u *ArchiveUnitOfWork) OrderRepository() ports.OrderRepository {
	return archiveRepository{uow: u}
}

type archiveRepository struct {
	uow *ArchiveUnitOfWork
}

func (r archiveRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	c := aggregate.Clone()
	r.uow.tracked = append(r.uow.tracked, c.ID())
	if r.uow.active {
		r.uow.staged[c.ID()] = c
		return nil
	}

	a := r.uow.archive
	a.mu.Lock()
	a.orders[c.ID()] = c
	a.mu.Unlock()
	return nil
}

func (r archiveRepository) Get(_ context.Context, id order.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if o, ok := r.uow.staged[id]; ok {
		return o.Clone(), nil
	}

	a := r.uow.archive
	a.mu.RLock()
	defer a.mu.RUnlock()
	o, ok := a.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order_id", id.String())
	}
	return o.Clone(), nil
}

func (r archiveRepository) List(_ context.Context) ([]*order.Order, error) {
	a := r.uow.archive
	a.mu.RLock()
	merged := lo.Assign(a.orders, r.uow.staged)
	a.mu.RUnlock()

	out := lo.Map(lo.Values(merged), func(o *order.Order, _ int) *order.Order {
		return o.Clone()
	})
	slices.SortFunc(out, func(x, y *order.Order) int {
		return cmp.Compare(x.ID(), y.ID())
	})
	return out, nil
}
