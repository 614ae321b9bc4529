package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// DispatcherConfig addresses the dispatcher's peers.
type DispatcherConfig struct {
	Address      messages.Address
	DeliveryUnit messages.Address
	Customer     messages.Address
	IdleTimeout  time.Duration
}

// Dispatcher tracks every order it hears about and relays delivery progress to the
// customer.
type Dispatcher struct {
	*Runtime[*order.Book]

	cfg DispatcherConfig
	now func() time.Time
}

// NewDispatcher builds a dispatcher over an empty order book.
func NewDispatcher(cfg DispatcherConfig, transport ports.Transport, logger *slog.Logger) (*Dispatcher, error) {
	cfg = cfg.withDefaults()

	d := &Dispatcher{cfg: cfg, now: time.Now}
	rt, err := NewRuntime(cfg.Address, order.NewBook(), d.handle, transport, cfg.IdleTimeout, logger)
	if err != nil {
		return nil, err
	}
	d.Runtime = rt
	return d, nil
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.Address == "" {
		c.Address = messages.DispatcherAddress
	}
	if c.DeliveryUnit == "" {
		c.DeliveryUnit = messages.DeliveryUnitAddress
	}
	if c.Customer == "" {
		c.Customer = messages.CustomerAddress
	}
	return c
}

func (d *Dispatcher) handle(ctx context.Context, book *order.Book, env messages.Envelope) error {
	body, err := env.Decode()
	if err != nil {
		return err
	}

	switch b := body.(type) {
	case messages.DeliveryRequest:
		return d.onDeliveryRequest(ctx, book, b)
	case messages.StatusUpdate:
		return d.onStatusUpdate(ctx, book, b)
	case messages.DeliveryConfirmed:
		return d.onDeliveryConfirmed(ctx, book, b)
	default:
		return unexpected(body)
	}
}

func (d *Dispatcher) onDeliveryRequest(ctx context.Context, book *order.Book, b messages.DeliveryRequest) error {
	if book.IsTracked(b.OrderID) {
		d.logger.InfoContext(ctx, "Duplicate delivery request ignored", "order_id", b.OrderID.String())
		return nil
	}

	o, err := order.NewOrder(b.OrderID, b.Destination)
	if err != nil {
		return err
	}
	book.Track(o)
	d.logger.InfoContext(ctx, "Delivery request accepted",
		"order_id", b.OrderID.String(),
		"destination", b.Destination.String(),
	)

	return d.send(ctx, d.cfg.DeliveryUnit, messages.AssignDelivery{
		OrderID:     b.OrderID,
		Destination: b.Destination,
	})
}

func (d *Dispatcher) onStatusUpdate(ctx context.Context, book *order.Book, b messages.StatusUpdate) error {
	o, err := book.GetOrTrack(b.OrderID)
	if err != nil {
		return err
	}

	prior, err := o.RecordStatus(b.Status)
	if errors.Is(err, order.ErrOrderIsConfirmed) {
		d.logger.InfoContext(ctx, "Status update for confirmed order ignored",
			"order_id", b.OrderID.String(),
			"status", b.Status.String(),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("status update %s for %s: %w", b.Status, b.OrderID, err)
	}
	d.logger.InfoContext(ctx, "Order status updated",
		"order_id", b.OrderID.String(),
		"prior", prior.String(),
		"status", b.Status.String(),
	)

	if b.Status != order.Delivered || prior == order.Confirmed {
		return nil
	}
	return d.send(ctx, d.cfg.Customer, messages.DeliveryUpdate{
		OrderID: b.OrderID,
		Status:  b.Status.String(),
	})
}

func (d *Dispatcher) onDeliveryConfirmed(ctx context.Context, book *order.Book, b messages.DeliveryConfirmed) error {
	o, err := book.GetOrTrack(b.OrderID)
	if err != nil {
		return err
	}

	prior := o.Confirm(d.now())
	d.logger.InfoContext(ctx, "Order confirmed", "order_id", b.OrderID.String(), "prior", prior.String())
	return nil
}

// Orders returns a snapshot of every tracked order, sorted by id.
func (d *Dispatcher) Orders(ctx context.Context) ([]*order.Order, error) {
	var out []*order.Order
	err := d.Do(ctx, func(_ context.Context, book *order.Book) error {
		out = book.Snapshot()
		return nil
	})
	return out, err
}

// Order returns a copy of one tracked order.
// Returns errs.ErrObjectNotFound when the id is not tracked.
func (d *Dispatcher) Order(ctx context.Context, id order.ID) (*order.Order, error) {
	var out *order.Order
	err := d.Do(ctx, func(_ context.Context, book *order.Book) error {
		o, ok := book.Get(id)
		if !ok {
			return errs.NewObjectNotFoundError("order_id", id.String())
		}
		out = o.Clone()
		return nil
	})
	return out, err
}

// ArchiveConfirmed hands copies of all confirmed orders to persist and evicts them
// from the book only if persist succeeds. It returns the number of evicted orders.
func (d *Dispatcher) ArchiveConfirmed(
	ctx context.Context,
	persist func(ctx context.Context, confirmed []*order.Order) error,
) (int, error) {
	var evicted int
	err := d.Do(ctx, func(ctx context.Context, book *order.Book) error {
		confirmed := book.Confirmed()
		if len(confirmed) == 0 {
			return nil
		}
		if err := persist(ctx, confirmed); err != nil {
			return err
		}

		ids := make([]order.ID, 0, len(confirmed))
		for _, o := range confirmed {
			ids = append(ids, o.ID())
		}
		evicted = book.Evict(ids...)
		return nil
	})
	return evicted, err
}
