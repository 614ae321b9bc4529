package agents

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/domain/model/customer"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/ports"
)

// CustomerConfig addresses the customer's dispatcher.
type CustomerConfig struct {
	Address     messages.Address
	Dispatcher  messages.Address
	IdleTimeout time.Duration
}

// Customer originates delivery requests and confirms deliveries.
type Customer struct {
	*Runtime[*customer.Ledger]

	cfg CustomerConfig
}

// NewCustomer builds the customer agent.
func NewCustomer(cfg CustomerConfig, transport ports.Transport, logger *slog.Logger) (*Customer, error) {
	if cfg.Address == "" {
		cfg.Address = messages.CustomerAddress
	}
	if cfg.Dispatcher == "" {
		cfg.Dispatcher = messages.DispatcherAddress
	}

	c := &Customer{cfg: cfg}
	rt, err := NewRuntime(cfg.Address, customer.NewLedger(), c.handle, transport, cfg.IdleTimeout, logger)
	if err != nil {
		return nil, err
	}
	c.Runtime = rt
	return c, nil
}

// RequestDelivery sends a delivery request from the customer's own loop.
func (c *Customer) RequestDelivery(ctx context.Context, id order.ID, destination kernel.Coordinate) error {
	return c.Do(ctx, func(ctx context.Context, l *customer.Ledger) error {
		if err := c.send(ctx, c.cfg.Dispatcher, messages.DeliveryRequest{
			OrderID:     id,
			Destination: destination,
		}); err != nil {
			return err
		}

		l.Requested(id)
		c.logger.InfoContext(ctx, "Delivery requested",
			"order_id", id.String(),
			"destination", destination.String(),
		)
		return nil
	})
}

// Entry returns the customer's record of id.
func (c *Customer) Entry(ctx context.Context, id order.ID) (customer.Entry, bool, error) {
	var (
		e  customer.Entry
		ok bool
	)
	err := c.Do(ctx, func(_ context.Context, l *customer.Ledger) error {
		e, ok = l.Get(id)
		return nil
	})
	return e, ok, err
}

func (c *Customer) handle(ctx context.Context, l *customer.Ledger, env messages.Envelope) error {
	body, err := env.Decode()
	if err != nil {
		return err
	}

	b, ok := body.(messages.DeliveryUpdate)
	if !ok {
		return unexpected(body)
	}

	if !l.RecordUpdate(b.OrderID, b.Status) {
		c.logger.InfoContext(ctx, "Delivery update ignored", "order_id", b.OrderID.String(), "status", b.Status)
		return nil
	}

	if err := c.send(ctx, c.cfg.Dispatcher, messages.DeliveryConfirmed{OrderID: b.OrderID}); err != nil {
		return err
	}
	l.MarkConfirmed(b.OrderID)
	c.logger.InfoContext(ctx, "Delivery confirmed", "order_id", b.OrderID.String())
	return nil
}
