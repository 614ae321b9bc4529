package agents

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/unit"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
)

// DefaultUnitPosition is where the delivery unit starts.
var DefaultUnitPosition = kernel.MustNewCoordinate(40.73, -73.995)

// DeliveryUnitConfig addresses the unit's peers and sets its simulation inputs.
type DeliveryUnitConfig struct {
	Address      messages.Address
	Dispatcher   messages.Address
	RoutePlanner messages.Address
	// Position is the starting position. The zero value selects DefaultUnitPosition.
	Position    kernel.Coordinate
	Traffic     services.TrafficPolicy
	IdleTimeout time.Duration
}

func (c DeliveryUnitConfig) withDefaults() DeliveryUnitConfig {
	if c.Address == "" {
		c.Address = messages.DeliveryUnitAddress
	}
	if c.Dispatcher == "" {
		c.Dispatcher = messages.DispatcherAddress
	}
	if c.RoutePlanner == "" {
		c.RoutePlanner = messages.RoutePlannerAddress
	}
	if c.Position.Validate() != nil {
		c.Position = DefaultUnitPosition
	}
	return c
}

// DeliveryUnit simulates the vehicle: it asks for routes, follows them, detects
// simulated traffic and reports delivery.
type DeliveryUnit struct {
	*Runtime[*unit.Unit]

	cfg DeliveryUnitConfig
}

// NewDeliveryUnit builds a delivery unit parked at cfg.Position.
func NewDeliveryUnit(cfg DeliveryUnitConfig, transport ports.Transport, logger *slog.Logger) (*DeliveryUnit, error) {
	cfg = cfg.withDefaults()

	state, err := unit.NewUnit(cfg.Position)
	if err != nil {
		return nil, err
	}

	du := &DeliveryUnit{cfg: cfg}
	rt, err := NewRuntime(cfg.Address, state, du.handle, transport, cfg.IdleTimeout, logger)
	if err != nil {
		return nil, err
	}
	du.Runtime = rt
	return du, nil
}

func (du *DeliveryUnit) handle(ctx context.Context, u *unit.Unit, env messages.Envelope) error {
	body, err := env.Decode()
	if err != nil {
		return err
	}

	switch b := body.(type) {
	case messages.AssignDelivery:
		return du.onAssignDelivery(ctx, u, b)
	case messages.RouteResponse:
		return du.onRouteResponse(ctx, u, b)
	default:
		return unexpected(body)
	}
}

func (du *DeliveryUnit) onAssignDelivery(ctx context.Context, u *unit.Unit, b messages.AssignDelivery) error {
	start, err := u.Assign(b.OrderID, b.Destination)
	if errors.Is(err, unit.ErrOrderAlreadyKnown) {
		du.logger.InfoContext(ctx, "Duplicate assignment ignored", "order_id", b.OrderID.String())
		return nil
	}
	if err != nil {
		return err
	}

	du.logger.InfoContext(ctx, "Order assigned, requesting route",
		"order_id", b.OrderID.String(),
		"start", start.String(),
		"destination", b.Destination.String(),
	)
	return du.send(ctx, du.cfg.RoutePlanner, messages.RouteRequest{
		OrderID:     b.OrderID,
		Start:       start,
		Destination: b.Destination,
	})
}

func (du *DeliveryUnit) onRouteResponse(ctx context.Context, u *unit.Unit, b messages.RouteResponse) error {
	out, err := u.ApplyRoute(b.OrderID, b.Route, du.cfg.Traffic.IsFlagged(b.OrderID))
	if err != nil {
		return err
	}

	du.logger.InfoContext(ctx, "Route received",
		"order_id", b.OrderID.String(),
		"route", b.Route.String(),
		"attempts", out.Attempts,
		"decision", out.Decision.String(),
	)

	switch out.Decision {
	case unit.DecisionReroute:
		du.logger.InfoContext(ctx, "Traffic detected, requesting reroute", "order_id", b.OrderID.String())
		return du.send(ctx, du.cfg.RoutePlanner, messages.RerouteRequest{
			OrderID:     b.OrderID,
			Start:       out.RerouteStart,
			Destination: out.Destination,
		})

	case unit.DecisionReportDelivered:
		if err := du.send(ctx, du.cfg.Dispatcher, messages.StatusUpdate{
			OrderID: b.OrderID,
			Status:  order.Delivered,
		}); err != nil {
			return err
		}
		return u.MarkDelivered(b.OrderID)

	default:
		return nil
	}
}

// UnitView is a read-only copy of the delivery unit's beliefs.
type UnitView struct {
	Position        kernel.Coordinate
	TrafficDetected bool
	Desire          order.ID
	Intentions      []unit.Intention
}

// View returns a copy of the unit's beliefs.
func (du *DeliveryUnit) View(ctx context.Context) (UnitView, error) {
	var v UnitView
	err := du.Do(ctx, func(_ context.Context, u *unit.Unit) error {
		desire, _ := u.Desire()
		v = UnitView{
			Position:        u.Position(),
			TrafficDetected: u.TrafficDetected(),
			Desire:          desire,
			Intentions:      u.Intentions(),
		}
		return nil
	})
	return v, err
}

// Progress returns the unit's entry for id.
func (du *DeliveryUnit) Progress(ctx context.Context, id order.ID) (unit.Progress, bool, error) {
	var (
		p  unit.Progress
		ok bool
	)
	err := du.Do(ctx, func(_ context.Context, u *unit.Unit) error {
		p, ok = u.Progress(id)
		return nil
	})
	return p, ok, err
}
