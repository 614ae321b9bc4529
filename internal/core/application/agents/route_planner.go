package agents

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
)

// RoutePlannerConfig configures the route planner agent.
type RoutePlannerConfig struct {
	Address     messages.Address
	IdleTimeout time.Duration
}

// RoutePlanner answers route and reroute requests. It keeps no state; every
// response goes back to the envelope's sender.
type RoutePlanner struct {
	*Runtime[struct{}]

	planner services.RoutePlanner
}

// NewRoutePlanner builds the route planner agent.
func NewRoutePlanner(cfg RoutePlannerConfig, transport ports.Transport, logger *slog.Logger) (*RoutePlanner, error) {
	if cfg.Address == "" {
		cfg.Address = messages.RoutePlannerAddress
	}

	rp := &RoutePlanner{planner: services.NewRoutePlanner()}
	rt, err := NewRuntime(cfg.Address, struct{}{}, rp.handle, transport, cfg.IdleTimeout, logger)
	if err != nil {
		return nil, err
	}
	rp.Runtime = rt
	return rp, nil
}

func (rp *RoutePlanner) handle(ctx context.Context, _ struct{}, env messages.Envelope) error {
	body, err := env.Decode()
	if err != nil {
		return err
	}

	var resp messages.RouteResponse
	switch b := body.(type) {
	case messages.RouteRequest:
		r, err := rp.planner.ComputeRoute(b.Start, b.Destination)
		if err != nil {
			return err
		}
		resp = messages.RouteResponse{OrderID: b.OrderID, Route: r}
	case messages.RerouteRequest:
		r, err := rp.planner.ComputeAlternativeRoute(b.Start, b.Destination)
		if err != nil {
			return err
		}
		resp = messages.RouteResponse{OrderID: b.OrderID, Route: r}
	default:
		return unexpected(body)
	}

	rp.logger.InfoContext(ctx, "Route computed",
		"order_id", resp.OrderID.String(),
		"kind", string(body.Type()),
		"route", resp.Route.String(),
	)
	return rp.send(ctx, env.From, resp)
}
