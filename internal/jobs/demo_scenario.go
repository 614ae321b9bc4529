package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/kernel"
)

// DefaultDemoStagger is the pause between the two demo requests.
const DefaultDemoStagger = 20 * time.Second

// DemoOrderIDs are requested in this order, one stagger apart.
var DemoOrderIDs = []string{"ORD001", "ORD002"}

// DemoDestination is where every demo order is delivered.
var DemoDestination = kernel.MustNewCoordinate(40.7128, -74.0060)

// DemoScenario has the customer request the demo orders one after another.
// With the default traffic policy ORD002 goes through a reroute.
type DemoScenario struct {
	handler commands.SubmitDeliveryRequestCommandHandler
	stagger time.Duration
	logger  *slog.Logger
}

// NewDemoScenario creates the scenario. A non-positive stagger falls back to
// DefaultDemoStagger.
func NewDemoScenario(
	handler commands.SubmitDeliveryRequestCommandHandler,
	stagger time.Duration,
	logger *slog.Logger,
) *DemoScenario {
	if stagger <= 0 {
		stagger = DefaultDemoStagger
	}

	return &DemoScenario{
		handler: handler,
		stagger: stagger,
		logger:  logger.With("component", "demo_scenario"),
	}
}

// Run submits the demo requests and returns after the last one or when ctx is done.
func (d *DemoScenario) Run(ctx context.Context) error {
	for i, id := range DemoOrderIDs {
		if i > 0 {
			timer := time.NewTimer(d.stagger)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		cmd, err := commands.NewSubmitDeliveryRequestCommand(id, DemoDestination)
		if err != nil {
			return err
		}

		if err = d.handler.Handle(ctx, cmd); err != nil {
			return err
		}
		d.logger.InfoContext(ctx, "Demo delivery requested", "order_id", id)
	}

	return nil
}
