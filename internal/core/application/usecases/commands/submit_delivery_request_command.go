package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/pkg/guard"
)

var ErrSubmitDeliveryRequestCommandIsNotConstructed = errors.New(
	"SubmitDeliveryRequestCommand must be created via NewSubmitDeliveryRequestCommand constructor",
)

// SubmitDeliveryRequestCommand asks the customer to request delivery of an order.
//
// Example:
//
//	dest, _ := kernel.NewCoordinate(40.7128, -74.0060)
//	cmd, err := NewSubmitDeliveryRequestCommand("ORD001", dest)
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	handler := NewSubmitDeliveryRequestCommandHandler(customer)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit request: %w", err)
//	}
type SubmitDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	orderID     order.ID
	destination kernel.Coordinate

	guard guard.ConstructorGuard
}

// NewSubmitDeliveryRequestCommand validates the order id and the destination.
func NewSubmitDeliveryRequestCommand(
	orderID string,
	destination kernel.Coordinate,
) (SubmitDeliveryRequestCommand, error) {
	cmd := SubmitDeliveryRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDestination(destination),
	); err != nil {
		return SubmitDeliveryRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrSubmitDeliveryRequestCommandIsNotConstructed)
}

// OrderID returns the order identifier.
func (c SubmitDeliveryRequestCommand) OrderID() order.ID {
	return c.orderID
}

// Destination returns the delivery destination.
func (c SubmitDeliveryRequestCommand) Destination() kernel.Coordinate {
	return c.destination
}

func (c *SubmitDeliveryRequestCommand) setOrderID(orderID string) error {
	id, err := order.NewID(orderID)
	if err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *SubmitDeliveryRequestCommand) setDestination(destination kernel.Coordinate) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}
