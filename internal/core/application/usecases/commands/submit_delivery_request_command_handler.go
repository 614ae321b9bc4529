package commands

import (
	"context"
)

// SubmitDeliveryRequestCommandHandler forwards a validated request to the customer
// agent. The request itself travels asynchronously; Handle returns once the
// customer has sent it.
type SubmitDeliveryRequestCommandHandler struct {
	customer DeliveryRequester
}

// NewSubmitDeliveryRequestCommandHandler creates the handler.
func NewSubmitDeliveryRequestCommandHandler(customer DeliveryRequester) SubmitDeliveryRequestCommandHandler {
	return SubmitDeliveryRequestCommandHandler{customer: customer}
}

// Handle validates cmd and asks the customer to send the delivery request.
func (h SubmitDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd SubmitDeliveryRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.customer.RequestDelivery(ctx, cmd.OrderID(), cmd.Destination())
}
