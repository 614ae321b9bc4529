package messages

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/route"
	"parcelflow/internal/pkg/errs"
)

// Type is the discriminator written to the "type" field of every body.
type Type string

// Body types.
const (
	TypeDeliveryRequest   Type = "delivery_request"
	TypeAssignDelivery    Type = "assign_delivery"
	TypeRouteRequest      Type = "route_request"
	TypeRerouteRequest    Type = "reroute_request"
	TypeRouteResponse     Type = "route_response"
	TypeStatusUpdate      Type = "status_update"
	TypeDeliveryUpdate    Type = "delivery_update"
	TypeDeliveryConfirmed Type = "delivery_confirmed"
)

// Body is a message payload. Concrete body types implement the unexported isBody
// marker, which closes the set.
type Body interface {
	// Type returns the wire discriminator.
	Type() Type
	// Performative returns the performative envelopes carrying this body use.
	Performative() Performative
	// Validate checks required fields.
	Validate() error

	isBody()
}

// DeliveryRequest is sent by the customer to the dispatcher.
type DeliveryRequest struct {
	OrderID     order.ID
	Destination kernel.Coordinate
}

func (DeliveryRequest) Type() Type                 { return TypeDeliveryRequest }
func (DeliveryRequest) Performative() Performative { return Request }
func (DeliveryRequest) isBody()                    {}

func (b DeliveryRequest) Validate() error {
	return validateDestination(b.OrderID, b.Destination)
}

// AssignDelivery is sent by the dispatcher to the delivery unit.
type AssignDelivery struct {
	OrderID     order.ID
	Destination kernel.Coordinate
}

func (AssignDelivery) Type() Type                 { return TypeAssignDelivery }
func (AssignDelivery) Performative() Performative { return Request }
func (AssignDelivery) isBody()                    {}

func (b AssignDelivery) Validate() error {
	return validateDestination(b.OrderID, b.Destination)
}

// RouteRequest asks the route planner for a regular route.
type RouteRequest struct {
	OrderID     order.ID
	Start       kernel.Coordinate
	Destination kernel.Coordinate
}

func (RouteRequest) Type() Type                 { return TypeRouteRequest }
func (RouteRequest) Performative() Performative { return Request }
func (RouteRequest) isBody()                    {}

func (b RouteRequest) Validate() error {
	return validateLeg(b.OrderID, b.Start, b.Destination)
}

// RerouteRequest asks the route planner for an alternative route.
type RerouteRequest struct {
	OrderID     order.ID
	Start       kernel.Coordinate
	Destination kernel.Coordinate
}

func (RerouteRequest) Type() Type                 { return TypeRerouteRequest }
func (RerouteRequest) Performative() Performative { return Request }
func (RerouteRequest) isBody()                    {}

func (b RerouteRequest) Validate() error {
	return validateLeg(b.OrderID, b.Start, b.Destination)
}

// RouteResponse carries a computed route back to the requester.
type RouteResponse struct {
	OrderID order.ID
	Route   route.Route
}

func (RouteResponse) Type() Type                 { return TypeRouteResponse }
func (RouteResponse) Performative() Performative { return Inform }
func (RouteResponse) isBody()                    {}

func (b RouteResponse) Validate() error {
	return errors.Join(b.OrderID.Validate(), b.Route.Validate())
}

// StatusUpdate reports the delivery unit's progress on an order to the dispatcher.
type StatusUpdate struct {
	OrderID order.ID
	Status  order.Status
}

func (StatusUpdate) Type() Type                 { return TypeStatusUpdate }
func (StatusUpdate) Performative() Performative { return Inform }
func (StatusUpdate) isBody()                    {}

func (b StatusUpdate) Validate() error {
	return errors.Join(b.OrderID.Validate(), b.Status.ValidateReported())
}

// DeliveryUpdate forwards an order status to the customer. Status is kept verbatim
// so a customer can receive, and ignore, statuses it does not understand.
type DeliveryUpdate struct {
	OrderID order.ID
	Status  string
}

func (DeliveryUpdate) Type() Type                 { return TypeDeliveryUpdate }
func (DeliveryUpdate) Performative() Performative { return Inform }
func (DeliveryUpdate) isBody()                    {}

func (b DeliveryUpdate) Validate() error {
	var statusErr error
	if b.Status == "" {
		statusErr = errs.NewValueIsRequiredError("status")
	}
	return errors.Join(b.OrderID.Validate(), statusErr)
}

// DeliveryConfirmed is the customer's acknowledgement of a delivered order.
type DeliveryConfirmed struct {
	OrderID order.ID
}

func (DeliveryConfirmed) Type() Type                 { return TypeDeliveryConfirmed }
func (DeliveryConfirmed) Performative() Performative { return Inform }
func (DeliveryConfirmed) isBody()                    {}

func (b DeliveryConfirmed) Validate() error {
	return b.OrderID.Validate()
}

func validateDestination(id order.ID, destination kernel.Coordinate) error {
	var destErr error
	if err := destination.Validate(); err != nil {
		destErr = errs.NewValueIsRequiredErrorWithCause("destination", err)
	}
	return errors.Join(id.Validate(), destErr)
}

func validateLeg(id order.ID, start, destination kernel.Coordinate) error {
	var startErr error
	if err := start.Validate(); err != nil {
		startErr = errs.NewValueIsRequiredErrorWithCause("start", err)
	}
	return errors.Join(validateDestination(id, destination), startErr)
}
