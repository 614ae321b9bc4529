package messages

import (
	"strings"

	"parcelflow/internal/pkg/errs"
)

// Address is the stable string identity of an agent mailbox.
type Address string

// Well-known agent addresses.
const (
	CustomerAddress     Address = "customer"
	DispatcherAddress   Address = "dispatcher"
	DeliveryUnitAddress Address = "delivery_unit"
	RoutePlannerAddress Address = "route_planner"
)

// Validate rejects blank addresses.
func (a Address) Validate() error {
	if strings.TrimSpace(string(a)) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	return nil
}

func (a Address) String() string {
	return string(a)
}

// Performative marks the intent of an envelope.
type Performative string

const (
	// Request asks the recipient to act.
	Request Performative = "request"
	// Inform notifies the recipient of a fact.
	Inform Performative = "inform"
)

// Validate rejects anything but Request and Inform.
func (p Performative) Validate() error {
	switch p {
	case Request, Inform:
		return nil
	case "":
		return errs.NewValueIsRequiredError("performative")
	default:
		return errs.NewValueIsInvalidError("performative")
	}
}
