package order

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder, TrackFirstSeen or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsConfirmed is returned when a confirmed order is asked to change status.
	ErrOrderIsConfirmed = errors.New("order is already confirmed")
)

// Order is the dispatcher's record of one delivery order.
//
// The record is never a guess: its status is always either the status the
// dispatcher set itself (pending, confirmed) or the last status the delivery unit
// reported. Orders first seen through a status update or a confirmation have no
// known destination.
type Order struct {
	id          ID
	destination kernel.Coordinate
	status      Status
	confirmedAt time.Time

	isConstructed bool
}

// NewOrder records a freshly requested order in Pending status.
func NewOrder(id ID, destination kernel.Coordinate) (*Order, error) {
	if err := errors.Join(id.Validate(), destination.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		destination:   destination,
		status:        Pending,
		isConstructed: true,
	}, nil
}

// TrackFirstSeen creates a record for an id the dispatcher has never been asked to
// deliver. The record starts with no status and no destination.
func TrackFirstSeen(id ID) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		status:        Unknown,
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an Order from the archive.
// destination may be the zero Coordinate for orders that were first seen without one.
func RestoreOrder(id ID, destination kernel.Coordinate, status Status, confirmedAt time.Time) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		destination:   destination,
		status:        status,
		confirmedAt:   confirmedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() ID {
	return o.id
}

// Destination returns the requested destination and whether it is known.
func (o *Order) Destination() (kernel.Coordinate, bool) {
	return o.destination, o.destination.Validate() == nil
}

// Status returns the last recorded status.
func (o *Order) Status() Status {
	return o.status
}

// ConfirmedAt returns when the customer confirmed the delivery, or the zero time.
func (o *Order) ConfirmedAt() time.Time {
	return o.confirmedAt
}

// RecordStatus stores a status reported by the delivery unit.
//
// It returns the status recorded BEFORE this call, so a caller deciding whether to
// notify the customer reads the prior state rather than the value it just wrote.
// A confirmed order is left untouched and ErrOrderIsConfirmed is returned.
func (o *Order) RecordStatus(status Status) (Status, error) {
	if err := status.ValidateReported(); err != nil {
		return o.status, err
	}

	prior := o.status
	if prior.IsTerminal() {
		return prior, ErrOrderIsConfirmed
	}

	o.status = status
	return prior, nil
}

// Confirm moves the order to the terminal Confirmed status and returns the prior status.
// Confirming an already confirmed order keeps the original confirmation time.
func (o *Order) Confirm(at time.Time) Status {
	prior := o.status
	if prior.IsTerminal() {
		return prior
	}

	o.status = Confirmed
	o.confirmedAt = at
	return prior
}

// Clone returns an independent copy, used when the record leaves its owning actor.
func (o *Order) Clone() *Order {
	c := *o
	return &c
}
