package unit

import (
	"parcelflow/internal/core/domain/model/kernel"
)

// Status is the delivery unit's own view of an order's progress.
type Status string

const (
	// Assigned means the order was accepted and a route was requested.
	Assigned Status = "assigned"
	// Navigating means at least one route response was processed.
	Navigating Status = "navigating"
	// Delivered means the delivered report was sent. Terminal.
	Delivered Status = "delivered"
)

// Intention is a queued next-action marker.
type Intention string

const (
	// IntentionNavigate is pushed when an order is accepted.
	IntentionNavigate Intention = "navigate"
	// IntentionReroute is pushed when simulated traffic forces a new route.
	IntentionReroute Intention = "reroute"
)

// Progress is the per-order entry of the unit's state table.
type Progress struct {
	status      Status
	attempts    int
	destination kernel.Coordinate
}

// Status returns the order's progress status.
func (p Progress) Status() Status {
	return p.status
}

// Attempts returns the number of route responses processed for the order.
func (p Progress) Attempts() int {
	return p.attempts
}

// Destination returns the destination stored when the order was assigned.
func (p Progress) Destination() kernel.Coordinate {
	return p.destination
}
