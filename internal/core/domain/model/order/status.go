package order

import (
	"fmt"

	"parcelflow/internal/pkg/errs"
)

// Status is the lifecycle state of an order as the dispatcher last recorded it.
//
// State transitions:
//
//	(absent) ──> Pending ──> Assigned ──> Navigating ──> Delivered ──> Confirmed
//	                  └───────────┴─────────────┴──────────────┘
//	               (any reported status may overwrite a non-terminal one)
//
// Confirmed is terminal. Status values travel on the wire as their lower-case names,
// so the type is string-backed; unrecognised names are kept as-is by Parse callers
// that choose to ignore them rather than reject them.
type Status string

const (
	// Unknown is the zero value and never a valid recorded status.
	Unknown Status = ""

	// Pending is recorded when the dispatcher accepts a delivery request.
	Pending Status = "pending"

	// Assigned means the delivery unit accepted the order.
	Assigned Status = "assigned"

	// Navigating means the delivery unit is following a route for the order.
	Navigating Status = "navigating"

	// Delivered means the delivery unit reached the destination.
	Delivered Status = "delivered"

	// Confirmed means the customer acknowledged the delivery. Terminal.
	Confirmed Status = "confirmed"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:    {},
		Assigned:   {},
		Navigating: {},
		Delivered:  {},
		Confirmed:  {},
	}
}

// reportableStatuses are the values a delivery unit may send in a status update.
func reportableStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Assigned:   {},
		Navigating: {},
		Delivered:  {},
	}
}

// ParseStatus converts a wire value into a Status, rejecting unknown names.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return Unknown, err
	}
	return status, nil
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// ValidateReported checks that s may arrive in a status update from the delivery unit.
// Pending and Confirmed are owned by the dispatcher and cannot be reported.
func (s Status) ValidateReported() error {
	if _, ok := reportableStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a status a delivery unit can report", string(s)),
		)
	}
	return nil
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == Confirmed
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == Unknown {
		return "unknown"
	}
	return string(s)
}
