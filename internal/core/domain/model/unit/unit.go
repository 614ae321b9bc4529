package unit

import (
	"errors"
	"fmt"
	"slices"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/route"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

// Domain errors for delivery unit operations.
var (
	// ErrUnitIsNotConstructed is returned when a zero-value Unit is used.
	ErrUnitIsNotConstructed = errors.New("Unit must be created via NewUnit constructor")
	// ErrOrderAlreadyKnown is returned when an order id is assigned twice.
	ErrOrderAlreadyKnown = errors.New("order is already known to the delivery unit")
	// ErrOrderAlreadyDelivered is returned when a route arrives for a delivered order.
	ErrOrderAlreadyDelivered = errors.New("order is already delivered")
)

// Decision tells the caller what ApplyRoute expects to happen next.
type Decision int

const (
	// DecisionContinue means keep waiting; the route did not end at the destination.
	DecisionContinue Decision = iota
	// DecisionReroute means simulated traffic was detected and an alternative route
	// must be requested before the order can be reported delivered.
	DecisionReroute
	// DecisionReportDelivered means the unit arrived and must report delivery,
	// then call MarkDelivered.
	DecisionReportDelivered
)

func (d Decision) String() string {
	switch d {
	case DecisionContinue:
		return "continue"
	case DecisionReroute:
		return "reroute"
	case DecisionReportDelivered:
		return "report_delivered"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Outcome is the result of processing one route response.
type Outcome struct {
	Decision Decision
	Attempts int
	// RerouteStart and Destination are set for DecisionReroute.
	RerouteStart kernel.Coordinate
	Destination  kernel.Coordinate
}

// Unit is the delivery unit's state table.
//
// Beliefs are the simulated position and the traffic flag, the desire is the order
// currently being delivered, intentions are queued next-action markers, and progress
// holds one entry per order ever assigned. A Unit belongs to exactly one delivery
// unit actor and is only touched from that actor's message loop.
type Unit struct {
	position        kernel.Coordinate
	trafficDetected bool
	desire          order.ID
	intentions      []Intention
	progress        map[order.ID]*Progress
	guard           guard.ConstructorGuard
}

// NewUnit creates a Unit parked at position.
func NewUnit(position kernel.Coordinate) (*Unit, error) {
	if err := position.Validate(); err != nil {
		return nil, err
	}

	return &Unit{
		position: position,
		progress: make(map[order.ID]*Progress),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the Unit was built by NewUnit.
func (u *Unit) Validate() error {
	if u == nil {
		return ErrUnitIsNotConstructed
	}
	return u.guard.Validate(ErrUnitIsNotConstructed)
}

// Position returns the current simulated position.
func (u *Unit) Position() kernel.Coordinate {
	return u.position
}

// TrafficDetected returns the traffic belief.
func (u *Unit) TrafficDetected() bool {
	return u.trafficDetected
}

// Desire returns the order currently being delivered, if any.
func (u *Unit) Desire() (order.ID, bool) {
	return u.desire, u.desire != ""
}

// Intentions returns a copy of the queued intentions.
func (u *Unit) Intentions() []Intention {
	return slices.Clone(u.intentions)
}

// Progress returns a copy of the entry for id.
func (u *Unit) Progress(id order.ID) (Progress, bool) {
	p, ok := u.progress[id]
	if !ok {
		return Progress{}, false
	}
	return *p, true
}

// Assign accepts a new order and returns the start coordinate for its first route.
// The destination is stored once and never changes for the order's lifetime.
func (u *Unit) Assign(id order.ID, destination kernel.Coordinate) (kernel.Coordinate, error) {
	if err := errors.Join(id.Validate(), destination.Validate()); err != nil {
		return kernel.Coordinate{}, err
	}
	if _, ok := u.progress[id]; ok {
		return kernel.Coordinate{}, ErrOrderAlreadyKnown
	}

	u.progress[id] = &Progress{
		status:      Assigned,
		destination: destination,
	}
	u.desire = id
	u.intentions = append(u.intentions, IntentionNavigate)

	return u.position, nil
}

// ApplyRoute processes one route response for id.
//
// The attempt counter grows by exactly one, the order becomes Navigating and the unit
// moves to the route's final coordinate. When trafficFlagged is set and this is the
// order's first route, the unit believes traffic was detected and asks for a reroute
// instead of considering delivery. Otherwise arriving at the stored destination asks
// the caller to report delivery.
//
// Routes for unknown or already delivered orders are rejected without touching state.
func (u *Unit) ApplyRoute(id order.ID, r route.Route, trafficFlagged bool) (Outcome, error) {
	if err := r.Validate(); err != nil {
		return Outcome{}, err
	}

	p, ok := u.progress[id]
	if !ok {
		return Outcome{}, errs.NewObjectNotFoundError("order_id", string(id))
	}
	if p.status == Delivered {
		return Outcome{}, ErrOrderAlreadyDelivered
	}

	p.attempts++
	p.status = Navigating
	u.position = r.Destination()

	if trafficFlagged && p.attempts == 1 {
		u.trafficDetected = true
		u.intentions = append(u.intentions, IntentionReroute)
		return Outcome{
			Decision:     DecisionReroute,
			Attempts:     p.attempts,
			RerouteStart: r.Start(),
			Destination:  p.destination,
		}, nil
	}

	if r.Destination().IsEqual(p.destination) {
		return Outcome{Decision: DecisionReportDelivered, Attempts: p.attempts}, nil
	}

	return Outcome{Decision: DecisionContinue, Attempts: p.attempts}, nil
}

// MarkDelivered records that the delivered report for id was sent and clears the
// desire, the traffic belief and the intentions.
func (u *Unit) MarkDelivered(id order.ID) error {
	p, ok := u.progress[id]
	if !ok {
		return errs.NewObjectNotFoundError("order_id", string(id))
	}
	if p.status == Delivered {
		return ErrOrderAlreadyDelivered
	}

	p.status = Delivered
	if u.desire == id {
		u.desire = ""
	}
	u.trafficDetected = false
	u.intentions = nil
	return nil
}
