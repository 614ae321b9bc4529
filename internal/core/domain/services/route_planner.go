package services

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/route"
)

// Fixed intermediate waypoints used by the stub planner.
var (
	// PrimaryWaypoint is the middle point of every regular route.
	PrimaryWaypoint = kernel.MustNewCoordinate(40.7214, -74.0005)

	// AlternativeWaypoint is the middle point of every alternative route.
	AlternativeWaypoint = kernel.MustNewCoordinate(40.717, -74.003)
)

// RoutePlanner is a stateless domain service that computes delivery routes.
//
// It is not a path-finding engine: every route is the start, one fixed waypoint and
// the destination. The two waypoints differ so that a rerouted order visibly follows
// a different path.
//
// Business rules:
//   - Start and destination must be constructed, in-range coordinates
//   - Results are deterministic for the same input
//   - The returned route always ends exactly at the requested destination
//
// Example usage:
//
//	planner := NewRoutePlanner()
//	r, err := planner.ComputeRoute(start, destination)
//	if err != nil {
//	    // invalid coordinates
//	    return
//	}
//	// r.Points() == [start, PrimaryWaypoint, destination]
type RoutePlanner struct{}

// NewRoutePlanner creates a new RoutePlanner instance.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// ComputeRoute returns [start, PrimaryWaypoint, destination].
func (p RoutePlanner) ComputeRoute(start, destination kernel.Coordinate) (route.Route, error) {
	return p.compute(start, PrimaryWaypoint, destination)
}

// ComputeAlternativeRoute returns [start, AlternativeWaypoint, destination].
func (p RoutePlanner) ComputeAlternativeRoute(start, destination kernel.Coordinate) (route.Route, error) {
	return p.compute(start, AlternativeWaypoint, destination)
}

func (p RoutePlanner) compute(start, via, destination kernel.Coordinate) (route.Route, error) {
	if err := errors.Join(start.Validate(), destination.Validate()); err != nil {
		return route.Route{}, err
	}
	return route.NewRoute(start, via, destination)
}
