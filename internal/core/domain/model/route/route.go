// Package route provides Route, the immutable path a route planner hands to a
// delivery unit.
package route

import (
	"errors"
	"fmt"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

// MinPoints is the smallest valid route: start and destination.
const MinPoints = 2

// ErrRouteIsNotConstructed is returned when a zero-value Route is used.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// Route is an ordered sequence of coordinates from start to destination, both
// endpoints included. A Route never changes after construction; Points returns a copy.
type Route struct {
	points []kernel.Coordinate
	guard  guard.ConstructorGuard
}

// NewRoute validates every point and copies the slice.
func NewRoute(points ...kernel.Coordinate) (Route, error) {
	if len(points) < MinPoints {
		return Route{}, errs.NewValueIsInvalidErrorWithCause(
			"route",
			fmt.Errorf("route needs at least %d points, got %d", MinPoints, len(points)),
		)
	}

	var pointErrs []error
	for i, p := range points {
		if err := p.Validate(); err != nil {
			pointErrs = append(pointErrs, fmt.Errorf("point %d: %w", i, err))
		}
	}
	if err := errors.Join(pointErrs...); err != nil {
		return Route{}, err
	}

	return Route{
		points: append([]kernel.Coordinate(nil), points...),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the Route was built by NewRoute.
func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// Start returns the first coordinate.
func (r Route) Start() kernel.Coordinate {
	return r.points[0]
}

// Destination returns the final coordinate.
func (r Route) Destination() kernel.Coordinate {
	return r.points[len(r.points)-1]
}

// Points returns a copy of the coordinates in travel order.
func (r Route) Points() []kernel.Coordinate {
	return append([]kernel.Coordinate(nil), r.points...)
}

// Len returns the number of coordinates.
func (r Route) Len() int {
	return len(r.points)
}

func (r Route) String() string {
	parts := make([]string, len(r.points))
	for i, p := range r.points {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, " -> ") + "]"
}
