package kernel

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrCoordinateIsNotConstructed is returned when a zero-value Coordinate is used.
var ErrCoordinateIsNotConstructed = errs.NewValueIsRequiredError(
	"coordinate must be created via NewCoordinate or MustNewCoordinate constructors")

// Coordinate is an immutable (latitude, longitude) pair.
//
// Equality is exact value equality with no tolerance: the delivery unit decides it has
// arrived only when the last point of a route is the very same coordinate as the
// destination it was given. Coordinates survive a JSON round trip unchanged, so values
// that travelled through messages still compare equal.
//
// Example:
//
//	dest, err := kernel.NewCoordinate(40.7128, -74.0060)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(dest) // Output: (40.7128,-74.006)
type Coordinate struct {
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewCoordinate creates a Coordinate after checking both components are finite and
// within [LatitudeMin..LatitudeMax] and [LongitudeMin..LongitudeMax].
// Errors for both components are joined so a caller sees every problem at once.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	c := Coordinate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setLat(lat), c.setLon(lon)); err != nil {
		return Coordinate{}, err
	}

	return c, nil
}

// MustNewCoordinate is NewCoordinate for compile-time constants; it panics on invalid input.
func MustNewCoordinate(lat, lon float64) Coordinate {
	c, err := NewCoordinate(lat, lon)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate reports whether the Coordinate was built by a constructor.
func (c Coordinate) Validate() error {
	return c.guard.Validate(ErrCoordinateIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (c Coordinate) Lat() float64 {
	return c.lat
}

// Lon returns the longitude in degrees.
func (c Coordinate) Lon() float64 {
	return c.lon
}

// IsEqual reports exact equality of both components.
// Two zero values are equal; a zero value never equals a constructed coordinate.
func (c Coordinate) IsEqual(other Coordinate) bool {
	return c == other
}

// String implements fmt.Stringer, e.g. "(40.7128,-74.006)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%s,%s)",
		strconv.FormatFloat(c.lat, 'f', -1, 64),
		strconv.FormatFloat(c.lon, 'f', -1, 64))
}

func (c *Coordinate) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	c.lat = lat
	return nil
}

func (c *Coordinate) setLon(lon float64) error {
	if math.IsNaN(lon) || lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lon", lon, LongitudeMin, LongitudeMax)
	}

	c.lon = lon
	return nil
}
