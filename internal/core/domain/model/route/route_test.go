package route_test

import (
	"testing"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/route"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	start = kernel.MustNewCoordinate(40.73, -73.995)
	mid   = kernel.MustNewCoordinate(40.7214, -74.0005)
	dest  = kernel.MustNewCoordinate(40.7128, -74.0060)
)

func TestNewRoute(t *testing.T) {
	t.Run("keeps order and endpoints", func(t *testing.T) {
		r, err := route.NewRoute(start, mid, dest)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, 3, r.Len())
		assert.True(t, r.Start().IsEqual(start))
		assert.True(t, r.Destination().IsEqual(dest))
		assert.Equal(t, []kernel.Coordinate{start, mid, dest}, r.Points())
	})

	t.Run("too short", func(t *testing.T) {
		_, err := route.NewRoute(start)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero coordinate inside", func(t *testing.T) {
		_, err := route.NewRoute(start, kernel.Coordinate{}, dest)
		require.ErrorIs(t, err, kernel.ErrCoordinateIsNotConstructed)
	})
}

func TestRoute_IsImmutable(t *testing.T) {
	points := []kernel.Coordinate{start, mid, dest}
	r, err := route.NewRoute(points...)
	require.NoError(t, err)

	points[2] = start
	got := r.Points()
	got[0] = dest

	assert.True(t, r.Destination().IsEqual(dest))
	assert.True(t, r.Start().IsEqual(start))
}

func TestRoute_String(t *testing.T) {
	r, _ := route.NewRoute(start, dest)
	assert.Equal(t, "[(40.73,-73.995) -> (40.7128,-74.006)]", r.String())
}

func TestRoute_ZeroValue(t *testing.T) {
	var r route.Route
	require.ErrorIs(t, r.Validate(), route.ErrRouteIsNotConstructed)
}
