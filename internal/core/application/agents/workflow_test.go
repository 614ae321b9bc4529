package agents_test

import (
	"testing"

	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/unit"
	"parcelflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_PlainDelivery(t *testing.T) {
	// Given
	s := newSystem(t, "ORD002")
	s.start(t)

	// When
	require.NoError(t, s.customer.RequestDelivery(t.Context(), "ORD001", nyc))

	// Then
	s.waitForStatus(t, "ORD001", order.Confirmed)

	assert.Equal(t, []messages.Type{
		messages.TypeDeliveryRequest,
		messages.TypeAssignDelivery,
		messages.TypeRouteRequest,
		messages.TypeRouteResponse,
		messages.TypeStatusUpdate,
		messages.TypeDeliveryUpdate,
		messages.TypeDeliveryConfirmed,
	}, s.transport.types(t, "ORD001"))

	bodies := s.transport.bodies(t, "ORD001")
	req := bodies[2].(messages.RouteRequest)
	assert.True(t, req.Start.IsEqual(kernel.MustNewCoordinate(40.73, -73.995)))
	resp := bodies[3].(messages.RouteResponse)
	assert.Equal(t, []kernel.Coordinate{req.Start, services.PrimaryWaypoint, nyc}, resp.Route.Points())
	assert.Equal(t, messages.StatusUpdate{OrderID: "ORD001", Status: order.Delivered}, bodies[4])

	p, ok, err := s.deliveryUnit.Progress(t.Context(), "ORD001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, unit.Delivered, p.Status())
	assert.Equal(t, 1, p.Attempts())

	view, err := s.deliveryUnit.View(t.Context())
	require.NoError(t, err)
	assert.True(t, view.Position.IsEqual(nyc))
	assert.False(t, view.TrafficDetected)
	assert.Empty(t, view.Intentions)
	assert.Empty(t, view.Desire)

	entry, ok, err := s.customer.Entry(t.Context(), "ORD001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, entry.Confirmed)
	assert.Equal(t, "delivered", entry.LastStatus)
}

func TestWorkflow_TrafficReroute(t *testing.T) {
	// Given
	s := newSystem(t, "ORD002")
	s.start(t)

	// When
	require.NoError(t, s.customer.RequestDelivery(t.Context(), "ORD002", nyc))

	// Then
	s.waitForStatus(t, "ORD002", order.Confirmed)

	assert.Equal(t, []messages.Type{
		messages.TypeDeliveryRequest,
		messages.TypeAssignDelivery,
		messages.TypeRouteRequest,
		messages.TypeRouteResponse,
		messages.TypeRerouteRequest,
		messages.TypeRouteResponse,
		messages.TypeStatusUpdate,
		messages.TypeDeliveryUpdate,
		messages.TypeDeliveryConfirmed,
	}, s.transport.types(t, "ORD002"), "reroute must come before any delivered report")

	bodies := s.transport.bodies(t, "ORD002")
	first := bodies[3].(messages.RouteResponse)
	assert.True(t, first.Route.Points()[1].IsEqual(services.PrimaryWaypoint))
	reroute := bodies[4].(messages.RerouteRequest)
	assert.True(t, reroute.Start.IsEqual(first.Route.Start()))
	assert.True(t, reroute.Destination.IsEqual(nyc))
	second := bodies[5].(messages.RouteResponse)
	assert.True(t, second.Route.Points()[1].IsEqual(services.AlternativeWaypoint))

	p, _, err := s.deliveryUnit.Progress(t.Context(), "ORD002")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Attempts())
	assert.Equal(t, unit.Delivered, p.Status())

	view, err := s.deliveryUnit.View(t.Context())
	require.NoError(t, err)
	assert.False(t, view.TrafficDetected, "traffic belief resets after the delivered report")
}

func TestWorkflow_BothScenarios(t *testing.T) {
	s := newSystem(t, "ORD002")
	s.start(t)

	require.NoError(t, s.customer.RequestDelivery(t.Context(), "ORD001", nyc))
	require.NoError(t, s.customer.RequestDelivery(t.Context(), "ORD002", nyc))

	s.waitForStatus(t, "ORD001", order.Confirmed)
	s.waitForStatus(t, "ORD002", order.Confirmed)

	orders, err := s.dispatcher.Orders(t.Context())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, order.ID("ORD001"), orders[0].ID())
	assert.Equal(t, order.ID("ORD002"), orders[1].ID())
}

func TestWorkflow_DuplicateRequestAssignsOnce(t *testing.T) {
	// Given
	s := newSystem(t)
	s.start(t)

	// When
	require.NoError(t, s.customer.RequestDelivery(t.Context(), "ORD001", nyc))
	require.NoError(t, s.customer.RequestDelivery(t.Context(), "ORD001", nyc))

	// Then
	s.waitForStatus(t, "ORD001", order.Confirmed)
	// Barrier: a later order's confirmation proves the duplicate was handled.
	require.NoError(t, s.customer.RequestDelivery(t.Context(), "ORD003", nyc))
	s.waitForStatus(t, "ORD003", order.Confirmed)

	assigns := 0
	for _, typ := range s.transport.types(t, "ORD001") {
		if typ == messages.TypeAssignDelivery {
			assigns++
		}
	}
	assert.Equal(t, 1, assigns)
}
