package messages

import (
	"bytes"
	"encoding/json"
	"fmt"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/route"
	"parcelflow/internal/pkg/errs"

	"github.com/samber/lo"
)

type wireCoordinate struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type wireBody struct {
	Type        Type             `json:"type"`
	OrderID     string           `json:"order_id"`
	Destination *wireCoordinate  `json:"destination,omitempty"`
	Start       *wireCoordinate  `json:"start,omitempty"`
	Route       []wireCoordinate `json:"route,omitempty"`
	Status      string           `json:"status,omitempty"`
}

// EncodeBody validates b and renders it as a JSON object.
func EncodeBody(b Body) (json.RawMessage, error) {
	if b == nil {
		return nil, errs.NewValueIsRequiredError("body")
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	w := wireBody{Type: b.Type()}
	switch v := b.(type) {
	case DeliveryRequest:
		w.OrderID, w.Destination = v.OrderID.String(), toWire(v.Destination)
	case AssignDelivery:
		w.OrderID, w.Destination = v.OrderID.String(), toWire(v.Destination)
	case RouteRequest:
		w.OrderID, w.Start, w.Destination = v.OrderID.String(), toWire(v.Start), toWire(v.Destination)
	case RerouteRequest:
		w.OrderID, w.Start, w.Destination = v.OrderID.String(), toWire(v.Start), toWire(v.Destination)
	case RouteResponse:
		w.OrderID = v.OrderID.String()
		w.Route = lo.Map(v.Route.Points(), func(c kernel.Coordinate, _ int) wireCoordinate {
			return *toWire(c)
		})
	case StatusUpdate:
		w.OrderID, w.Status = v.OrderID.String(), string(v.Status)
	case DeliveryUpdate:
		w.OrderID, w.Status = v.OrderID.String(), v.Status
	case DeliveryConfirmed:
		w.OrderID = v.OrderID.String()
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("body", fmt.Errorf("unsupported body %T", b))
	}

	raw, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", b.Type(), err)
	}
	return raw, nil
}

// DecodeBody parses a JSON object into its concrete Body and validates it.
// Unknown types, missing fields and out-of-range coordinates are rejected.
func DecodeBody(raw []byte) (Body, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errs.NewValueIsRequiredError("body")
	}

	var w wireBody
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	id, err := order.NewID(w.OrderID)
	if w.Type != "" && err != nil {
		return nil, err
	}

	var b Body
	switch w.Type {
	case "":
		return nil, errs.NewValueIsRequiredError("type")
	case TypeDeliveryRequest, TypeAssignDelivery:
		dest, err := fromWire("destination", w.Destination)
		if err != nil {
			return nil, err
		}
		if w.Type == TypeDeliveryRequest {
			b = DeliveryRequest{OrderID: id, Destination: dest}
		} else {
			b = AssignDelivery{OrderID: id, Destination: dest}
		}
	case TypeRouteRequest, TypeRerouteRequest:
		start, err := fromWire("start", w.Start)
		if err != nil {
			return nil, err
		}
		dest, err := fromWire("destination", w.Destination)
		if err != nil {
			return nil, err
		}
		if w.Type == TypeRouteRequest {
			b = RouteRequest{OrderID: id, Start: start, Destination: dest}
		} else {
			b = RerouteRequest{OrderID: id, Start: start, Destination: dest}
		}
	case TypeRouteResponse:
		points := make([]kernel.Coordinate, 0, len(w.Route))
		for i := range w.Route {
			c, err := fromWire(fmt.Sprintf("route[%d]", i), &w.Route[i])
			if err != nil {
				return nil, err
			}
			points = append(points, c)
		}
		r, err := route.NewRoute(points...)
		if err != nil {
			return nil, err
		}
		b = RouteResponse{OrderID: id, Route: r}
	case TypeStatusUpdate:
		if w.Status == "" {
			return nil, errs.NewValueIsRequiredError("status")
		}
		b = StatusUpdate{OrderID: id, Status: order.Status(w.Status)}
	case TypeDeliveryUpdate:
		b = DeliveryUpdate{OrderID: id, Status: w.Status}
	case TypeDeliveryConfirmed:
		b = DeliveryConfirmed{OrderID: id}
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("unknown message type %q", w.Type))
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func toWire(c kernel.Coordinate) *wireCoordinate {
	lat, lon := c.Lat(), c.Lon()
	return &wireCoordinate{Lat: &lat, Lon: &lon}
}

func fromWire(field string, w *wireCoordinate) (kernel.Coordinate, error) {
	if w == nil {
		return kernel.Coordinate{}, errs.NewValueIsRequiredError(field)
	}
	if w.Lat == nil {
		return kernel.Coordinate{}, errs.NewValueIsRequiredError(field + ".lat")
	}
	if w.Lon == nil {
		return kernel.Coordinate{}, errs.NewValueIsRequiredError(field + ".lon")
	}

	c, err := kernel.NewCoordinate(*w.Lat, *w.Lon)
	if err != nil {
		return kernel.Coordinate{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return c, nil
}
