// Package orderrepo provides data transfer objects and mapping functions for the
// order archive. It converts between the order aggregate and its row in the
// "orders" table.
package orderrepo

import (
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
)

// OrderDTO represents the database structure of an archived order.
// Destination columns are nullable: orders first seen through a status update or a
// confirmation never had a known destination.
type OrderDTO struct {
	OrderID     string         `gorm:"column:order_id;primaryKey"`
	Destination DestinationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Status      string         `gorm:"index"`
	ConfirmedAt *time.Time
}

// TableName specifies the database table name for archived orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// DestinationDTO is the embedded destination coordinate.
type DestinationDTO struct {
	Lat *float64
	Lon *float64
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		OrderID: o.ID().String(),
		Status:  string(o.Status()),
	}

	if dest, ok := o.Destination(); ok {
		lat, lon := dest.Lat(), dest.Lon()
		dto.Destination = DestinationDTO{Lat: &lat, Lon: &lon}
	}

	if at := o.ConfirmedAt(); !at.IsZero() {
		utc := at.UTC()
		dto.ConfirmedAt = &utc
	}

	return dto
}

// toDomain rebuilds the order aggregate from a row using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := order.NewID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	var dest kernel.Coordinate
	if dto.Destination.Lat != nil && dto.Destination.Lon != nil {
		dest, err = kernel.NewCoordinate(*dto.Destination.Lat, *dto.Destination.Lon)
		if err != nil {
			return nil, err
		}
	}

	var confirmedAt time.Time
	if dto.ConfirmedAt != nil {
		confirmedAt = *dto.ConfirmedAt
	}

	return order.RestoreOrder(id, dest, order.Status(dto.Status), confirmedAt)
}
