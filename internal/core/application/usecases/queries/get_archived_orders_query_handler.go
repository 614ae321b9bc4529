package queries

import (
	"context"
	"database/sql"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetArchivedOrdersQueryHandler reads the archive table directly, bypassing the
// repository and its aggregate reconstruction.
type GetArchivedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetArchivedOrdersQueryHandler creates the handler.
// Requires a GORM connection to the archive database.
func NewGetArchivedOrdersQueryHandler(db *gorm.DB) GetArchivedOrdersQueryHandler {
	return GetArchivedOrdersQueryHandler{db: db}
}

// Handle returns archived orders sorted by id.
func (h GetArchivedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetArchivedOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0)

	stmt := h.db.WithContext(ctx).
		Table("orders").
		Select("order_id, status, destination_lat, destination_lon, confirmed_at")
	if query.Status() != order.Unknown {
		stmt = stmt.Where("status = ?", string(query.Status()))
	}

	rows, err := stmt.Order("order_id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          string
			status      string
			lat, lon    sql.NullFloat64
			confirmedAt sql.NullTime
		)

		if err = rows.Scan(&id, &status, &lat, &lon, &confirmedAt); err != nil {
			return nil, err
		}

		resp := OrderResponse{
			ID:       order.ID(id),
			Status:   order.Status(status),
			Archived: true,
		}

		if lat.Valid && lon.Valid {
			dest, destErr := kernel.NewCoordinate(lat.Float64, lon.Float64)
			if destErr != nil {
				return nil, destErr
			}
			resp.Destination = &dest
		}

		if confirmedAt.Valid {
			at := confirmedAt.Time.In(time.UTC)
			resp.ConfirmedAt = &at
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
