package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lastmile/internal/core/domain/model/kernel"
)

// GetAvailableDriversQueryHandler reads the on-shift fleet from the
// drivers table.
type GetAvailableDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDriversQueryHandler creates a handler for fleet queries.
func NewGetAvailableDriversQueryHandler(db *gorm.DB) GetAvailableDriversQueryHandler {
	return GetAvailableDriversQueryHandler{db: db}
}

// Handle returns every available driver, least loaded first.
func (h GetAvailableDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDriversQuery,
) ([]GetAvailableDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetAvailableDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			vehicle_type,
			has_cold_box,
			location_lat,
			location_lon,
			active_orders,
			max_active_orders
		FROM drivers
		WHERE available
		ORDER BY active_orders, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableDriversQueryResponse
		var id uuid.UUID
		var lat, lon float64

		if err := rows.Scan(&id, &resp.Name, &resp.VehicleType, &resp.HasColdBox,
			&lat, &lon, &resp.ActiveOrders, &resp.MaxActiveOrders); err != nil {
			return nil, err
		}

		driverID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		location, err := kernel.NewGeoPoint(lat, lon)
		if err != nil {
			return nil, err
		}

		resp.ID = driverID
		resp.Location = location
		responses = append(responses, resp)
	}

	return responses, rows.Err()
}
