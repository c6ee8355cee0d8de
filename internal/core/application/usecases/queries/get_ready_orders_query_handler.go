package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// GetReadyOrdersQueryHandler reads the dispatch backlog straight from the
// orders table, oldest ready first.
type GetReadyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetReadyOrdersQueryHandler creates a handler for backlog queries.
func NewGetReadyOrdersQueryHandler(db *gorm.DB) GetReadyOrdersQueryHandler {
	return GetReadyOrdersQueryHandler{db: db}
}

// Handle returns every ready order, oldest ready timestamp first.
func (h GetReadyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetReadyOrdersQuery,
) ([]GetReadyOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetReadyOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_type,
			destination_lat,
			destination_lon,
			ready_at
		FROM orders
		WHERE status = ?
		ORDER BY ready_at
	`, order.StatusReady.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetReadyOrdersQueryResponse
		var id uuid.UUID
		var lat, lon float64

		if err := rows.Scan(&id, &resp.DeliveryType, &lat, &lon, &resp.ReadyAt); err != nil {
			return nil, err
		}

		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		destination, err := kernel.NewGeoPoint(lat, lon)
		if err != nil {
			return nil, err
		}

		resp.ID = orderID
		resp.Destination = destination
		responses = append(responses, resp)
	}

	return responses, rows.Err()
}
