package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/relaypoint"
)

// GetRelaySaturationQueryHandler reads slot usage across all relay
// points, most saturated pools first.
type GetRelaySaturationQueryHandler struct {
	db *gorm.DB
}

// NewGetRelaySaturationQueryHandler creates a handler for saturation
// queries.
func NewGetRelaySaturationQueryHandler(db *gorm.DB) GetRelaySaturationQueryHandler {
	return GetRelaySaturationQueryHandler{db: db}
}

// Handle returns one row per slot pool with its saturation ratio.
func (h GetRelaySaturationQueryHandler) Handle(
	ctx context.Context,
	query GetRelaySaturationQuery,
) ([]GetRelaySaturationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetRelaySaturationQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			rp.id,
			rp.name,
			rc.storage_type,
			rc.total,
			rc.used
		FROM relay_capacities rc
		JOIN relay_points rp ON rp.id = rc.relay_point_id
		ORDER BY rc.used::float8 / rc.total DESC, rp.id, rc.storage_type
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetRelaySaturationQueryResponse
		var id uuid.UUID

		if err := rows.Scan(&id, &resp.RelayName, &resp.StorageType,
			&resp.Total, &resp.Used); err != nil {
			return nil, err
		}

		relayID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		resp.RelayPointID = relayID
		if resp.Total > 0 {
			resp.Saturation = float64(resp.Used) / float64(resp.Total)
		}
		resp.NearSaturated = resp.Saturation >= relaypoint.NearSaturatedThreshold

		responses = append(responses, resp)
	}

	return responses, rows.Err()
}
