package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetRelaySaturationQueryIsNotConstructed = errors.New(
	"GetRelaySaturationQuery must be created via NewGetRelaySaturationQuery constructor",
)

// GetRelaySaturationQuery retrieves the slot usage of every relay point,
// flagging pools close to capacity so operations can re-route deposits
// before they start failing.
type GetRelaySaturationQuery struct {
	guard guard.ConstructorGuard
}

// NewGetRelaySaturationQuery creates a query for relay slot usage.
func NewGetRelaySaturationQuery() GetRelaySaturationQuery {
	return GetRelaySaturationQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetRelaySaturationQuery) Validate() error {
	return q.guard.Validate(ErrGetRelaySaturationQueryIsNotConstructed)
}

// GetRelaySaturationQueryResponse is one slot pool's usage.
type GetRelaySaturationQueryResponse struct {
	RelayPointID  kernel.UUID
	RelayName     string
	StorageType   string
	Total         int
	Used          int
	Saturation    float64
	NearSaturated bool
}
