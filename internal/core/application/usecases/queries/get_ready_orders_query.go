// Package queries contains the read side of the CQRS split: thin
// GORM-backed read models serving the polling surfaces. Queries bypass
// the aggregates and read the tables directly.
package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetReadyOrdersQueryIsNotConstructed = errors.New(
	"GetReadyOrdersQuery must be created via NewGetReadyOrdersQuery constructor",
)

// GetReadyOrdersQuery retrieves the orders waiting for dispatch. This is
// the poll the vendor dashboard and the dispatch monitor refresh on;
// there is no push channel.
type GetReadyOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetReadyOrdersQuery creates a query for the dispatch backlog.
func NewGetReadyOrdersQuery() GetReadyOrdersQuery {
	return GetReadyOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetReadyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyOrdersQueryIsNotConstructed)
}

// GetReadyOrdersQueryResponse is one backlog entry.
type GetReadyOrdersQueryResponse struct {
	ID           kernel.UUID
	DeliveryType string
	Destination  kernel.GeoPoint
	ReadyAt      time.Time
}
