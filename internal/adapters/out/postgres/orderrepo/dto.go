// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It converts between the order aggregate and its
// relational representation, including the per-status timestamp columns
// and the optimistic-lock version.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Every lifecycle state has its own nullable timestamp column
// so the read side can sort and audit without unpacking a blob.
type OrderDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	DeliveryType string      `gorm:"type:varchar(32)"`
	Origin       GeoPointDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination  GeoPointDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Items        []ItemDTO   `gorm:"serializer:json;type:jsonb"`
	TotalCents   int64       `gorm:"column:total_amount_cents"`
	Status       string      `gorm:"type:varchar(32);index"`
	DriverID     *uuid.UUID  `gorm:"type:uuid;index"`
	RelayID      *uuid.UUID  `gorm:"type:uuid;index"`
	Version      int

	PendingAt   *time.Time
	ConfirmedAt *time.Time
	PreparingAt *time.Time
	ReadyAt     *time.Time `gorm:"index"`
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	AtRelayAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents embedded WGS84 coordinates.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:float8"`
	Lon float64 `gorm:"type:float8"`
}

// ItemDTO represents one line item inside the items jsonb column.
type ItemDTO struct {
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	RequiresColdChain bool   `json:"requires_cold_chain"`
}

// timestampColumns pairs each status with its DTO column.
func (dto *OrderDTO) timestampColumns() map[order.Status]**time.Time {
	return map[order.Status]**time.Time{
		order.StatusPending:   &dto.PendingAt,
		order.StatusConfirmed: &dto.ConfirmedAt,
		order.StatusPreparing: &dto.PreparingAt,
		order.StatusReady:     &dto.ReadyAt,
		order.StatusAssigned:  &dto.AssignedAt,
		order.StatusPickedUp:  &dto.PickedUpAt,
		order.StatusInTransit: &dto.InTransitAt,
		order.StatusAtRelay:   &dto.AtRelayAt,
		order.StatusDelivered: &dto.DeliveredAt,
		order.StatusCancelled: &dto.CancelledAt,
	}
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}
	var relayID *uuid.UUID
	if id := aggregate.Relay(); id != nil {
		raw := id.Bytes()
		relayID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			Name:              item.Name(),
			Quantity:          item.Quantity(),
			RequiresColdChain: item.RequiresColdChain(),
		})
	}

	dto := OrderDTO{
		ID:           aggregate.ID().Bytes(),
		DeliveryType: aggregate.DeliveryType().String(),
		Origin: GeoPointDTO{
			Lat: aggregate.Origin().Latitude(),
			Lon: aggregate.Origin().Longitude(),
		},
		Destination: GeoPointDTO{
			Lat: aggregate.Destination().Latitude(),
			Lon: aggregate.Destination().Longitude(),
		},
		Items:      items,
		TotalCents: aggregate.TotalAmountCents(),
		Status:     aggregate.Status().String(),
		DriverID:   driverID,
		RelayID:    relayID,
		Version:    aggregate.Version(),
	}

	for status, column := range dto.timestampColumns() {
		if ts, ok := aggregate.TimestampFor(status); ok {
			stamped := ts
			*column = &stamped
		}
	}

	return dto
}

// toDomain converts a database DTO back into an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryType, err := order.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewGeoPoint(dto.Origin.Lat, dto.Origin.Lon)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewGeoPoint(dto.Destination.Lat, dto.Destination.Lon)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Name, itemDTO.Quantity, itemDTO.RequiresColdChain)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		parsed, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &parsed
	}
	var relayID *kernel.UUID
	if dto.RelayID != nil {
		parsed, relayErr := kernel.UUIDFromBytes((*dto.RelayID)[:])
		if relayErr != nil {
			return nil, relayErr
		}
		relayID = &parsed
	}

	timestamps := make(map[order.Status]time.Time)
	for status, column := range dto.timestampColumns() {
		if *column != nil {
			timestamps[status] = **column
		}
	}

	return order.RestoreOrder(id, deliveryType, origin, destination, items,
		dto.TotalCents, status, driverID, relayID, timestamps, dto.Version)
}
