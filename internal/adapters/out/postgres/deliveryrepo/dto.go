// Package deliveryrepo persists delivery legs with GORM.
package deliveryrepo

import (
	"github.com/google/uuid"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery
// legs. Each order carries at most one leg.
type DeliveryDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DriverID         uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress    string    `gorm:"type:varchar(512)"`
	PickupLat        float64   `gorm:"type:float8"`
	PickupLon        float64   `gorm:"type:float8"`
	DriverFeeCents   int64
	EstimatedMinutes int
}

// TableName specifies the database table name for delivery legs.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery leg to its database representation.
func fromDomain(entity *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:               entity.ID().Bytes(),
		OrderID:          entity.OrderID().Bytes(),
		DriverID:         entity.DriverID().Bytes(),
		PickupAddress:    entity.PickupAddress(),
		PickupLat:        entity.PickupPoint().Latitude(),
		PickupLon:        entity.PickupPoint().Longitude(),
		DriverFeeCents:   entity.DriverFeeCents(),
		EstimatedMinutes: entity.EstimatedMinutes(),
	}
}

// toDomain converts a database DTO back into a delivery leg.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	pickupPoint, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLon)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(id, orderID, driverID, dto.PickupAddress,
		pickupPoint, dto.DriverFeeCents, dto.EstimatedMinutes)
}
