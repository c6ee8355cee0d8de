// Package driverrepo persists driver aggregates with GORM.
package driverrepo

import (
	"github.com/google/uuid"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
)

// DriverDTO represents the database structure for persisting drivers.
type DriverDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255)"`
	VehicleType     string    `gorm:"type:varchar(32)"`
	HasColdBox      bool
	LocationLat     float64 `gorm:"type:float8"`
	LocationLon     float64 `gorm:"type:float8"`
	Available       bool    `gorm:"index"`
	ActiveOrders    int
	MaxActiveOrders int
	Version         int
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		VehicleType:     aggregate.VehicleType().String(),
		HasColdBox:      aggregate.HasColdBox(),
		LocationLat:     aggregate.Location().Latitude(),
		LocationLon:     aggregate.Location().Longitude(),
		Available:       aggregate.IsAvailable(),
		ActiveOrders:    aggregate.ActiveOrders(),
		MaxActiveOrders: aggregate.MaxActiveOrders(),
		Version:         aggregate.Version(),
	}
}

// toDomain converts a database DTO back into a driver aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicleType, err := driver.VehicleTypeFromString(dto.VehicleType)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.LocationLat, dto.LocationLon)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(id, dto.Name, vehicleType, dto.HasColdBox,
		location, dto.Available, dto.ActiveOrders, dto.MaxActiveOrders, dto.Version)
}
