// Package relayrepo persists relay point aggregates with GORM. Capacity
// pools are stored as child rows in relay_capacities so the saturation
// read model can aggregate them with plain SQL, while the weekly
// schedule travels as a jsonb document.
package relayrepo

import (
	"time"

	"github.com/google/uuid"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/relaypoint"
)

// RelayPointDTO represents the database structure for persisting relay
// points.
type RelayPointDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name        string      `gorm:"type:varchar(255)"`
	LocationLat float64     `gorm:"type:float8"`
	LocationLon float64     `gorm:"type:float8"`
	Schedule    []WindowDTO `gorm:"serializer:json;type:jsonb"`
	Version     int
	Capacities  []RelayCapacityDTO `gorm:"foreignKey:RelayPointID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for relay point entities.
func (RelayPointDTO) TableName() string {
	return "relay_points"
}

// WindowDTO represents one weekday opening window inside the schedule
// jsonb column. Minutes are counted from midnight.
type WindowDTO struct {
	Weekday     int `json:"weekday"`
	OpenMinute  int `json:"open_minute"`
	CloseMinute int `json:"close_minute"`
}

// RelayCapacityDTO represents one storage pool of a relay point.
type RelayCapacityDTO struct {
	RelayPointID uuid.UUID `gorm:"type:uuid;primaryKey"`
	StorageType  string    `gorm:"type:varchar(32);primaryKey"`
	Total        int
	Used         int
}

// TableName specifies the database table name for capacity pools.
func (RelayCapacityDTO) TableName() string {
	return "relay_capacities"
}

// fromDomain converts a relay point aggregate to its database
// representation.
func fromDomain(aggregate *relaypoint.RelayPoint) RelayPointDTO {
	id := aggregate.ID().Bytes()

	windows := make([]WindowDTO, 0, len(aggregate.Schedule().Windows()))
	for weekday, window := range aggregate.Schedule().Windows() {
		windows = append(windows, WindowDTO{
			Weekday:     int(weekday),
			OpenMinute:  window.OpenMinute(),
			CloseMinute: window.CloseMinute(),
		})
	}

	capacities := make([]RelayCapacityDTO, 0, len(aggregate.Capacities()))
	for _, capacity := range aggregate.Capacities() {
		capacities = append(capacities, RelayCapacityDTO{
			RelayPointID: id,
			StorageType:  capacity.StorageType().String(),
			Total:        capacity.Total(),
			Used:         capacity.Used(),
		})
	}

	return RelayPointDTO{
		ID:          id,
		Name:        aggregate.Name(),
		LocationLat: aggregate.Location().Latitude(),
		LocationLon: aggregate.Location().Longitude(),
		Schedule:    windows,
		Version:     aggregate.Version(),
		Capacities:  capacities,
	}
}

// toDomain converts a database DTO back into a relay point aggregate.
func toDomain(dto RelayPointDTO) (*relaypoint.RelayPoint, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.LocationLat, dto.LocationLon)
	if err != nil {
		return nil, err
	}

	windows := make(map[time.Weekday]relaypoint.TimeWindow, len(dto.Schedule))
	for _, windowDTO := range dto.Schedule {
		window, windowErr := relaypoint.NewTimeWindow(windowDTO.OpenMinute, windowDTO.CloseMinute)
		if windowErr != nil {
			return nil, windowErr
		}
		windows[time.Weekday(windowDTO.Weekday)] = window
	}
	schedule, err := relaypoint.NewSchedule(windows)
	if err != nil {
		return nil, err
	}

	capacities := make([]relaypoint.StorageCapacity, 0, len(dto.Capacities))
	for _, capacityDTO := range dto.Capacities {
		storageType, stErr := relaypoint.StorageTypeFromString(capacityDTO.StorageType)
		if stErr != nil {
			return nil, stErr
		}
		capacity, capErr := relaypoint.RestoreStorageCapacity(storageType, capacityDTO.Total, capacityDTO.Used)
		if capErr != nil {
			return nil, capErr
		}
		capacities = append(capacities, capacity)
	}

	return relaypoint.RestoreRelayPoint(id, dto.Name, location, schedule, capacities, dto.Version)
}
