package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/relaypoint"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreateRelayPointCommandIsNotConstructed = errors.New(
	"CreateRelayPointCommand must be created via NewCreateRelayPointCommand constructor",
)

// CreateRelayPointCommand registers a new relay point with its slot
// pools and weekly opening schedule.
type CreateRelayPointCommand struct {
	relayPointID kernel.UUID
	name         string
	location     kernel.GeoPoint
	schedule     relaypoint.Schedule
	capacities   []relaypoint.StorageCapacity

	guard guard.ConstructorGuard
}

// NewCreateRelayPointCommand creates a command to register a relay point.
func NewCreateRelayPointCommand(
	relayPointID kernel.UUID,
	name string,
	location kernel.GeoPoint,
	schedule relaypoint.Schedule,
	capacities []relaypoint.StorageCapacity,
) (CreateRelayPointCommand, error) {
	if err := relayPointID.Validate(); err != nil {
		return CreateRelayPointCommand{}, err
	}
	if name == "" {
		return CreateRelayPointCommand{}, errs.NewValueIsRequiredError("name")
	}
	if err := location.Validate(); err != nil {
		return CreateRelayPointCommand{}, err
	}
	if len(capacities) == 0 {
		return CreateRelayPointCommand{}, errs.NewValueIsRequiredError("capacities")
	}

	return CreateRelayPointCommand{
		relayPointID: relayPointID,
		name:         name,
		location:     location,
		schedule:     schedule,
		capacities:   capacities,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RelayPointID returns the identifier the new relay point will carry.
func (c *CreateRelayPointCommand) RelayPointID() kernel.UUID {
	return c.relayPointID
}

// Name returns the relay point's display name.
func (c *CreateRelayPointCommand) Name() string {
	return c.name
}

// Location returns the relay point's position.
func (c *CreateRelayPointCommand) Location() kernel.GeoPoint {
	return c.location
}

// Schedule returns the weekly opening schedule.
func (c *CreateRelayPointCommand) Schedule() relaypoint.Schedule {
	return c.schedule
}

// Capacities returns the slot pools to create.
func (c *CreateRelayPointCommand) Capacities() []relaypoint.StorageCapacity {
	return c.capacities
}

// Validate ensures the command was created through the constructor.
func (c *CreateRelayPointCommand) Validate() error {
	return c.guard.Validate(ErrCreateRelayPointCommandIsNotConstructed)
}
