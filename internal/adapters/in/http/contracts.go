package http

import "time"

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPoint carries WGS84 coordinates on the wire.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewOrderItem is one line item of an order creation request.
type NewOrderItem struct {
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	RequiresColdChain bool   `json:"requires_cold_chain"`
}

// NewOrder is the request body for POST /api/v1/orders.
type NewOrder struct {
	DeliveryType     string         `json:"delivery_type"`
	Origin           GeoPoint       `json:"origin"`
	Destination      GeoPoint       `json:"destination"`
	Items            []NewOrderItem `json:"items"`
	TotalAmountCents int64          `json:"total_amount_cents"`
}

// NewDriver is the request body for POST /api/v1/drivers.
// MaxActiveOrders of zero means the fleet default.
type NewDriver struct {
	Name            string   `json:"name"`
	VehicleType     string   `json:"vehicle_type"`
	HasColdBox      bool     `json:"has_cold_box"`
	Location        GeoPoint `json:"location"`
	MaxActiveOrders int      `json:"max_active_orders"`
}

// ScheduleWindow is one weekday opening window. Minutes count from
// midnight; the window opens inclusive and closes exclusive.
type ScheduleWindow struct {
	Weekday     int `json:"weekday"`
	OpenMinute  int `json:"open_minute"`
	CloseMinute int `json:"close_minute"`
}

// NewCapacityPool is one storage pool of a relay point request.
type NewCapacityPool struct {
	StorageType string `json:"storage_type"`
	TotalSlots  int    `json:"total_slots"`
}

// NewRelayPoint is the request body for POST /api/v1/relay-points.
type NewRelayPoint struct {
	Name       string            `json:"name"`
	Location   GeoPoint          `json:"location"`
	Schedule   []ScheduleWindow  `json:"schedule"`
	Capacities []NewCapacityPool `json:"capacities"`
}

// CreatedResponse returns the identifier of a freshly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// AdvanceOrder is the request body for POST /api/v1/orders/:id/advance.
type AdvanceOrder struct {
	Action    string `json:"action"`
	ActorRole string `json:"actor_role"`
	ActorID   string `json:"actor_id"`
}

// AssignOrder is the request body for the manual assignment override.
type AssignOrder struct {
	DriverID string `json:"driver_id"`
}

// RelayDeposit is the request body for POST
// /api/v1/orders/:id/relay/deposit.
type RelayDeposit struct {
	DriverID string `json:"driver_id"`
}

// DriverLocation is the request body for PUT
// /api/v1/drivers/:id/location.
type DriverLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DriverAvailability is the request body for PUT
// /api/v1/drivers/:id/availability.
type DriverAvailability struct {
	Available bool `json:"available"`
}

// DispatchRunResult summarizes one batch dispatch run.
type DispatchRunResult struct {
	AssignedCount      int     `json:"assigned_count"`
	UnassignedCount    int     `json:"unassigned_count"`
	AvgOrdersPerDriver float64 `json:"avg_orders_per_driver"`
}

// ReadyOrder is one dispatch backlog entry.
type ReadyOrder struct {
	ID           string    `json:"id"`
	DeliveryType string    `json:"delivery_type"`
	Destination  GeoPoint  `json:"destination"`
	ReadyAt      time.Time `json:"ready_at"`
}

// AvailableDriver is one fleet roster entry.
type AvailableDriver struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	VehicleType     string   `json:"vehicle_type"`
	HasColdBox      bool     `json:"has_cold_box"`
	Location        GeoPoint `json:"location"`
	ActiveOrders    int      `json:"active_orders"`
	MaxActiveOrders int      `json:"max_active_orders"`
}

// RelaySaturation is one slot pool's usage report.
type RelaySaturation struct {
	RelayPointID  string  `json:"relay_point_id"`
	RelayName     string  `json:"relay_name"`
	StorageType   string  `json:"storage_type"`
	TotalSlots    int     `json:"total_slots"`
	UsedSlots     int     `json:"used_slots"`
	Saturation    float64 `json:"saturation"`
	NearSaturated bool    `json:"near_saturated"`
}
