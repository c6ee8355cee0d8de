// Package driver contains the Driver aggregate: a courier with a live
// location, an availability flag, a vehicle, an optional cold box and a
// bounded count of concurrently active orders.
//
// The active-order count is the aggregate's hard invariant: it never
// exceeds the configured maximum and never goes negative. The dispatch
// engine is the only writer, through TakeOrder and CompleteOrder.
package driver
