// Package services contains the pure domain services of the dispatch
// core: travel estimation (GeoEstimator), driver scoring
// (DispatchScorer), batch matching (DispatchPlanner) and relay-point
// selection (RelaySelector).
//
// All services are stateless and deterministic. They work on aggregate
// snapshots and never touch persistence; command handlers apply the
// resulting decisions inside a unit of work.
package services
