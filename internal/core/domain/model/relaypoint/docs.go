// Package relaypoint contains the RelayPoint aggregate: a pickup relay
// with per-storage-type slot pools and a weekly opening schedule.
//
// The slot pools are the system's capacity ledger. The bounds
// 0 <= used <= total are enforced on every reserve and release: a reserve
// against a full pool is rejected and a release against an empty pool is
// a surfaced logic error, never a silent clamp.
package relaypoint
