// Package order contains the Order aggregate root and its lifecycle state
// machine.
//
// An order is created by the vendor-facing collaborator in pending status
// and only ever mutates through the aggregate's transition methods, which
// validate every move against the per-delivery-type successor table in
// Status. Each reached state stamps a timestamp, records a
// StatusChangedEvent, and relay deposits are coordinated with the relay
// point's capacity inside the same unit of work by the application layer.
//
// The aggregate carries an optimistic-lock version: the persistence adapter
// refuses to overwrite a row whose version moved since the aggregate was
// read, so concurrent writers lose with a stale-state error instead of
// silently clobbering a transition.
package order
