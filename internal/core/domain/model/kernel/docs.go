// Package kernel contains the shared building blocks of the domain model:
// the UUID identity value object, the GeoPoint coordinate value object with
// great-circle distance, and the DomainEvent contract implemented by the
// events aggregates record.
//
// Everything in this package is an immutable value object. Zero values are
// invalid; construction goes through the New* functions, which validate
// their inputs and attach a ConstructorGuard.
package kernel
