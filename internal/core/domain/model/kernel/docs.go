// Package kernel contains shared value objects used across domain aggregates.
//
// The kernel holds the building blocks every aggregate depends on: the UUID
// identifier wrapper and the GeoPoint coordinate pair. These types are
// immutable value objects with validating constructors; their zero values are
// invalid and fail Validate, which keeps improperly initialized identifiers
// and coordinates from leaking into aggregates.
package kernel
