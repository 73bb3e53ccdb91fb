// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the marketplace.
//
// The package includes:
//   - NotificationFanout: turns order lifecycle events into per-recipient notifications
//   - InventoryAdjuster: deducts delivered quantities from product stock
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
