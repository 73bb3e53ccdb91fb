// Package order contains the Order aggregate and its canonical status state
// machine.
//
// An order moves through four canonical statuses with a fixed total order:
//
//	Pending < Shipped < DriverDelivered < Delivered
//
// Three independent writers mutate order state: driver tracking pings, explicit
// status updates, and the buyer's delivery confirmation. Each entry point uses
// its own status vocabulary; all of them normalize into the canonical Status
// before any transition is attempted. The status may only move forward along
// the rank order; stale or repeated proposals are rejected, never applied
// backwards.
//
// The first arrival at DriverDelivered or Delivered is the terminal transition:
// it triggers inventory deduction and the delivered notification fan-out
// exactly once per order, guarded by the delivery-processed claim.
package order
