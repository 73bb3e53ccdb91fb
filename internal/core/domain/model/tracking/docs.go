// Package tracking contains the append-only location log model.
package tracking
