// Package product contains the Product aggregate and the free-form stock
// quantity parsing used by post-delivery inventory adjustment.
package product
