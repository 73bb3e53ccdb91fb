// Package participant models the display identity of order parties.
package participant
