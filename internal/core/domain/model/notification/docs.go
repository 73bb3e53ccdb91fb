// Package notification contains the per-recipient notification entity and
// the event kinds the marketplace fans out.
package notification
