package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/participant"
)

// ParticipantDirectory resolves order parties to their display identities.
// Identity management itself lives outside this system; fan-out only needs
// usernames for message templates.
type ParticipantDirectory interface {
	// Add persists a participant record.
	Add(ctx context.Context, aggregate *participant.Participant) error

	// Get retrieves a participant by identifier.
	// Returns an object-not-found error for unknown participants; fan-out
	// callers treat that as "skip this recipient", not a failure.
	Get(ctx context.Context, id kernel.UUID) (*participant.Participant, error)
}
