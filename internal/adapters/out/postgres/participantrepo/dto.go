// Package participantrepo provides data transfer objects and mapping functions
// for the participant directory.
package participantrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/participant"

	"github.com/google/uuid"
)

// ParticipantDTO represents the database structure for persisting participants.
type ParticipantDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string    `gorm:"type:varchar(255);not null"`
	Role     string    `gorm:"type:varchar(32);not null"`
}

// TableName specifies the database table name for participant entities.
// Overrides GORM's default naming convention to use "participants".
func (ParticipantDTO) TableName() string {
	return "participants"
}

// fromDomain converts a participant to its database representation.
func fromDomain(aggregate *participant.Participant) ParticipantDTO {
	return ParticipantDTO{
		ID:       aggregate.ID().Bytes(),
		Username: aggregate.Username(),
		Role:     aggregate.Role().String(),
	}
}

// toDomain converts a database DTO to a participant.
func toDomain(dto ParticipantDTO) (*participant.Participant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return participant.RestoreParticipant(id, dto.Username, participant.RoleFromString(dto.Role))
}
