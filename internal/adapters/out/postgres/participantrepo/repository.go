package participantrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/participant"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParticipantDirectory implements ParticipantDirectory using GORM.
type GormParticipantDirectory struct {
	db *gorm.DB
}

// NewGormParticipantDirectory creates a new GORM participant directory.
func NewGormParticipantDirectory(db *gorm.DB) *GormParticipantDirectory {
	return &GormParticipantDirectory{db: db}
}

// Add saves a new participant to the directory.
func (r *GormParticipantDirectory) Add(ctx context.Context, aggregate *participant.Participant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a participant by ID.
func (r *GormParticipantDirectory) Get(ctx context.Context, id kernel.UUID) (*participant.Participant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParticipantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("participant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
