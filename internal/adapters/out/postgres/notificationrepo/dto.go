// Package notificationrepo provides data transfer objects and mapping functions
// for notification persistence.
package notificationrepo

import (
	"time"

	"marketplace/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notifications. The kind is stored as its string label so the table stays
// readable without the enum mapping.
type NotificationDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind           string     `gorm:"type:varchar(64);not null"`
	Message        string     `gorm:"type:text;not null"`
	RelatedOrderID *uuid.UUID `gorm:"type:uuid;index"`
	SenderName     string     `gorm:"type:varchar(255);not null"`
	IsRead         bool       `gorm:"not null;default:false"`
	CreatedAt      time.Time  `gorm:"not null;index"`
}

// TableName specifies the database table name for notification entities.
// Overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification domain aggregate to its database representation.
func fromDomain(aggregate *notification.Notification) NotificationDTO {
	var relatedOrderID *uuid.UUID
	if id := aggregate.RelatedOrder(); id != nil {
		raw := id.Bytes()
		relatedOrderID = &raw
	}

	return NotificationDTO{
		ID:             aggregate.ID().Bytes(),
		RecipientID:    aggregate.Recipient().Bytes(),
		Kind:           aggregate.Kind().String(),
		Message:        aggregate.Message(),
		RelatedOrderID: relatedOrderID,
		SenderName:     aggregate.SenderName(),
		IsRead:         aggregate.IsRead(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}
