package notification

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification instance was
// not created through its constructor.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification constructor")

// Notification is a message delivered to a marketplace participant about an
// event on one of their orders. Notifications are write-once; the only
// mutation after creation is the read flag.
type Notification struct {
	id             kernel.UUID
	recipientID    kernel.UUID
	kind           Kind
	message        string
	relatedOrderID *kernel.UUID
	senderName     string
	isRead         bool
	createdAt      time.Time

	isConstructed bool
}

// NewNotification creates an unread notification stamped with the current time.
func NewNotification(recipientID kernel.UUID, kind Kind, message string,
	relatedOrderID *kernel.UUID, senderName string) (*Notification, error) {
	return RestoreNotification(kernel.NewUUID(), recipientID, kind, message,
		relatedOrderID, senderName, false, time.Now().UTC())
}

// RestoreNotification recreates a notification from persisted state.
func RestoreNotification(id, recipientID kernel.UUID, kind Kind, message string,
	relatedOrderID *kernel.UUID, senderName string, isRead bool, createdAt time.Time) (*Notification, error) {
	n := &Notification{}

	if err := errors.Join(
		n.setID(id),
		n.setRecipientID(recipientID),
		n.setKind(kind),
		n.setMessage(message),
		n.setRelatedOrderID(relatedOrderID),
	); err != nil {
		return nil, err
	}

	n.senderName = senderName
	if n.senderName == "" {
		n.senderName = "System"
	}
	n.isRead = isRead
	n.createdAt = createdAt
	n.isConstructed = true

	return n, nil
}

func (n *Notification) Validate() error {
	if !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) Recipient() kernel.UUID {
	return n.recipientID
}

func (n *Notification) Kind() Kind {
	return n.kind
}

func (n *Notification) Message() string {
	return n.message
}

// RelatedOrder returns the order that produced this notification,
// or nil for notifications not tied to an order.
func (n *Notification) RelatedOrder() *kernel.UUID {
	return n.relatedOrderID
}

func (n *Notification) SenderName() string {
	return n.senderName
}

func (n *Notification) IsRead() bool {
	return n.isRead
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flips the read flag. Marking an already read notification is a no-op.
func (n *Notification) MarkRead() {
	n.isRead = true
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	n.recipientID = recipientID
	return nil
}

func (n *Notification) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	n.kind = kind
	return nil
}

func (n *Notification) setMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}

func (n *Notification) setRelatedOrderID(relatedOrderID *kernel.UUID) error {
	if relatedOrderID == nil {
		return nil
	}
	if err := relatedOrderID.Validate(); err != nil {
		return err
	}
	n.relatedOrderID = relatedOrderID
	return nil
}
