package services

import (
	"fmt"

	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/participant"
)

// Participants holds the resolved parties of an order. A nil entry means the
// participant could not be resolved; fan-out skips their notifications and
// still generates the rest.
type Participants struct {
	Buyer  *participant.Participant
	Seller *participant.Participant
	Driver *participant.Participant
}

// senderName returns the display name notifications carry: the driver's
// username when the driver is resolved, otherwise "System".
func (p Participants) senderName() string {
	if p.Driver != nil {
		return p.Driver.Username()
	}
	return "System"
}

// NotificationFanout is a domain service that turns order lifecycle events
// into per-recipient notifications.
//
// Business rules:
//   - Placement notifies the seller only
//   - Acceptance notifies the buyer, plus the driver when newly assigned
//   - Shipped notifies buyer and seller
//   - Delivery notifies all parties and adds payment notices for seller and driver
//   - Unresolved participants are skipped, never aborting the rest
//
// The service is pure: it builds notifications and leaves persistence to the
// caller.
type NotificationFanout struct{}

// NewNotificationFanout creates a new NotificationFanout instance.
func NewNotificationFanout() NotificationFanout {
	return NotificationFanout{}
}

// OnOrderPlaced builds the placement notification for the seller.
func (f NotificationFanout) OnOrderPlaced(o *order.Order, parties Participants,
	productName string) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	buyerName := "Someone"
	sender := "System"
	if parties.Buyer != nil {
		buyerName = parties.Buyer.Username()
		sender = parties.Buyer.Username()
	}

	b := newBatch(o, sender)
	b.add(parties.Seller, notification.KindOrderPlaced,
		fmt.Sprintf("%s ordered %s", buyerName, productName))
	return b.finish()
}

// OnOrderAccepted builds the acceptance notifications: the buyer learns a
// driver took the order, the newly assigned driver learns about the job.
func (f NotificationFanout) OnOrderAccepted(o *order.Order, parties Participants,
	productName string) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	b := newBatch(o, parties.senderName())
	b.add(parties.Buyer, notification.KindOrderAccepted,
		fmt.Sprintf("Your order for %s has been accepted", productName))
	b.add(parties.Driver, notification.KindDriverAssigned,
		fmt.Sprintf("You have been assigned to deliver %s", productName))
	return b.finish()
}

// OnStatusChanged builds the notifications for an applied status transition.
// Pending and repeated terminal arrivals produce nothing here; placement has
// its own event and delivery effects run once behind the processing claim.
func (f NotificationFanout) OnStatusChanged(o *order.Order, parties Participants,
	productName string, newStatus order.Status) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if newStatus != order.Shipped {
		return nil, nil
	}

	b := newBatch(o, parties.senderName())
	b.add(parties.Buyer, notification.KindOrderShipped,
		fmt.Sprintf("Your order for %s is on the way", productName))
	b.add(parties.Seller, notification.KindOrderShipped,
		fmt.Sprintf("Order for %s is on the way to the buyer", productName))
	return b.finish()
}

// OnOrderDelivered builds the first-terminal-arrival notifications: everyone
// learns the order arrived, seller and driver additionally get payment notices.
func (f NotificationFanout) OnOrderDelivered(o *order.Order, parties Participants,
	productName string) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	b := newBatch(o, parties.senderName())
	b.add(parties.Buyer, notification.KindOrderDelivered,
		fmt.Sprintf("Your order for %s has been delivered", productName))
	b.add(parties.Seller, notification.KindOrderDelivered,
		fmt.Sprintf("Order for %s has been delivered", productName))
	b.add(parties.Seller, notification.KindPaymentReceived,
		fmt.Sprintf("Payment received for %s", productName))
	b.add(parties.Driver, notification.KindOrderDelivered,
		fmt.Sprintf("Delivery of %s is complete", productName))
	b.add(parties.Driver, notification.KindPaymentReceived,
		fmt.Sprintf("Payment received for delivering %s", productName))
	return b.finish()
}

// batch accumulates notifications for one order, skipping nil recipients.
type batch struct {
	orderID    *order.Order
	senderName string
	built      []*notification.Notification
	err        error
}

func newBatch(o *order.Order, senderName string) *batch {
	return &batch{orderID: o, senderName: senderName}
}

func (b *batch) add(recipient *participant.Participant, kind notification.Kind, message string) {
	if b.err != nil || recipient == nil {
		return
	}

	orderID := b.orderID.ID()
	n, err := notification.NewNotification(recipient.ID(), kind, message, &orderID, b.senderName)
	if err != nil {
		b.err = err
		return
	}
	b.built = append(b.built, n)
}

func (b *batch) finish() ([]*notification.Notification, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.built, nil
}
