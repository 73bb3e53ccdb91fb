package commands

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/participant"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/metrics"
)

// resolveParties looks up the order's parties in the directory. Unresolvable
// participants come back nil; fan-out skips them rather than failing.
func resolveParties(ctx context.Context, logger *slog.Logger,
	directory ports.ParticipantDirectory, aggregate *order.Order) services.Participants {
	parties := services.Participants{
		Buyer:  lookupParty(ctx, logger, directory, aggregate.Buyer()),
		Seller: lookupParty(ctx, logger, directory, aggregate.Seller()),
	}
	if aggregate.Driver() != nil {
		parties.Driver = lookupParty(ctx, logger, directory, *aggregate.Driver())
	}
	return parties
}

func lookupParty(ctx context.Context, logger *slog.Logger,
	directory ports.ParticipantDirectory, id kernel.UUID) *participant.Participant {
	p, err := directory.Get(ctx, id)
	if err != nil {
		logger.Warn("participant lookup failed", "participantId", id.String(), "error", err)
		return nil
	}
	return p
}

func storeNotifications(ctx context.Context, repo ports.NotificationRepository,
	batch []*notification.Notification) error {
	for _, n := range batch {
		if err := repo.Add(ctx, n); err != nil {
			return fmt.Errorf("store notification %s: %w", n.ID().String(), err)
		}
		metrics.NotificationsCreatedTotal.Inc()
	}
	return nil
}

// displayName picks the product name notifications mention.
func displayName(products []*product.Product) string {
	if len(products) == 0 {
		return "your order"
	}
	return products[0].Name()
}
