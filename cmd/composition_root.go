package cmd

import (
	"log/slog"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	cache      ports.LocationCache
	logger     *slog.Logger

	statusMachine *commands.StatusMachine
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	cache ports.LocationCache,
	logger *slog.Logger,
) CompositionRoot {
	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		cache:      cache,
		logger:     logger,
	}

	root.statusMachine = commands.NewStatusMachine(root.lifecycleUoWFactory(), publisher, logger)
	return root
}

// StatusMachine returns the shared status transition write path. The HTTP
// handlers and the sweep job must go through the same instance.
func (c *CompositionRoot) StatusMachine() *commands.StatusMachine {
	return c.statusMachine
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.lifecycleUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.lifecycleUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRecordPingCommandHandler() commands.RecordPingCommandHandler {
	return commands.NewRecordPingCommandHandler(c.trackingUoWFactory(), c.statusMachine, c.cache, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.statusMachine)
}

func (c *CompositionRoot) CreateSetStatusCommandHandler() commands.SetStatusCommandHandler {
	return commands.NewSetStatusCommandHandler(c.trackingUoWFactory(), c.statusMachine, c.logger)
}

func (c *CompositionRoot) CreateMarkNotificationsReadCommandHandler() commands.MarkNotificationsReadCommandHandler {
	return commands.NewMarkNotificationsReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateGetLatestLocationQueryHandler() queries.GetLatestLocationQueryHandler {
	return queries.NewGetLatestLocationQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetLocationHistoryQueryHandler() queries.GetLocationHistoryQueryHandler {
	return queries.NewGetLocationHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreadCountQueryHandler() queries.GetUnreadCountQueryHandler {
	return queries.NewGetUnreadCountQueryHandler(c.gormDB)
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
