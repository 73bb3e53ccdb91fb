package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring marketplace order flow
var (
	TrackingPingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_pings_total",
			Help: "Total number of driver tracking pings received",
		},
	)

	StatusTransitionsAppliedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_status_transitions_applied_total",
			Help: "Total number of applied order status transitions",
		},
	)

	StatusTransitionsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_status_transitions_rejected_total",
			Help: "Total number of rejected order status transitions (stale or duplicate proposals)",
		},
	)

	NotificationsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Total number of notifications fanned out",
		},
	)

	ProductsOutOfStockTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "products_out_of_stock_total",
			Help: "Total number of products depleted by delivery inventory adjustment",
		},
	)

	DeliveryEffectsFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_effects_failed_total",
			Help: "Total number of failed delivery side-effect runs (retried by the sweep job)",
		},
	)

	EventPublishFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "event_publish_failed_total",
			Help: "Total number of failed order event publishes to the broker",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(TrackingPingsTotal)
	prometheus.MustRegister(StatusTransitionsAppliedTotal)
	prometheus.MustRegister(StatusTransitionsRejectedTotal)
	prometheus.MustRegister(NotificationsCreatedTotal)
	prometheus.MustRegister(ProductsOutOfStockTotal)
	prometheus.MustRegister(DeliveryEffectsFailedTotal)
	prometheus.MustRegister(EventPublishFailedTotal)
}
