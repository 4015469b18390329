package metrics

import "github.com/prometheus/client_golang/prometheus"

// DeliveryMetrics tracks delivery records spawned from sales.
type DeliveryMetrics struct {
	autoCreated  prometheus.Counter
	autoFailures prometheus.Counter
}

// NewDeliveryMetrics registers the delivery counters on the provided registerer.
func NewDeliveryMetrics(reg prometheus.Registerer) *DeliveryMetrics {
	if reg == nil {
		return &DeliveryMetrics{}
	}
	autoCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "delivery_auto_created_total",
		Help: "Delivery records created automatically from sales.",
	})
	autoFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "delivery_auto_create_failures_total",
		Help: "Failed attempts to create a delivery record from a sale.",
	})
	reg.MustRegister(autoCreated, autoFailures)
	return &DeliveryMetrics{
		autoCreated:  autoCreated,
		autoFailures: autoFailures,
	}
}

// IncAutoCreated increments the auto-created delivery counter.
func (d *DeliveryMetrics) IncAutoCreated() {
	if d == nil || d.autoCreated == nil {
		return
	}
	d.autoCreated.Inc()
}

// IncAutoCreateFailure increments the failed auto-create counter.
func (d *DeliveryMetrics) IncAutoCreateFailure() {
	if d == nil || d.autoFailures == nil {
		return
	}
	d.autoFailures.Inc()
}
