// Package observability provides a metrics extension for garages that records
// occupancy and billing counts via a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/garage/id"
	"github.com/xraph/garage/plugin"
	"github.com/xraph/garage/spot"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnCarCheckedIn     = (*MetricsExtension)(nil)
	_ plugin.OnCarCheckedOut    = (*MetricsExtension)(nil)
	_ plugin.OnCheckinRejected  = (*MetricsExtension)(nil)
	_ plugin.OnCheckoutRejected = (*MetricsExtension)(nil)
	_ plugin.OnGarageFull       = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// Metric names.
const (
	MetricCheckinAccepted  = "garage.checkin.accepted"
	MetricCheckinRejected  = "garage.checkin.rejected"
	MetricCheckoutAccepted = "garage.checkout.accepted"
	MetricCheckoutRejected = "garage.checkout.rejected"
	MetricGarageFull       = "garage.full"
	MetricFeesCollected    = "garage.fees.collected"
	MetricStaySeconds      = "garage.stay.seconds"
)

// MetricsExtension records occupancy metrics.
// Register it as a garage plugin to track check-ins, checkouts and fees.
type MetricsExtension struct {
	factory MetricFactory

	// Check-in metrics
	CheckinAccepted Counter
	CheckinRejected Counter
	GarageFull      Counter

	// Checkout metrics
	CheckoutAccepted Counter
	CheckoutRejected Counter

	// FeesCollected observes each fee in minor units.
	FeesCollected Histogram
	StaySeconds   Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		CheckinAccepted: factory.Counter(MetricCheckinAccepted),
		CheckinRejected: factory.Counter(MetricCheckinRejected),
		GarageFull:      factory.Counter(MetricGarageFull),

		CheckoutAccepted: factory.Counter(MetricCheckoutAccepted),
		CheckoutRejected: factory.Counter(MetricCheckoutRejected),

		FeesCollected: factory.Histogram(MetricFeesCollected),
		StaySeconds:   factory.Histogram(MetricStaySeconds),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnCarCheckedIn implements plugin.OnCarCheckedIn.
func (m *MetricsExtension) OnCarCheckedIn(_ context.Context, _ id.GarageID, _ *spot.Spot) error {
	m.CheckinAccepted.Inc()
	return nil
}

// OnCheckinRejected implements plugin.OnCheckinRejected.
func (m *MetricsExtension) OnCheckinRejected(_ context.Context, _ id.GarageID, _ spot.Payload, _ error) error {
	m.CheckinRejected.Inc()
	return nil
}

// OnGarageFull implements plugin.OnGarageFull.
func (m *MetricsExtension) OnGarageFull(_ context.Context, _ id.GarageID, _ int) error {
	m.GarageFull.Inc()
	return nil
}

// OnCarCheckedOut implements plugin.OnCarCheckedOut.
func (m *MetricsExtension) OnCarCheckedOut(_ context.Context, _ id.GarageID, car *spot.CheckedOutCar) error {
	m.CheckoutAccepted.Inc()
	m.FeesCollected.Observe(float64(car.Fees.Amount))
	m.StaySeconds.Observe(car.Duration().Seconds())
	return nil
}

// OnCheckoutRejected implements plugin.OnCheckoutRejected.
func (m *MetricsExtension) OnCheckoutRejected(_ context.Context, _ id.GarageID, _ spot.Payload, _ error) error {
	m.CheckoutRejected.Inc()
	return nil
}
