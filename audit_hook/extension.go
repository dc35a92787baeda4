// Package audithook bridges garage occupancy events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import any
// audit backend directly. Callers inject a RecorderFunc adapter at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/garage/id"
	"github.com/xraph/garage/plugin"
	"github.com/xraph/garage/spot"
	"github.com/xraph/garage/types"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin             = (*Extension)(nil)
	_ plugin.OnInit             = (*Extension)(nil)
	_ plugin.OnShutdown         = (*Extension)(nil)
	_ plugin.OnCarCheckedIn     = (*Extension)(nil)
	_ plugin.OnCarCheckedOut    = (*Extension)(nil)
	_ plugin.OnCheckinRejected  = (*Extension)(nil)
	_ plugin.OnCheckoutRejected = (*Extension)(nil)
	_ plugin.OnGarageFull       = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	GarageID   string         `json:"garage_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges garage events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// OnInit implements plugin.OnInit.
func (e *Extension) OnInit(ctx context.Context, garageID id.GarageID) error {
	return e.record(ctx, garageID, ActionGarageStarted, SeverityInfo, OutcomeSuccess,
		ResourceGarage, garageID.String(), CategoryLifecycle, nil)
}

// OnShutdown implements plugin.OnShutdown.
func (e *Extension) OnShutdown(ctx context.Context, garageID id.GarageID) error {
	return e.record(ctx, garageID, ActionGarageStopped, SeverityInfo, OutcomeSuccess,
		ResourceGarage, garageID.String(), CategoryLifecycle, nil)
}

// ──────────────────────────────────────────────────
// Occupancy hooks
// ──────────────────────────────────────────────────

// OnCarCheckedIn implements plugin.OnCarCheckedIn.
func (e *Extension) OnCarCheckedIn(ctx context.Context, garageID id.GarageID, s *spot.Spot) error {
	return e.record(ctx, garageID, ActionCarCheckedIn, SeverityInfo, OutcomeSuccess,
		ResourceSpot, s.LicensePlate, CategoryOccupancy, nil,
		"license_plate", s.LicensePlate,
		"checkin_time", types.FormatTimestamp(s.CheckinTime),
	)
}

// OnCarCheckedOut implements plugin.OnCarCheckedOut.
func (e *Extension) OnCarCheckedOut(ctx context.Context, garageID id.GarageID, car *spot.CheckedOutCar) error {
	return e.record(ctx, garageID, ActionCarCheckedOut, SeverityInfo, OutcomeSuccess,
		ResourceReceipt, car.ReceiptID.String(), CategoryBilling, nil,
		"license_plate", car.LicensePlate,
		"checkin_time", types.FormatTimestamp(car.CheckinTime),
		"checkout_time", types.FormatTimestamp(car.CheckoutTime),
		"fees_amount", car.Fees.Amount,
		"fees_currency", car.Fees.Currency,
	)
}

// OnCheckinRejected implements plugin.OnCheckinRejected.
func (e *Extension) OnCheckinRejected(ctx context.Context, garageID id.GarageID, p spot.Payload, err error) error {
	return e.record(ctx, garageID, ActionCheckinRejected, SeverityWarning, OutcomeFailure,
		ResourceSpot, p.LicensePlate, CategoryOccupancy, err,
		"license_plate", p.LicensePlate,
		"timestamp", types.FormatTimestamp(p.Timestamp),
	)
}

// OnCheckoutRejected implements plugin.OnCheckoutRejected.
func (e *Extension) OnCheckoutRejected(ctx context.Context, garageID id.GarageID, p spot.Payload, err error) error {
	return e.record(ctx, garageID, ActionCheckoutRejected, SeverityWarning, OutcomeFailure,
		ResourceSpot, p.LicensePlate, CategoryOccupancy, err,
		"license_plate", p.LicensePlate,
		"timestamp", types.FormatTimestamp(p.Timestamp),
	)
}

// OnGarageFull implements plugin.OnGarageFull.
func (e *Extension) OnGarageFull(ctx context.Context, garageID id.GarageID, totalSpots int) error {
	return e.record(ctx, garageID, ActionGarageFull, SeverityWarning, OutcomeSuccess,
		ResourceGarage, garageID.String(), CategoryOccupancy, nil,
		"total_spots", totalSpots,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
// Recorder failures are logged and never returned.
func (e *Extension) record(
	ctx context.Context,
	garageID id.GarageID,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		GarageID:   garageID.String(),
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
