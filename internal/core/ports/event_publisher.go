package ports

import (
	"context"
	"time"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"
)

// StatusChangedEvent is published after a consignment transition commits.
// Both sides of the transition travel with the event; a consumer can tell
// a cancelled assignment from a consignment cancelled while still pending.
type StatusChangedEvent struct {
	ConsignmentID kernel.UUID
	DriverID      *kernel.UUID
	OldStatus     consignment.Status
	NewStatus     consignment.Status
	OccurredAt    time.Time
}

// LocationReportedEvent is published after an accepted location sample
// commits.
type LocationReportedEvent struct {
	DriverID      kernel.UUID
	ConsignmentID *kernel.UUID
	Point         kernel.GeoPoint
	Speed         *float64
	Heading       *float64
	ReportedAt    time.Time
}

// EventPublisher fans out committed state changes to external consumers.
// Publishing happens after commit; a publish failure is logged, never
// rolled into the business transaction.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, event StatusChangedEvent) error
	PublishLocation(ctx context.Context, event LocationReportedEvent) error
}
