// Package redispub fans consignment lifecycle and location events out to
// Redis pub/sub channels. Consumers (notification services, live tracking
// dashboards) subscribe to the channels; the engine never reads them back.
package redispub

import (
	"context"
	"encoding/json"
	"time"

	"consignment/internal/core/ports"
	"consignment/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	statusChannel   = "consignment.status"
	locationChannel = "consignment.location"
)

// Publisher implements ports.EventPublisher over Redis pub/sub.
type Publisher struct {
	client redis.UniversalClient
}

// NewPublisher creates the publisher over an established Redis client.
func NewPublisher(client redis.UniversalClient) (*Publisher, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &Publisher{client: client}, nil
}

type statusPayload struct {
	ConsignmentID string    `json:"consignmentId"`
	DriverID      *string   `json:"driverId,omitempty"`
	OldStatus     string    `json:"oldStatus"`
	NewStatus     string    `json:"newStatus"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type locationPayload struct {
	DriverID      string    `json:"driverId"`
	ConsignmentID *string   `json:"consignmentId,omitempty"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Speed         *float64  `json:"speed,omitempty"`
	Heading       *float64  `json:"heading,omitempty"`
	ReportedAt    time.Time `json:"reportedAt"`
}

// PublishStatusChange publishes a committed lifecycle transition.
func (p *Publisher) PublishStatusChange(ctx context.Context, event ports.StatusChangedEvent) error {
	payload := statusPayload{
		ConsignmentID: event.ConsignmentID.String(),
		OldStatus:     event.OldStatus.String(),
		NewStatus:     event.NewStatus.String(),
		OccurredAt:    event.OccurredAt,
	}
	if event.DriverID != nil {
		id := event.DriverID.String()
		payload.DriverID = &id
	}

	return p.publish(ctx, statusChannel, payload)
}

// PublishLocation publishes a committed location sample.
func (p *Publisher) PublishLocation(ctx context.Context, event ports.LocationReportedEvent) error {
	payload := locationPayload{
		DriverID:   event.DriverID.String(),
		Latitude:   event.Point.Latitude(),
		Longitude:  event.Point.Longitude(),
		Speed:      event.Speed,
		Heading:    event.Heading,
		ReportedAt: event.ReportedAt,
	}
	if event.ConsignmentID != nil {
		id := event.ConsignmentID.String()
		payload.ConsignmentID = &id
	}

	return p.publish(ctx, locationChannel, payload)
}

func (p *Publisher) publish(ctx context.Context, channel string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errs.NewExternalServiceErrorWithCause("redis", err)
	}

	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return errs.NewExternalServiceErrorWithCause("redis", err)
	}

	return nil
}
