package redispub_test

import (
	"encoding/json"
	"testing"
	"time"

	"consignment/internal/adapters/out/redispub"
	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(t *testing.T) (*redispub.Publisher, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	publisher, err := redispub.NewPublisher(client)
	require.NoError(t, err)
	return publisher, client
}

func TestPublisherStatusChangeReachesSubscriber(t *testing.T) {
	publisher, client := newTestPublisher(t)
	ctx := t.Context()

	sub := client.Subscribe(ctx, "consignment.status")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	consignmentID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	occurredAt := time.Now().UTC().Truncate(time.Second)

	err = publisher.PublishStatusChange(ctx, ports.StatusChangedEvent{
		ConsignmentID: consignmentID,
		DriverID:      &driverID,
		OldStatus:     consignment.Pending,
		NewStatus:     consignment.Assigned,
		OccurredAt:    occurredAt,
	})
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		var payload struct {
			ConsignmentID string    `json:"consignmentId"`
			DriverID      *string   `json:"driverId"`
			OldStatus     string    `json:"oldStatus"`
			NewStatus     string    `json:"newStatus"`
			OccurredAt    time.Time `json:"occurredAt"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &payload))
		assert.Equal(t, consignmentID.String(), payload.ConsignmentID)
		require.NotNil(t, payload.DriverID)
		assert.Equal(t, driverID.String(), *payload.DriverID)
		assert.Equal(t, "Pending", payload.OldStatus)
		assert.Equal(t, "Assigned", payload.NewStatus)
		assert.True(t, occurredAt.Equal(payload.OccurredAt))
	case <-time.After(2 * time.Second):
		t.Fatal("no status event received")
	}
}

func TestPublisherLocationOmitsAbsentFields(t *testing.T) {
	publisher, client := newTestPublisher(t)
	ctx := t.Context()

	sub := client.Subscribe(ctx, "consignment.location")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	point, err := kernel.NewGeoPoint(55.7558, 37.6173)
	require.NoError(t, err)

	err = publisher.PublishLocation(ctx, ports.LocationReportedEvent{
		DriverID:   kernel.NewUUID(),
		Point:      point,
		ReportedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &payload))
		assert.NotContains(t, payload, "consignmentId")
		assert.NotContains(t, payload, "speed")
		assert.NotContains(t, payload, "heading")
		assert.InDelta(t, 55.7558, payload["latitude"], 1e-9)
	case <-time.After(2 * time.Second):
		t.Fatal("no location event received")
	}
}

func TestNewPublisherRequiresClient(t *testing.T) {
	_, err := redispub.NewPublisher(nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
