// Package orderfeed implements the OrderFeed port as an HTTP client of the
// external Order/Payment subsystem. The feed is read-only: the engine polls
// eligible orders and never writes back.
package orderfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/orderref"
	"consignment/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// HTTPFeed polls GET {baseURL}/api/v1/orders/eligible.
type HTTPFeed struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPFeed creates the feed client.
func NewHTTPFeed(baseURL string, logger *slog.Logger) (*HTTPFeed, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPFeed{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}, nil
}

type eligibleOrderDTO struct {
	OrderID           string    `json:"orderId"`
	PickupLocationKey string    `json:"pickupLocationKey"`
	PickupLatitude    float64   `json:"pickupLatitude"`
	PickupLongitude   float64   `json:"pickupLongitude"`
	DeliveryAddress   string    `json:"deliveryAddress"`
	DeliveryLatitude  float64   `json:"deliveryLatitude"`
	DeliveryLongitude float64   `json:"deliveryLongitude"`
	CODAmount         int64     `json:"codAmount"`
	PaymentConfirmed  bool      `json:"paymentConfirmed"`
	ReadyAt           time.Time `json:"readyAt"`
}

// EligibleOrders pulls the current eligible set. Rows that fail validation
// are logged and skipped so one malformed order cannot stall aggregation.
func (f *HTTPFeed) EligibleOrders(ctx context.Context) ([]orderref.OrderRef, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		f.baseURL+"/api/v1/orders/eligible", nil)
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause("order feed", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause("order feed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewExternalServiceErrorWithCause("order feed",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var rows []eligibleOrderDTO
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, errs.NewExternalServiceErrorWithCause("order feed", err)
	}

	refs := make([]orderref.OrderRef, 0, len(rows))
	for _, row := range rows {
		ref, err := f.toOrderRef(row)
		if err != nil {
			f.logger.Warn("skipping malformed feed row",
				"orderId", row.OrderID, "error", err)
			continue
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

func (f *HTTPFeed) toOrderRef(row eligibleOrderDTO) (orderref.OrderRef, error) {
	orderID, err := kernel.UUIDFromString(row.OrderID)
	if err != nil {
		return orderref.OrderRef{}, err
	}

	pickupPoint, err := kernel.NewGeoPoint(row.PickupLatitude, row.PickupLongitude)
	if err != nil {
		return orderref.OrderRef{}, err
	}

	deliveryPoint, err := kernel.NewGeoPoint(row.DeliveryLatitude, row.DeliveryLongitude)
	if err != nil {
		return orderref.OrderRef{}, err
	}

	return orderref.NewOrderRef(
		orderID,
		row.PickupLocationKey,
		pickupPoint,
		row.DeliveryAddress,
		deliveryPoint,
		row.CODAmount,
		row.PaymentConfirmed,
		row.ReadyAt,
	)
}
