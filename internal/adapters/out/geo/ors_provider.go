// Package geo implements the GeoProvider port over an OpenRouteService
// compatible HTTP API. Geocoding backs order aggregation; the matrix
// endpoint refines dispatch candidate ranking with road distances.
package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
)

const (
	defaultTimeout = 5 * time.Second
	maxAttempts    = 3
)

// ORSProvider calls an OpenRouteService deployment. All methods bound the
// request with a timeout so a slow geo service cannot stall a dispatch or
// aggregation pass.
type ORSProvider struct {
	baseURL string
	apiKey  string
	profile string
	client  *http.Client
	timeout time.Duration
}

// NewORSProvider creates the provider. baseURL must not be empty; apiKey
// may be empty for self-hosted deployments without authorization.
func NewORSProvider(baseURL, apiKey string) (*ORSProvider, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &ORSProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		profile: "driving-car",
		client:  &http.Client{Timeout: defaultTimeout},
		timeout: defaultTimeout,
	}, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves an address via /geocode/search, taking the top match.
func (p *ORSProvider) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	if address == "" {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("address")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := p.baseURL + "/geocode/search"
	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return kernel.GeoPoint{}, errs.NewExternalServiceErrorWithCause("geocode", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return kernel.GeoPoint{}, errs.NewExternalServiceErrorWithCause("geocode", err)
	}

	if len(decoded.Features) == 0 {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("address", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return kernel.GeoPoint{}, errs.NewExternalServiceErrorWithCause("geocode",
			fmt.Errorf("invalid coordinate format for %q", address))
	}

	// ORS returns [longitude, latitude].
	return kernel.NewGeoPoint(coords[1], coords[0])
}

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
}

// Route returns the road distance in meters between two points.
func (p *ORSProvider) Route(ctx context.Context, from, to kernel.GeoPoint) (float64, error) {
	distances, err := p.DistanceMatrix(ctx, []kernel.GeoPoint{from}, to)
	if err != nil {
		return 0, err
	}
	return distances[0], nil
}

// DistanceMatrix returns road distances from each origin to the
// destination via one matrix call, preserving origin order.
func (p *ORSProvider) DistanceMatrix(
	ctx context.Context,
	origins []kernel.GeoPoint,
	destination kernel.GeoPoint,
) ([]float64, error) {
	if len(origins) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	locations := make([][]float64, 0, len(origins)+1)
	sources := make([]int, 0, len(origins))
	for i, origin := range origins {
		locations = append(locations, []float64{origin.Longitude(), origin.Latitude()})
		sources = append(sources, i)
	}
	locations = append(locations, []float64{destination.Longitude(), destination.Latitude()})

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Sources:      sources,
		Destinations: []int{len(origins)},
		Metrics:      []string{"distance"},
	})
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause("matrix", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", p.baseURL, p.profile)
	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause("matrix", err)
	}
	defer resp.Body.Close()

	var decoded matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errs.NewExternalServiceErrorWithCause("matrix", err)
	}

	if len(decoded.Distances) != len(origins) {
		return nil, errs.NewExternalServiceErrorWithCause("matrix",
			fmt.Errorf("expected %d rows, got %d", len(origins), len(decoded.Distances)))
	}

	out := make([]float64, len(origins))
	for i, row := range decoded.Distances {
		if len(row) != 1 || row[0] == nil {
			return nil, errs.NewExternalServiceErrorWithCause("matrix",
				fmt.Errorf("origin %d is unroutable", i))
		}
		out[i] = *row[0]
	}

	return out, nil
}

func (p *ORSProvider) newRequest(
	ctx context.Context,
	method string,
	url string,
	body *bytes.Reader,
) (*http.Request, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, url, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if p.apiKey != "" {
		req.Header.Set("Authorization", p.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

type httpStatusError struct {
	Code int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// doWithRetry retries transient failures (network errors, 429 and 5xx
// responses) with exponential backoff, respecting context cancellation.
func (p *ORSProvider) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, err
		}

		resp, err := p.client.Do(req)
		if err == nil && resp.StatusCode < 400 {
			return resp, nil
		}

		retry := false
		if err != nil {
			lastErr = err
			var netErr net.Error
			if errors.As(err, &netErr) {
				retry = true
			}
		} else {
			resp.Body.Close()
			lastErr = &httpStatusError{Code: resp.StatusCode}
			switch resp.StatusCode {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				retry = true
			}
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, lastErr
}
