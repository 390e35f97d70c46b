package geo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"consignment/internal/adapters/out/geo"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestORSProviderGeocodeResolvesTopMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "12 Wharf Lane", r.URL.Query().Get("text"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{
				{"geometry": map[string]any{"coordinates": []float64{37.6173, 55.7558}}},
			},
		})
	}))
	defer server.Close()

	provider, err := geo.NewORSProvider(server.URL, "")
	require.NoError(t, err)

	point, err := provider.Geocode(t.Context(), "12 Wharf Lane")
	require.NoError(t, err)
	assert.InDelta(t, 55.7558, point.Latitude(), 1e-9)
	assert.InDelta(t, 37.6173, point.Longitude(), 1e-9)
}

func TestORSProviderGeocodeNoMatchIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"features": []any{}})
	}))
	defer server.Close()

	provider, err := geo.NewORSProvider(server.URL, "")
	require.NoError(t, err)

	_, err = provider.Geocode(t.Context(), "nowhere at all")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestORSProviderDistanceMatrixPreservesOriginOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/matrix/driving-car", r.URL.Path)

		var body struct {
			Locations    [][]float64 `json:"locations"`
			Sources      []int       `json:"sources"`
			Destinations []int       `json:"destinations"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.Locations, 3)
		assert.Equal(t, []int{0, 1}, body.Sources)
		assert.Equal(t, []int{2}, body.Destinations)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"distances": [][]float64{{1200.5}, {3400.0}},
		})
	}))
	defer server.Close()

	provider, err := geo.NewORSProvider(server.URL, "")
	require.NoError(t, err)

	origin1, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)
	origin2, err := kernel.NewGeoPoint(55.76, 37.62)
	require.NoError(t, err)
	destination, err := kernel.NewGeoPoint(55.77, 37.63)
	require.NoError(t, err)

	distances, err := provider.DistanceMatrix(
		t.Context(), []kernel.GeoPoint{origin1, origin2}, destination)
	require.NoError(t, err)
	require.Len(t, distances, 2)
	assert.InDelta(t, 1200.5, distances[0], 1e-9)
	assert.InDelta(t, 3400.0, distances[1], 1e-9)
}

func TestORSProviderServerFailureIsExternalServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	provider, err := geo.NewORSProvider(server.URL, "")
	require.NoError(t, err)

	_, err = provider.Geocode(t.Context(), "12 Wharf Lane")
	require.Error(t, err)

	var extErr *errs.ExternalServiceError
	assert.ErrorAs(t, err, &extErr)
}

func TestORSProviderRequiresBaseURL(t *testing.T) {
	_, err := geo.NewORSProvider("", "key")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
