// Package kernel contains the shared value objects of the domain model:
// identifiers and geographic coordinates. Everything here is immutable,
// validated at construction, and safe for concurrent use.
//
// The package includes:
//   - UUID: identity value object wrapping github.com/google/uuid
//   - GeoPoint: a WGS-84 coordinate pair with haversine distance
//
// Value objects follow the constructor-guard convention: the zero value is
// invalid and construction goes through factory functions that enforce
// bounds, so entities built from these types never carry unchecked state.
package kernel
