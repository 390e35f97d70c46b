// Package driverrepo persists driver aggregates. The last location sample
// is denormalized into the driver row; the full history lives in the track
// table owned by trackrepo.
package driverrepo

import (
	"time"

	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the database row of a driver aggregate.
type DriverDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"type:text"`
	Available           bool      `gorm:"index"`
	ActiveConsignmentID *uuid.UUID `gorm:"type:uuid;index"`
	LastLatitude        *float64
	LastLongitude       *float64
	LastReportedAt      *time.Time `gorm:"index"`
	LastSpeed           *float64
	LastHeading         *float64
}

// TableName overrides GORM's default naming.
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(aggregate *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Available: aggregate.Available(),
	}

	if id := aggregate.ActiveConsignment(); id != nil {
		raw := id.Bytes()
		dto.ActiveConsignmentID = &raw
	}

	if sample := aggregate.LastSample(); sample != nil {
		lat := sample.Point().Latitude()
		lng := sample.Point().Longitude()
		at := sample.ReportedAt()
		dto.LastLatitude = &lat
		dto.LastLongitude = &lng
		dto.LastReportedAt = &at
		dto.LastSpeed = sample.Speed()
		dto.LastHeading = sample.Heading()
	}

	return dto
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var activeConsignmentID *kernel.UUID
	if dto.ActiveConsignmentID != nil {
		cID, consErr := kernel.UUIDFromBytes((*dto.ActiveConsignmentID)[:])
		if consErr != nil {
			return nil, consErr
		}
		activeConsignmentID = &cID
	}

	var lastSample *driver.LocationSample
	if dto.LastLatitude != nil && dto.LastLongitude != nil && dto.LastReportedAt != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LastLatitude, *dto.LastLongitude)
		if pointErr != nil {
			return nil, pointErr
		}

		sample, sampleErr := driver.NewLocationSample(
			point, *dto.LastReportedAt, dto.LastSpeed, dto.LastHeading)
		if sampleErr != nil {
			return nil, sampleErr
		}
		lastSample = &sample
	}

	return driver.RestoreDriver(id, dto.Name, dto.Available, lastSample, activeConsignmentID)
}
