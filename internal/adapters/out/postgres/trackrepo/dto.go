// Package trackrepo persists the append-only delivery track.
package trackrepo

import (
	"time"

	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// TrackPointDTO is one row of the track table. Rows are insert-only; the
// surrogate key exists solely for the primary-key requirement.
type TrackPointDTO struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	DriverID      uuid.UUID `gorm:"type:uuid;index"`
	ConsignmentID uuid.UUID `gorm:"type:uuid;index"`
	Latitude      float64
	Longitude     float64
	Speed         *float64
	Heading       *float64
	ReportedAt    time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming.
func (TrackPointDTO) TableName() string {
	return "track_points"
}

func fromDomain(point driver.TrackPoint) TrackPointDTO {
	sample := point.Sample()
	return TrackPointDTO{
		DriverID:      point.DriverID().Bytes(),
		ConsignmentID: point.ConsignmentID().Bytes(),
		Latitude:      sample.Point().Latitude(),
		Longitude:     sample.Point().Longitude(),
		Speed:         sample.Speed(),
		Heading:       sample.Heading(),
		ReportedAt:    sample.ReportedAt(),
	}
}

func toDomain(dto TrackPointDTO) (driver.TrackPoint, error) {
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return driver.TrackPoint{}, err
	}

	consignmentID, err := kernel.UUIDFromBytes(dto.ConsignmentID[:])
	if err != nil {
		return driver.TrackPoint{}, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return driver.TrackPoint{}, err
	}

	sample, err := driver.NewLocationSample(point, dto.ReportedAt, dto.Speed, dto.Heading)
	if err != nil {
		return driver.TrackPoint{}, err
	}

	return driver.NewTrackPoint(driverID, consignmentID, sample)
}
