// Package consignmentrepo persists consignment aggregates and their
// delivery stops. The aggregate maps to two tables: consignments and
// consignment_stops, written together in the enclosing transaction.
package consignmentrepo

import (
	"time"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ConsignmentDTO is the database row of a consignment aggregate.
type ConsignmentDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status        int         `gorm:"index"`
	PickupAddress string      `gorm:"type:text"`
	Pickup        GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	DriverID      *uuid.UUID  `gorm:"type:uuid;index"`
	CODAmount     int64
	CODCollected  bool
	ProofRef      *string `gorm:"type:text"`
	FailureReason *string `gorm:"type:text"`
	CreatedAt     time.Time
	AssignedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	Stops         []StopDTO `gorm:"foreignKey:ConsignmentID;references:ID"`
}

// TableName overrides GORM's default naming.
func (ConsignmentDTO) TableName() string {
	return "consignments"
}

// StopDTO is one ordered delivery stop of a consignment.
type StopDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConsignmentID uuid.UUID `gorm:"type:uuid;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Position      int
	Address       string      `gorm:"type:text"`
	Point         GeoPointDTO `gorm:"embedded;embeddedPrefix:point_"`
	Completed     bool
	CompletedAt   *time.Time
}

// TableName overrides GORM's default naming.
func (StopDTO) TableName() string {
	return "consignment_stops"
}

// GeoPointDTO stores WGS-84 coordinates embedded in the owning row.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

func fromDomain(aggregate *consignment.Consignment) ConsignmentDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	stops := make([]StopDTO, 0, len(aggregate.Stops()))
	for i, stop := range aggregate.Stops() {
		stops = append(stops, StopDTO{
			ID:            stop.ID().Bytes(),
			ConsignmentID: aggregate.ID().Bytes(),
			OrderID:       stop.OrderID().Bytes(),
			Position:      i,
			Address:       stop.Address(),
			Point: GeoPointDTO{
				Latitude:  stop.Point().Latitude(),
				Longitude: stop.Point().Longitude(),
			},
			Completed:   stop.Completed(),
			CompletedAt: stop.CompletedAt(),
		})
	}

	return ConsignmentDTO{
		ID:            aggregate.ID().Bytes(),
		Status:        int(aggregate.Status()),
		PickupAddress: aggregate.PickupAddress(),
		Pickup: GeoPointDTO{
			Latitude:  aggregate.PickupPoint().Latitude(),
			Longitude: aggregate.PickupPoint().Longitude(),
		},
		DriverID:      driverID,
		CODAmount:     aggregate.CODAmount(),
		CODCollected:  aggregate.CODCollected(),
		ProofRef:      aggregate.ProofRef(),
		FailureReason: aggregate.FailureReason(),
		CreatedAt:     aggregate.CreatedAt(),
		AssignedAt:    aggregate.AssignedAt(),
		PickedUpAt:    aggregate.PickedUpAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		Stops:         stops,
	}
}

func toDomain(dto ConsignmentDTO) (*consignment.Consignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.Pickup.Latitude, dto.Pickup.Longitude)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	stops := make([]*consignment.DeliveryStop, 0, len(dto.Stops))
	for _, stopDTO := range dto.Stops {
		stop, stopErr := stopToDomain(stopDTO)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	return consignment.RestoreConsignment(
		id,
		dto.PickupAddress,
		pickup,
		stops,
		dto.CODAmount,
		consignment.Status(dto.Status),
		driverID,
		dto.CODCollected,
		dto.ProofRef,
		dto.FailureReason,
		dto.CreatedAt,
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
	)
}

func stopToDomain(dto StopDTO) (*consignment.DeliveryStop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Point.Latitude, dto.Point.Longitude)
	if err != nil {
		return nil, err
	}

	return consignment.RestoreDeliveryStop(
		id, orderID, dto.Address, point, dto.Completed, dto.CompletedAt)
}
