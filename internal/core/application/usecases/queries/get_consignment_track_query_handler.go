package queries

import (
	"context"

	"consignment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetConsignmentTrackQueryHandler reads the delivery track table directly.
type GetConsignmentTrackQueryHandler struct {
	db *gorm.DB
}

// NewGetConsignmentTrackQueryHandler creates the handler.
func NewGetConsignmentTrackQueryHandler(db *gorm.DB) GetConsignmentTrackQueryHandler {
	return GetConsignmentTrackQueryHandler{db: db}
}

// Handle returns the track ordered by report time. A consignment without
// recorded points yields an empty slice, not an error: tracking only
// starts at pickup.
func (h GetConsignmentTrackQueryHandler) Handle(
	ctx context.Context,
	query GetConsignmentTrackQuery,
) ([]GetConsignmentTrackQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			driver_id,
			latitude,
			longitude,
			speed,
			heading,
			reported_at
		FROM track_points
		WHERE consignment_id = ?
		ORDER BY reported_at
	`, query.ConsignmentID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]GetConsignmentTrackQueryResponse, 0)
	for rows.Next() {
		var point GetConsignmentTrackQueryResponse
		var driverID uuid.UUID

		err = rows.Scan(
			&driverID,
			&point.Latitude,
			&point.Longitude,
			&point.Speed,
			&point.Heading,
			&point.ReportedAt,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(driverID[:])
		if idErr != nil {
			return nil, idErr
		}
		point.DriverID = id

		points = append(points, point)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
