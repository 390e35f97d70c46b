package queries

import (
	"context"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveConsignmentsQueryHandler reads the live workload straight from
// the tables, no aggregate reconstruction.
type GetActiveConsignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveConsignmentsQueryHandler creates the handler.
func NewGetActiveConsignmentsQueryHandler(db *gorm.DB) GetActiveConsignmentsQueryHandler {
	return GetActiveConsignmentsQueryHandler{db: db}
}

// Handle returns every non-terminal consignment with its stop progress,
// oldest first.
func (h GetActiveConsignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveConsignmentsQuery,
) ([]GetActiveConsignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.status,
			c.pickup_address,
			c.driver_id,
			COUNT(s.id),
			COUNT(s.id) FILTER (WHERE s.completed),
			c.cod_amount,
			c.created_at
		FROM consignments c
		LEFT JOIN consignment_stops s ON s.consignment_id = c.id
		WHERE c.status NOT IN (?, ?, ?)
		GROUP BY c.id, c.status, c.pickup_address, c.driver_id, c.cod_amount, c.created_at
		ORDER BY c.created_at
	`, consignment.Delivered, consignment.Failed, consignment.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetActiveConsignmentsQueryResponse, 0)
	for rows.Next() {
		var resp GetActiveConsignmentsQueryResponse
		var id uuid.UUID
		var status int
		var driverID *uuid.UUID

		err = rows.Scan(
			&id,
			&status,
			&resp.PickupAddress,
			&driverID,
			&resp.TotalStops,
			&resp.CompletedStops,
			&resp.CODAmount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		consignmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = consignmentID
		resp.Status = consignment.Status(status).String()

		if driverID != nil {
			drvID, drvErr := kernel.UUIDFromBytes((*driverID)[:])
			if drvErr != nil {
				return nil, drvErr
			}
			resp.DriverID = &drvID
		}

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
