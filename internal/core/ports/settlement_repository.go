package ports

import (
	"context"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/ledger"
)

// SettlementRepository is the persistence contract for the reconciliation
// ledger. Records are written once, in the same transaction as the
// consignment's terminal transition.
type SettlementRepository interface {
	// Add persists a new settlement record. A second record for the same
	// consignment violates the ledger's unique constraint and fails.
	Add(ctx context.Context, record *ledger.SettlementRecord) error

	// GetByConsignment retrieves the settlement record of a consignment.
	// Returns errs.ObjectNotFoundError when none was written yet.
	GetByConsignment(ctx context.Context, consignmentID kernel.UUID) (*ledger.SettlementRecord, error)
}
