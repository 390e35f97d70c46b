// Package commands contains the write-side operations of the engine.
// Every command follows the same shape: validated command object, handler
// holding its dependencies, one unit of work per execution.
package commands

import (
	"context"

	"consignment/internal/core/ports"
)

// Narrow unit-of-work views let each handler declare exactly the
// repositories it touches, which keeps the mocks in handler tests small.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ConsignmentRepoFactory provides the consignment repository bound to
	// the current transaction.
	ConsignmentRepoFactory interface {
		ConsignmentRepository() ports.ConsignmentRepository
	}

	// DriverRepoFactory provides the driver repository bound to the
	// current transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// TrackRepoFactory provides the track repository bound to the current
	// transaction.
	TrackRepoFactory interface {
		TrackRepository() ports.TrackRepository
	}

	// SettlementRepoFactory provides the settlement repository bound to
	// the current transaction.
	SettlementRepoFactory interface {
		SettlementRepository() ports.SettlementRepository
	}

	// DriverUoW covers commands that touch drivers only.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates driver-only units of work.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// ConsignmentUoW covers commands that touch consignments only.
	ConsignmentUoW interface {
		TxManager
		ConsignmentRepoFactory
	}

	// ConsignmentUoWFactory creates consignment-only units of work.
	ConsignmentUoWFactory interface {
		Create() ConsignmentUoW
	}

	// DispatchUoW covers the assignment handshake: consignment plus driver.
	DispatchUoW interface {
		TxManager
		ConsignmentRepoFactory
		DriverRepoFactory
	}

	// DispatchUoWFactory creates dispatch units of work.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// TrackingUoW covers location reporting: driver, consignment and track.
	TrackingUoW interface {
		TxManager
		ConsignmentRepoFactory
		DriverRepoFactory
		TrackRepoFactory
	}

	// TrackingUoWFactory creates tracking units of work.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}

	// TerminalUoW covers terminal transitions: consignment, driver and the
	// settlement ledger commit together.
	TerminalUoW interface {
		TxManager
		ConsignmentRepoFactory
		DriverRepoFactory
		SettlementRepoFactory
	}

	// TerminalUoWFactory creates terminal-transition units of work.
	TerminalUoWFactory interface {
		Create() TerminalUoW
	}
)
