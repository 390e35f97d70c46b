package commands_test

import (
	"testing"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmPickupCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	t.Run("bound driver confirms pickup", func(t *testing.T) {
		driverID := kernel.NewUUID()
		cons := assignedConsignment(t, 0, driverID)

		consRepo := &MockConsignmentRepository{}
		consRepo.On("Get", ctx, cons.ID()).Return(cons, nil)
		consRepo.On("Update", ctx, cons).Return(nil)

		uow := &MockUnitOfWork{}
		uow.On("Begin", ctx).Return(nil)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("ConsignmentRepository").Return(consRepo)

		publisher := &MockEventPublisher{}
		publisher.On("PublishStatusChange", ctx, mock.MatchedBy(func(event ports.StatusChangedEvent) bool {
			return event.OldStatus == consignment.Assigned &&
				event.NewStatus == consignment.PickedUp &&
				event.ConsignmentID.IsEqual(cons.ID())
		})).Return(nil)

		handler := commands.NewConfirmPickupCommandHandler(
			stubConsignmentUoWFactory{uow: uow}, publisher, nil)

		command, err := commands.NewConfirmPickupCommand(cons.ID(), driverID, now)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, command))

		assert.Equal(t, consignment.PickedUp, cons.Status())
		require.NotNil(t, cons.PickedUpAt())
		assert.Equal(t, now, *cons.PickedUpAt())
		publisher.AssertExpectations(t)
	})

	t.Run("retried confirmation keeps the first timestamp and publishes nothing", func(t *testing.T) {
		driverID := kernel.NewUUID()
		cons := assignedConsignment(t, 0, driverID)
		first := now.Add(-time.Minute)
		require.NoError(t, cons.ConfirmPickup(driverID, first))

		consRepo := &MockConsignmentRepository{}
		consRepo.On("Get", ctx, cons.ID()).Return(cons, nil)
		consRepo.On("Update", ctx, cons).Return(nil)

		uow := &MockUnitOfWork{}
		uow.On("Begin", ctx).Return(nil)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("ConsignmentRepository").Return(consRepo)

		publisher := &MockEventPublisher{}

		handler := commands.NewConfirmPickupCommandHandler(
			stubConsignmentUoWFactory{uow: uow}, publisher, nil)

		command, err := commands.NewConfirmPickupCommand(cons.ID(), driverID, now)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, command))

		assert.Equal(t, first, *cons.PickedUpAt())
		publisher.AssertNotCalled(t, "PublishStatusChange", ctx, mock.Anything)
	})

	t.Run("another driver cannot confirm", func(t *testing.T) {
		cons := assignedConsignment(t, 0, kernel.NewUUID())

		consRepo := &MockConsignmentRepository{}
		consRepo.On("Get", ctx, cons.ID()).Return(cons, nil)

		uow := &MockUnitOfWork{}
		uow.On("Begin", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("ConsignmentRepository").Return(consRepo)

		handler := commands.NewConfirmPickupCommandHandler(
			stubConsignmentUoWFactory{uow: uow}, nil, nil)

		command, err := commands.NewConfirmPickupCommand(cons.ID(), kernel.NewUUID(), now)
		require.NoError(t, err)

		err = handler.Handle(ctx, command)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, consignment.Assigned, cons.Status())
	})
}
