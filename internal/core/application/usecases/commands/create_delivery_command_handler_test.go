package commands_test

import (
	"errors"
	"testing"

	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDeliveryCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCreateDeliveryCommand(1001, "221B Baker Street", "trace-abc")
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.EqualValues(t, 1001, cmd.OrderID())
		assert.Equal(t, "221B Baker Street", cmd.Address())
		assert.Equal(t, "trace-abc", cmd.TraceID())
	})

	t.Run("invalid orderId", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(0, "addr", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing address", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(1001, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateDeliveryCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateDeliveryCommandIsNotConstructed)
	})
}

func TestCreateDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateDeliveryCommand(1001, "221B Baker Street", "trace-abc")

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByOrderID", mock.Anything, int64(1001)).
			Return(nil, errs.NewObjectNotFoundError("orderId", int64(1001))).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, delivery.Ready, created.Status())
	assert.EqualValues(t, 1001, created.OrderID())
	assert.Equal(t, "trace-abc", created.TraceID())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_DuplicateReturnsExisting(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateDeliveryCommand(1001, "somewhere else", "trace-later")
	existing := readyDelivery(t, 1001)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByOrderID", mock.Anything, int64(1001)).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Same(t, existing, got)
	// the existing record must not be overwritten by the duplicate create
	assert.Equal(t, "221B Baker Street", got.Address())

	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockDeliveryUoWFactory)
	h := commands.NewCreateDeliveryCommandHandler(factory)

	var cmd commands.CreateDeliveryCommand // not constructed properly
	_, err := h.Handle(t.Context(), cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateDeliveryCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateDeliveryCommand(1001, "221B Baker Street", "")

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByOrderID", mock.Anything, int64(1001)).
			Return(nil, errs.NewObjectNotFoundError("orderId", int64(1001))).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
			Return(errors.New("connection reset")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)

	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_InsertRaceFallsBackToExisting(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateDeliveryCommand(1001, "221B Baker Street", "")
	existing := readyDelivery(t, 1001)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("DeliveryRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("GetByOrderID", mock.Anything, int64(1001)).
		Return(nil, errs.NewObjectNotFoundError("orderId", int64(1001))).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
		Return(errs.NewObjectAlreadyExistsError("orderId", int64(1001))).Once()
	repo.On("GetByOrderID", mock.Anything, int64(1001)).Return(existing, nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewCreateDeliveryCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Same(t, existing, got)

	repo.AssertExpectations(t)
	factory.AssertExpectations(t)
}
