package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if d, ok := args.Get(0).(*delivery.Delivery); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeliveryRepository) GetAllByStatus(
	ctx context.Context,
	status delivery.Status,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, status)
	if ds, ok := args.Get(0).([]*delivery.Delivery); ok {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishDeliveryStarted(ctx context.Context, event ports.DeliveryStartedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishDeliveryCompleted(ctx context.Context, event ports.DeliveryCompletedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readyDelivery(t *testing.T, orderID int64) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(orderID, "221B Baker Street", "trace-abc")
	require.NoError(t, err)
	return d
}

func shippedDelivery(t *testing.T, orderID int64) *delivery.Delivery {
	t.Helper()
	d := readyDelivery(t, orderID)
	require.NoError(t, d.Start())
	return d
}
