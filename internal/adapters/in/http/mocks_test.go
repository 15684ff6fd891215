package http_test

import (
	"context"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockUpdateOrderStatusHandler struct{ mock.Mock }

func (m *MockUpdateOrderStatusHandler) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockLoginHandler struct{ mock.Mock }

func (m *MockLoginHandler) Handle(ctx context.Context, cmd commands.LoginCommand) (commands.LoginResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.LoginResult), args.Error(1)
}

type MockLogoutHandler struct{ mock.Mock }

func (m *MockLogoutHandler) Handle(ctx context.Context, cmd commands.LogoutCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Handle(ctx context.Context, cmd commands.AuthenticateSessionCommand) (commands.Principal, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.Principal), args.Error(1)
}

type MockKitchenQueueHandler struct{ mock.Mock }

func (m *MockKitchenQueueHandler) Handle(ctx context.Context, query queries.GetKitchenQueueQuery) ([]queries.KitchenOrderResponse, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.([]queries.KitchenOrderResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCourierFeedHandler struct{ mock.Mock }

func (m *MockCourierFeedHandler) Handle(ctx context.Context, query queries.GetCourierFeedQuery) ([]queries.CourierOrderResponse, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.([]queries.CourierOrderResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTrackOrderHandler struct{ mock.Mock }

func (m *MockTrackOrderHandler) Handle(ctx context.Context, query queries.GetOrderBySecretCodeQuery) (queries.TrackedOrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.TrackedOrderResponse), args.Error(1)
}
