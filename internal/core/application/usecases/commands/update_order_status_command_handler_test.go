package commands_test

import (
	"errors"
	"testing"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/keylock"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPublicCode = order.PublicCode("#R3DY")

func accessCode(t *testing.T, raw string) actor.AccessCode {
	t.Helper()
	code, err := actor.NewAccessCode(raw)
	require.NoError(t, err)
	return code
}

func restoredOrder(t *testing.T, deliveryType order.DeliveryType, status order.Status, acceptedBy *string) *order.Order {
	t.Helper()
	phone, err := kernel.NewPhone("0555000111")
	require.NoError(t, err)
	item, err := order.NewItem("Plov", 250, 2)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		testPublicCode,
		"sEcReT_token-1",
		order.Details{
			ClientName:   "Bakyt",
			ClientPhone:  phone,
			DeliveryType: deliveryType,
			Address:      "Manas 40",
		},
		[]order.Item{item},
		550,
		status,
		acceptedBy,
		fixedNow,
		3,
	)
	require.NoError(t, err)
	return o
}

type lifecycleFixture struct {
	uow       *MockUoW
	orders    *MockOrderRepository
	actors    *MockActorRepository
	factory   *MockOrderUoWFactory
	publisher *MockEventPublisher
	logHook   *logtest.Hook
	handler   commands.UpdateOrderStatusCommandHandler
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	f := &lifecycleFixture{
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		actors:    new(MockActorRepository),
		factory:   new(MockOrderUoWFactory),
		publisher: new(MockEventPublisher),
		logHook:   hook,
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("ActorRepository").Return(f.actors).Once()
	f.uow.On("OrderRepository").Return(f.orders).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()

	f.handler = commands.NewUpdateOrderStatusCommandHandler(f.factory, keylock.New(), f.publisher, logger, clock)
	return f
}

func (f *lifecycleFixture) assertExpectations(t *testing.T) {
	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.actors.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestUpdateOrderStatus_ChefMovesOrderToCooking(t *testing.T) {
	// Given
	ctx := t.Context()
	f := newLifecycleFixture(t)
	chef := accessCode(t, "chef-1")
	o := restoredOrder(t, order.Pickup, order.New, nil)

	f.actors.On("IsActive", ctx, actor.Chef, chef).Return(true, nil).Once()
	f.orders.On("GetByPublicCodeForUpdate", ctx, testPublicCode).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", ctx, ports.OrderStatusChanged{
		PublicCode:   testPublicCode,
		From:         order.New,
		To:           order.Cooking,
		DeliveryType: order.Pickup,
		ChangedBy:    "chef",
		OccurredAt:   fixedNow,
	}).Return(nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(" #R3DY ", "cooking", actor.Chef, chef, "")
	require.NoError(t, err)

	// When
	err = f.handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, order.Cooking, o.Status())
	assert.Nil(t, o.AcceptedBy())
	f.assertExpectations(t)
}

func TestUpdateOrderStatus_CourierTakesReadyOrder(t *testing.T) {
	// Given
	ctx := t.Context()
	f := newLifecycleFixture(t)
	courier := accessCode(t, "courier-7")
	o := restoredOrder(t, order.Delivery, order.Ready, nil)

	f.actors.On("IsActive", ctx, actor.Courier, courier).Return(true, nil).Twice()
	f.orders.On("GetByPublicCodeForUpdate", ctx, testPublicCode).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", ctx, mock.AnythingOfType("ports.OrderStatusChanged")).Return(nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand("#R3DY", "delivering", actor.Courier, courier, "courier-7")
	require.NoError(t, err)

	// When
	err = f.handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, order.Delivering, o.Status())
	require.NotNil(t, o.AcceptedBy())
	assert.Equal(t, "courier-7", *o.AcceptedBy())
	f.assertExpectations(t)
}

func TestUpdateOrderStatus_TerminalStatusReleasesCourier(t *testing.T) {
	for _, target := range []order.Status{order.Completed, order.Cancelled} {
		t.Run(target.String(), func(t *testing.T) {
			ctx := t.Context()
			f := newLifecycleFixture(t)
			chef := accessCode(t, "chef-1")
			o := restoredOrder(t, order.Delivery, order.Delivering, strPtr("courier-7"))

			f.actors.On("IsActive", ctx, actor.Chef, chef).Return(true, nil).Once()
			f.orders.On("GetByPublicCodeForUpdate", ctx, testPublicCode).Return(o, nil).Once()
			f.orders.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
				return o.Status() == target && o.AcceptedBy() == nil
			})).Return(nil).Once()
			f.uow.On("Commit", ctx).Return(nil).Once()
			f.publisher.On("PublishStatusChanged", ctx, mock.Anything).Return(nil).Once()

			cmd, err := commands.NewUpdateOrderStatusCommand("#R3DY", target.String(), actor.Chef, chef, "")
			require.NoError(t, err)

			require.NoError(t, f.handler.Handle(ctx, cmd))
			assert.Nil(t, o.AcceptedBy())
			f.assertExpectations(t)
		})
	}
}

func TestUpdateOrderStatus_DeactivatedActorIsUnauthorized(t *testing.T) {
	// Given
	ctx := t.Context()
	f := newLifecycleFixture(t)
	chef := accessCode(t, "chef-1")
	f.actors.On("IsActive", ctx, actor.Chef, chef).Return(false, nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand("#R3DY", "cooking", actor.Chef, chef, "")
	require.NoError(t, err)

	// When
	err = f.handler.Handle(ctx, cmd)

	// Then
	require.ErrorIs(t, err, commands.ErrUnauthorized)
	f.orders.AssertNotCalled(t, "GetByPublicCodeForUpdate", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderStatus_MissingIdentityIsUnauthorized(t *testing.T) {
	ctx := t.Context()
	f := newLifecycleFixture(t)

	cmd, err := commands.NewUpdateOrderStatusCommand("#R3DY", "cooking", "", actor.AccessCode{}, "")
	require.NoError(t, err)

	require.ErrorIs(t, f.handler.Handle(ctx, cmd), commands.ErrUnauthorized)
	f.actors.AssertNotCalled(t, "IsActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	f := newLifecycleFixture(t)
	chef := accessCode(t, "chef-1")

	f.actors.On("IsActive", ctx, actor.Chef, chef).Return(true, nil).Once()
	f.orders.On("GetByPublicCodeForUpdate", ctx, testPublicCode).
		Return(nil, errs.NewObjectNotFoundError("order", testPublicCode.String())).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand("#R3DY", "ready", actor.Chef, chef, "")
	require.NoError(t, err)

	require.ErrorIs(t, f.handler.Handle(ctx, cmd), errs.ErrObjectNotFound)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_MalformedPublicCodeIsNotFound(t *testing.T) {
	ctx := t.Context()
	f := newLifecycleFixture(t)
	chef := accessCode(t, "chef-1")
	f.actors.On("IsActive", ctx, actor.Chef, chef).Return(true, nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand("'; DROP TABLE orders", "ready", actor.Chef, chef, "")
	require.NoError(t, err)

	require.ErrorIs(t, f.handler.Handle(ctx, cmd), errs.ErrObjectNotFound)
	f.orders.AssertNotCalled(t, "GetByPublicCodeForUpdate", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_UnknownCourierLeavesOrderUntouched(t *testing.T) {
	tests := []struct {
		name        string
		courierCode string
		active      *bool
	}{
		{name: "no courier code", courierCode: ""},
		{name: "inactive or unknown courier", courierCode: "ghost", active: new(bool)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			ctx := t.Context()
			f := newLifecycleFixture(t)
			chef := accessCode(t, "chef-1")
			o := restoredOrder(t, order.Delivery, order.Ready, nil)

			f.actors.On("IsActive", ctx, actor.Chef, chef).Return(true, nil).Once()
			f.orders.On("GetByPublicCodeForUpdate", ctx, testPublicCode).Return(o, nil).Once()
			if tt.active != nil {
				f.actors.On("IsActive", ctx, actor.Courier, accessCode(t, tt.courierCode)).Return(*tt.active, nil).Once()
			}

			cmd, err := commands.NewUpdateOrderStatusCommand("#R3DY", "delivering", actor.Chef, chef, tt.courierCode)
			require.NoError(t, err)

			// When
			err = f.handler.Handle(ctx, cmd)

			// Then
			require.ErrorIs(t, err, commands.ErrCourierNotFound)
			assert.Equal(t, order.Ready, o.Status())
			assert.Nil(t, o.AcceptedBy())
			f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestUpdateOrderStatus_OtherCourierCannotTakeOver(t *testing.T) {
	ctx := t.Context()
	f := newLifecycleFixture(t)
	second := accessCode(t, "courier-2")
	o := restoredOrder(t, order.Delivery, order.Delivering, strPtr("courier-1"))

	f.actors.On("IsActive", ctx, actor.Courier, second).Return(true, nil).Twice()
	f.orders.On("GetByPublicCodeForUpdate", ctx, testPublicCode).Return(o, nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand("#R3DY", "delivering", actor.Courier, second, "courier-2")
	require.NoError(t, err)

	err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderAlreadyAccepted)
	assert.Equal(t, "courier-1", *o.AcceptedBy())
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_ConcurrentModificationIsReturned(t *testing.T) {
	ctx := t.Context()
	f := newLifecycleFixture(t)
	chef := accessCode(t, "chef-1")
	o := restoredOrder(t, order.Pickup, order.Cooking, nil)

	f.actors.On("IsActive", ctx, actor.Chef, chef).Return(true, nil).Once()
	f.orders.On("GetByPublicCodeForUpdate", ctx, testPublicCode).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(ports.ErrConcurrentModification).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand("#R3DY", "ready", actor.Chef, chef, "")
	require.NoError(t, err)

	require.ErrorIs(t, f.handler.Handle(ctx, cmd), ports.ErrConcurrentModification)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_PublishFailureIsLoggedOnly(t *testing.T) {
	// Given
	ctx := t.Context()
	f := newLifecycleFixture(t)
	chef := accessCode(t, "chef-1")
	o := restoredOrder(t, order.Pickup, order.Cooking, nil)

	f.actors.On("IsActive", ctx, actor.Chef, chef).Return(true, nil).Once()
	f.orders.On("GetByPublicCodeForUpdate", ctx, testPublicCode).Return(o, nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand("#R3DY", "ready", actor.Chef, chef, "")
	require.NoError(t, err)

	// When
	err = f.handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	require.NotNil(t, f.logHook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, f.logHook.LastEntry().Level)
	assert.Equal(t, "#R3DY", f.logHook.LastEntry().Data["public_code"])
	f.assertExpectations(t)
}

func TestNewUpdateOrderStatusCommand_InvalidStatus(t *testing.T) {
	code := accessCode(t, "chef-1")
	for _, raw := range []string{"", "done", "COOKING", "shipped"} {
		_, err := commands.NewUpdateOrderStatusCommand("#R3DY", raw, actor.Chef, code, "")
		require.ErrorIs(t, err, order.ErrInvalidStatus, raw)
	}
}
