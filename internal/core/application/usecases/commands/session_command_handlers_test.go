package commands_test

import (
	"errors"
	"testing"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/session"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, role actor.Role, code string, active bool) *actor.Actor {
	t.Helper()
	a, err := actor.RestoreActor(kernel.NewUUID(), role, accessCode(t, code), "Nurlan", "", active, fixedNow)
	require.NoError(t, err)
	return a
}

func newSession(t *testing.T, role actor.Role, code string, expiresIn time.Duration) *session.Session {
	t.Helper()
	s, err := session.RestoreSession(kernel.NewUUID(), role, accessCode(t, code), fixedNow.Add(-time.Hour), fixedNow.Add(expiresIn))
	require.NoError(t, err)
	return s
}

func sessionUoW(actors *MockActorRepository, sessions *MockSessionRepository) (*MockUoW, *MockSessionUoWFactory) {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	if actors != nil {
		uow.On("ActorRepository").Return(actors).Maybe()
	}
	if sessions != nil {
		uow.On("SessionRepository").Return(sessions).Maybe()
	}
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestLoginCommandHandler_Handle(t *testing.T) {
	t.Run("active chef gets a session", func(t *testing.T) {
		// Given
		ctx := t.Context()
		chef := newActor(t, actor.Chef, "chef-1", true)
		actors, sessions := new(MockActorRepository), new(MockSessionRepository)
		uow, factory := sessionUoW(actors, sessions)

		actors.On("GetByCode", ctx, actor.Chef, chef.Code()).Return(chef, nil).Once()
		var stored *session.Session
		sessions.On("Add", ctx, mock.AnythingOfType("*session.Session")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*session.Session) }).
			Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewLoginCommand(actor.Chef, " chef-1 ")
		require.NoError(t, err)

		// When
		res, err := commands.NewLoginCommandHandler(factory, 12*time.Hour, clock).Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, stored.ID(), res.SessionID)
		assert.Equal(t, "Nurlan", res.ActorName)
		assert.Equal(t, fixedNow.Add(12*time.Hour), res.ExpiresAt)
		assert.Equal(t, actor.Chef, stored.Role())
		assert.Equal(t, "chef-1", stored.ActorCode().Reveal())
		uow.AssertExpectations(t)
		actors.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("unknown and inactive codes are unauthorized", func(t *testing.T) {
		for name, lookup := range map[string]func(actors *MockActorRepository){
			"unknown": func(actors *MockActorRepository) {
				actors.On("GetByCode", mock.Anything, actor.Courier, mock.Anything).
					Return(nil, errs.NewObjectNotFoundError("actor", "c-1")).Once()
			},
			"inactive": func(actors *MockActorRepository) {
				actors.On("GetByCode", mock.Anything, actor.Courier, mock.Anything).
					Return(newActor(t, actor.Courier, "c-1", false), nil).Once()
			},
		} {
			t.Run(name, func(t *testing.T) {
				actors, sessions := new(MockActorRepository), new(MockSessionRepository)
				uow, factory := sessionUoW(actors, sessions)
				lookup(actors)

				cmd, err := commands.NewLoginCommand(actor.Courier, "c-1")
				require.NoError(t, err)

				_, err = commands.NewLoginCommandHandler(factory, time.Hour, clock).Handle(t.Context(), cmd)

				require.ErrorIs(t, err, commands.ErrUnauthorized)
				sessions.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
				uow.AssertNotCalled(t, "Commit", mock.Anything)
			})
		}
	})

	t.Run("overlong code is rejected before lookup", func(t *testing.T) {
		_, err := commands.NewLoginCommand(actor.Chef, string(make([]byte, 51)))
		require.Error(t, err)
	})
}

func TestAuthenticateSessionCommandHandler_Handle(t *testing.T) {
	t.Run("valid binding resolves to principal", func(t *testing.T) {
		ctx := t.Context()
		s := newSession(t, actor.Chef, "chef-1", time.Hour)
		actors, sessions := new(MockActorRepository), new(MockSessionRepository)
		_, factory := sessionUoW(actors, sessions)

		sessions.On("Get", ctx, s.ID()).Return(s, nil).Once()
		actors.On("GetByCode", ctx, actor.Chef, s.ActorCode()).Return(newActor(t, actor.Chef, "chef-1", true), nil).Once()

		cmd, err := commands.NewAuthenticateSessionCommand(s.ID().String())
		require.NoError(t, err)

		principal, err := commands.NewAuthenticateSessionCommandHandler(factory, clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, actor.Chef, principal.Role)
		assert.Equal(t, "chef-1", principal.Code.Reveal())
		assert.Equal(t, s.ID(), principal.SessionID)
		sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deactivated actor loses the binding", func(t *testing.T) {
		// Given a session that was valid when the chef logged in.
		ctx := t.Context()
		s := newSession(t, actor.Chef, "chef-1", time.Hour)
		actors, sessions := new(MockActorRepository), new(MockSessionRepository)
		uow, factory := sessionUoW(actors, sessions)

		sessions.On("Get", ctx, s.ID()).Return(s, nil).Once()
		actors.On("GetByCode", ctx, actor.Chef, s.ActorCode()).Return(newActor(t, actor.Chef, "chef-1", false), nil).Once()
		sessions.On("Delete", ctx, s.ID()).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewAuthenticateSessionCommand(s.ID().String())
		require.NoError(t, err)

		// When
		_, err = commands.NewAuthenticateSessionCommandHandler(factory, clock).Handle(ctx, cmd)

		// Then
		require.ErrorIs(t, err, commands.ErrUnauthorized)
		sessions.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("removed actor loses the binding", func(t *testing.T) {
		ctx := t.Context()
		s := newSession(t, actor.Courier, "c-9", time.Hour)
		actors, sessions := new(MockActorRepository), new(MockSessionRepository)
		uow, factory := sessionUoW(actors, sessions)

		sessions.On("Get", ctx, s.ID()).Return(s, nil).Once()
		actors.On("GetByCode", ctx, actor.Courier, s.ActorCode()).Return(nil, errs.NewObjectNotFoundError("actor", "c-9")).Once()
		sessions.On("Delete", ctx, s.ID()).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewAuthenticateSessionCommand(s.ID().String())
		require.NoError(t, err)

		_, err = commands.NewAuthenticateSessionCommandHandler(factory, clock).Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrUnauthorized)
		sessions.AssertExpectations(t)
	})

	t.Run("expired binding is removed without directory lookup", func(t *testing.T) {
		ctx := t.Context()
		s := newSession(t, actor.Chef, "chef-1", -time.Minute)
		actors, sessions := new(MockActorRepository), new(MockSessionRepository)
		uow, factory := sessionUoW(actors, sessions)

		sessions.On("Get", ctx, s.ID()).Return(s, nil).Once()
		sessions.On("Delete", ctx, s.ID()).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewAuthenticateSessionCommand(s.ID().String())
		require.NoError(t, err)

		_, err = commands.NewAuthenticateSessionCommandHandler(factory, clock).Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrUnauthorized)
		actors.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown binding", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		sessions := new(MockSessionRepository)
		_, factory := sessionUoW(nil, sessions)
		sessions.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("session", id.String())).Once()

		cmd, err := commands.NewAuthenticateSessionCommand(id.String())
		require.NoError(t, err)

		_, err = commands.NewAuthenticateSessionCommandHandler(factory, clock).Handle(ctx, cmd)
		require.ErrorIs(t, err, commands.ErrUnauthorized)
	})

	t.Run("garbage cookie", func(t *testing.T) {
		_, err := commands.NewAuthenticateSessionCommand("role=chef;code=chef-1")
		require.ErrorIs(t, err, commands.ErrUnauthorized)
	})

	t.Run("storage failure is not disguised", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		sessions := new(MockSessionRepository)
		_, factory := sessionUoW(nil, sessions)
		sessions.On("Get", ctx, id).Return(nil, errors.New("connection reset")).Once()

		cmd, err := commands.NewAuthenticateSessionCommand(id.String())
		require.NoError(t, err)

		_, err = commands.NewAuthenticateSessionCommandHandler(factory, clock).Handle(ctx, cmd)
		require.EqualError(t, err, "connection reset")
	})
}

func TestLogoutCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	sessions := new(MockSessionRepository)
	uow, factory := sessionUoW(nil, sessions)
	sessions.On("Delete", ctx, id).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewLogoutCommand(id)
	require.NoError(t, err)

	require.NoError(t, commands.NewLogoutCommandHandler(factory).Handle(ctx, cmd))
	sessions.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPurgeExpiredSessionsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	sessions := new(MockSessionRepository)
	uow, factory := sessionUoW(nil, sessions)
	sessions.On("DeleteExpired", ctx, fixedNow).Return(int64(4), nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	removed, err := commands.NewPurgeExpiredSessionsCommandHandler(factory).
		Handle(ctx, commands.NewPurgeExpiredSessionsCommand(fixedNow))

	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	uow.AssertExpectations(t)
}
