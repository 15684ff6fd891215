package sessionrepo_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres/pgtest"
	"orderdesk/internal/adapters/out/postgres/sessionrepo"
	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/session"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type SessionRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *sessionrepo.GormSessionRepository
}

func (suite *SessionRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *SessionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = sessionrepo.NewGormSessionRepository(suite.database.DB)
}

func (suite *SessionRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *SessionRepositoryIntegrationTestSuite) TestAddGetDelete() {
	ctx := context.Background()

	// Given
	s := suite.createSession(now, time.Hour)

	// When
	suite.Require().NoError(suite.repository.Add(ctx, s))
	loaded, err := suite.repository.Get(ctx, s.ID())

	// Then
	suite.Require().NoError(err)
	suite.Equal(actor.Courier, loaded.Role())
	suite.Equal("courier-1", loaded.ActorCode().Reveal())
	suite.True(s.ExpiresAt().Equal(loaded.ExpiresAt()))

	suite.Require().NoError(suite.repository.Delete(ctx, s.ID()))
	_, err = suite.repository.Get(ctx, s.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	// Deleting again is a no-op.
	suite.Require().NoError(suite.repository.Delete(ctx, s.ID()))
}

func (suite *SessionRepositoryIntegrationTestSuite) TestDeleteExpired() {
	ctx := context.Background()

	// Given
	expired := suite.createSession(now.Add(-2*time.Hour), time.Hour)
	expiringNow := suite.createSession(now.Add(-time.Hour), time.Hour)
	live := suite.createSession(now, time.Hour)
	for _, s := range []*session.Session{expired, expiringNow, live} {
		suite.Require().NoError(suite.repository.Add(ctx, s))
	}

	// When
	removed, err := suite.repository.DeleteExpired(ctx, now)

	// Then
	suite.Require().NoError(err)
	suite.Equal(int64(2), removed)

	_, err = suite.repository.Get(ctx, live.ID())
	suite.Require().NoError(err)
	_, err = suite.repository.Get(ctx, expired.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SessionRepositoryIntegrationTestSuite) createSession(start time.Time, ttl time.Duration) *session.Session {
	code, err := actor.NewAccessCode("courier-1")
	suite.Require().NoError(err)
	s, err := session.NewSession(kernel.NewUUID(), actor.Courier, code, start, ttl)
	suite.Require().NoError(err)
	return s
}

func TestSessionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SessionRepositoryIntegrationTestSuite))
}
