package actorrepo_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres/actorrepo"
	"orderdesk/internal/adapters/out/postgres/pgtest"
	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var createdAt = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type ActorRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *actorrepo.GormActorRepository
}

func (suite *ActorRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *ActorRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = actorrepo.NewGormActorRepository(suite.database.DB)
}

func (suite *ActorRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *ActorRepositoryIntegrationTestSuite) TestAddAndGetByCode() {
	ctx := context.Background()

	// Given
	courier := suite.createActor(actor.Courier, "courier-42", "Bakyt")

	// When
	suite.Require().NoError(suite.repository.Add(ctx, courier))
	loaded, err := suite.repository.GetByCode(ctx, actor.Courier, courier.Code())

	// Then
	suite.Require().NoError(err)
	suite.Equal(courier.ID(), loaded.ID())
	suite.Equal("Bakyt", loaded.Name())
	suite.Equal("+996555000111", loaded.Phone())
	suite.True(loaded.IsActive())
}

// TestGetByCode_IsScopedByRole checks that a chef code does not resolve as a courier.
func (suite *ActorRepositoryIntegrationTestSuite) TestGetByCode_IsScopedByRole() {
	ctx := context.Background()

	chef := suite.createActor(actor.Chef, "shared-code", "Nurlan")
	suite.Require().NoError(suite.repository.Add(ctx, chef))

	_, err := suite.repository.GetByCode(ctx, actor.Courier, chef.Code())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.NotContains(err.Error(), "shared-code")

	active, err := suite.repository.IsActive(ctx, actor.Courier, chef.Code())
	suite.Require().NoError(err)
	suite.False(active)

	// The same code may exist under the other role.
	suite.Require().NoError(suite.repository.Add(ctx, suite.createActor(actor.Courier, "shared-code", "Aida")))
}

func (suite *ActorRepositoryIntegrationTestSuite) TestAdd_DuplicateCodeWithinRole() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.createActor(actor.Chef, "chef-1", "Nurlan")))

	err := suite.repository.Add(ctx, suite.createActor(actor.Chef, "chef-1", "Other"))
	suite.Require().ErrorIs(err, ports.ErrDuplicateKey)
}

func (suite *ActorRepositoryIntegrationTestSuite) TestUpdate_Deactivate() {
	ctx := context.Background()

	// Given
	courier := suite.createActor(actor.Courier, "courier-9", "Bakyt")
	suite.Require().NoError(suite.repository.Add(ctx, courier))

	// When
	courier.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, courier))

	// Then
	active, err := suite.repository.IsActive(ctx, actor.Courier, courier.Code())
	suite.Require().NoError(err)
	suite.False(active)

	loaded, err := suite.repository.GetByCode(ctx, actor.Courier, courier.Code())
	suite.Require().NoError(err)
	suite.False(loaded.IsActive())
}

func (suite *ActorRepositoryIntegrationTestSuite) TestUpdate_UnknownActor() {
	err := suite.repository.Update(context.Background(), suite.createActor(actor.Chef, "ghost", "Ghost"))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ActorRepositoryIntegrationTestSuite) createActor(role actor.Role, code, name string) *actor.Actor {
	a, err := pgtest.NewActor(role, code, name, createdAt)
	suite.Require().NoError(err)
	return a
}

func TestActorRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ActorRepositoryIntegrationTestSuite))
}
