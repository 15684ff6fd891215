package cmd

import (
	"time"

	httpin "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/postgres"
	"orderdesk/internal/adapters/out/rabbitmq"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/jobs"
	"orderdesk/internal/pkg/keylock"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	readDB     *sqlx.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	locks      *keylock.KeyLock
	limiters   httpin.Limiters
	logger     logrus.FieldLogger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	readDB *sqlx.DB,
	publisher ports.OrderEventPublisher,
	logger logrus.FieldLogger,
) CompositionRoot {
	if publisher == nil {
		publisher = rabbitmq.NopPublisher{}
	}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		readDB:     readDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		locks:      keylock.New(),
		limiters: httpin.NewLimiters(httpin.RateLimits{
			Create: config.RateLimitCreatePerMinute,
			Update: config.RateLimitUpdatePerMinute,
			Read:   config.RateLimitReadPerMinute,
		}, time.Now),
		logger: logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) actorUoWFactory() commands.ActorUoWFactory {
	return FuncActorUoWFactory(func() commands.ActorUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	issuer := services.NewOrderCodeIssuer(services.NewRandomCodeGenerator(), services.DefaultMaxCodeAttempts)
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), issuer, c.config.DeliverySurcharge, time.Now)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.locks, c.publisher, c.logger, time.Now)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.sessionUoWFactory(), c.config.SessionTTL, time.Now)
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateAuthenticateSessionCommandHandler() commands.AuthenticateSessionCommandHandler {
	return commands.NewAuthenticateSessionCommandHandler(c.sessionUoWFactory(), time.Now)
}

func (c *CompositionRoot) CreatePurgeExpiredSessionsCommandHandler() commands.PurgeExpiredSessionsCommandHandler {
	return commands.NewPurgeExpiredSessionsCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateAddActorCommandHandler() commands.AddActorCommandHandler {
	return commands.NewAddActorCommandHandler(c.actorUoWFactory(), time.Now)
}

func (c *CompositionRoot) CreateSetActorActiveCommandHandler() commands.SetActorActiveCommandHandler {
	return commands.NewSetActorActiveCommandHandler(c.actorUoWFactory())
}

func (c *CompositionRoot) CreateGetKitchenQueueQueryHandler() queries.GetKitchenQueueQueryHandler {
	return queries.NewGetKitchenQueueQueryHandler(c.readDB)
}

func (c *CompositionRoot) CreateGetCourierFeedQueryHandler() queries.GetCourierFeedQueryHandler {
	return queries.NewGetCourierFeedQueryHandler(c.readDB)
}

func (c *CompositionRoot) CreateGetOrderBySecretCodeQueryHandler() queries.GetOrderBySecretCodeQueryHandler {
	return queries.NewGetOrderBySecretCodeQueryHandler(c.readDB)
}

func (c *CompositionRoot) CreateListActorsQueryHandler() queries.ListActorsQueryHandler {
	return queries.NewListActorsQueryHandler(c.readDB)
}

// RouterConfig wires every HTTP use case.
func (c *CompositionRoot) RouterConfig() httpin.RouterConfig {
	return httpin.RouterConfig{
		Handlers: httpin.Handlers{
			CreateOrder:       c.CreateCreateOrderCommandHandler(),
			UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
			Login:             c.CreateLoginCommandHandler(),
			Logout:            c.CreateLogoutCommandHandler(),
			Authenticate:      c.CreateAuthenticateSessionCommandHandler(),
			KitchenQueue:      c.CreateGetKitchenQueueQueryHandler(),
			CourierFeed:       c.CreateGetCourierFeedQueryHandler(),
			TrackOrder:        c.CreateGetOrderBySecretCodeQueryHandler(),
		},
		Limiters:      c.limiters,
		Logger:        c.logger,
		CSRFEnabled:   c.config.CSRFEnabled,
		SecureCookies: c.config.SessionCookieSecure,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreatePurgeExpiredSessionsCommandHandler(), c.limiters, time.Now, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncActorUoWFactory func() commands.ActorUoW

func (f FuncActorUoWFactory) Create() commands.ActorUoW {
	return f()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}
