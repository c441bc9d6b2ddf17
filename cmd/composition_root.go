package cmd

import (
	"log/slog"

	adapterhttp "courier/internal/adapters/in/http"
	"courier/internal/adapters/in/push"
	"courier/internal/adapters/out/jobsvc"
	"courier/internal/adapters/out/postgres"
	"courier/internal/core/application/session"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	session     *session.Session
	jobService  ports.JobService
	redisClient *redis.Client
	logger      *slog.Logger
	config      Config
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	sess *session.Session,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		session:     sess,
		jobService:  jobsvc.NewClient(config.JobServiceURL, config.AuthToken),
		redisClient: redisClient,
		logger:      logger,
		config:      config,
	}
}

func (c *CompositionRoot) Session() *session.Session {
	return c.session
}

func (c *CompositionRoot) CreatePresentOfferCommandHandler() commands.PresentOfferCommandHandler {
	return commands.NewPresentOfferCommandHandler(c.session)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.session, c.jobService)
}

func (c *CompositionRoot) CreateRejectOfferCommandHandler() commands.RejectOfferCommandHandler {
	return commands.NewRejectOfferCommandHandler(c.session)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(c.session, c.jobService, f)
}

func (c *CompositionRoot) CreateSetAvailabilityCommandHandler() commands.SetAvailabilityCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetAvailabilityCommandHandler(c.session, f, c.logger)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(c.session, f)
}

func (c *CompositionRoot) CreateRolloverLedgerCommandHandler() commands.RolloverLedgerCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRolloverLedgerCommandHandler(c.session, f)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEarningsSummaryQueryHandler() queries.GetEarningsSummaryQueryHandler {
	return queries.NewGetEarningsSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOfferSubscriber() *push.Subscriber {
	return push.NewSubscriber(
		c.redisClient,
		c.config.OfferChannel,
		c.CreatePresentOfferCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.session,
		c.CreateAcceptOfferCommandHandler(),
		c.CreateRejectOfferCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateSetAvailabilityCommandHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetEarningsSummaryQueryHandler(),
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
