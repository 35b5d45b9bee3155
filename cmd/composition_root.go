package cmd

import (
	"context"
	"log/slog"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/events"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *events.Dispatcher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	publisher := events.NewDispatcher(logger)
	publisher.SubscribeAll(events.NewLogSubscriber(logger))

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		clock:      kernel.SystemClock{},
		logger:     logger,
	}
}

// EventDispatcher exposes the in-process dispatcher so callers can add subscribers.
func (c *CompositionRoot) EventDispatcher() *events.Dispatcher {
	return c.publisher
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) transporterUoWFactory() commands.TransporterUoWFactory {
	return FuncTransporterUoWFactory(func() commands.TransporterUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryForBoth() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterTransporterCommandHandler() httpin.CommandHandler[commands.RegisterTransporterCommand] {
	return defaultRadiusRegistrar{
		next:     commands.NewRegisterTransporterCommandHandler(c.transporterUoWFactory()),
		radiusKm: c.config.DefaultServiceRadiusKm,
	}
}

func (c *CompositionRoot) CreateAddDriverCommandHandler() commands.AddDriverCommandHandler {
	return commands.NewAddDriverCommandHandler(c.transporterUoWFactory())
}

func (c *CompositionRoot) CreateAddVehicleCommandHandler() commands.AddVehicleCommandHandler {
	return commands.NewAddVehicleCommandHandler(c.transporterUoWFactory())
}

func (c *CompositionRoot) CreateVerifyTransporterCommandHandler() commands.VerifyTransporterCommandHandler {
	return commands.NewVerifyTransporterCommandHandler(c.transporterUoWFactory())
}

func (c *CompositionRoot) CreateCreateTransportRequestCommandHandler() commands.CreateTransportRequestCommandHandler {
	return commands.NewCreateTransportRequestCommandHandler(c.requestUoWFactory(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateStartBiddingCommandHandler() commands.StartBiddingCommandHandler {
	return commands.NewStartBiddingCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateSubmitBidCommandHandler() commands.SubmitBidCommandHandler {
	return commands.NewSubmitBidCommandHandler(c.uowFactoryForBoth(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateWithdrawBidCommandHandler() commands.WithdrawBidCommandHandler {
	return commands.NewWithdrawBidCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateAcceptBidCommandHandler() commands.AcceptBidCommandHandler {
	return commands.NewAcceptBidCommandHandler(c.requestUoWFactory(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateAllocateBidCommandHandler() commands.AllocateBidCommandHandler {
	return commands.NewAllocateBidCommandHandler(c.uowFactoryForBoth(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateCreateJobAssignmentCommandHandler() commands.CreateJobAssignmentCommandHandler {
	return commands.NewCreateJobAssignmentCommandHandler(c.uowFactoryForBoth(), c.clock)
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	return commands.NewStartTransitCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateCompleteTransportRequestCommandHandler() commands.CompleteTransportRequestCommandHandler {
	return commands.NewCompleteTransportRequestCommandHandler(c.uowFactoryForBoth(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateCancelTransportRequestCommandHandler() commands.CancelTransportRequestCommandHandler {
	return commands.NewCancelTransportRequestCommandHandler(c.uowFactoryForBoth(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateExpireStaleRequestsCommandHandler() commands.ExpireStaleRequestsCommandHandler {
	return commands.NewExpireStaleRequestsCommandHandler(c.requestUoWFactory(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateGetTransportRequestQueryHandler() queries.GetTransportRequestQueryHandler {
	return queries.NewGetTransportRequestQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNearbyOpenRequestsQueryHandler() queries.GetNearbyOpenRequestsQueryHandler {
	return queries.NewGetNearbyOpenRequestsQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetTransporterBidsQueryHandler() queries.GetTransporterBidsQueryHandler {
	return queries.NewGetTransporterBidsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterTransporter: c.CreateRegisterTransporterCommandHandler(),
		VerifyTransporter:   c.CreateVerifyTransporterCommandHandler(),
		AddDriver:           c.CreateAddDriverCommandHandler(),
		AddVehicle:          c.CreateAddVehicleCommandHandler(),

		CreateTransportRequest:   c.CreateCreateTransportRequestCommandHandler(),
		StartBidding:             c.CreateStartBiddingCommandHandler(),
		SubmitBid:                c.CreateSubmitBidCommandHandler(),
		WithdrawBid:              c.CreateWithdrawBidCommandHandler(),
		AcceptBid:                c.CreateAcceptBidCommandHandler(),
		AllocateBid:              c.CreateAllocateBidCommandHandler(),
		CreateJobAssignment:      c.CreateCreateJobAssignmentCommandHandler(),
		StartTransit:             c.CreateStartTransitCommandHandler(),
		CompleteTransportRequest: c.CreateCompleteTransportRequestCommandHandler(),
		CancelTransportRequest:   c.CreateCancelTransportRequestCommandHandler(),

		GetTransportRequest:   c.CreateGetTransportRequestQueryHandler(),
		GetNearbyOpenRequests: c.CreateGetNearbyOpenRequestsQueryHandler(),
		GetTransporterBids:    c.CreateGetTransporterBidsQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireStaleRequestsCommandHandler(), c.config.RequestExpirySchedule, c.logger)
}

// defaultRadiusRegistrar gives registrations without a service radius the configured one.
type defaultRadiusRegistrar struct {
	next     httpin.CommandHandler[commands.RegisterTransporterCommand]
	radiusKm float64
}

func (r defaultRadiusRegistrar) Handle(ctx context.Context, cmd commands.RegisterTransporterCommand) error {
	if cmd.Validate() == nil && cmd.ServiceRadiusKm() == 0 && r.radiusKm > 0 {
		withRadius, err := commands.NewRegisterTransporterCommand(
			cmd.TransporterID(), cmd.UserID(), cmd.Details(), r.radiusKm)
		if err != nil {
			return err
		}
		cmd = withRadius
	}
	return r.next.Handle(ctx, cmd)
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncTransporterUoWFactory func() commands.TransporterUoW

func (f FuncTransporterUoWFactory) Create() commands.TransporterUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
