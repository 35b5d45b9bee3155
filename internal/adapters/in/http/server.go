// Package http exposes the marketplace commands and queries over a JSON API built on echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CommandHandler is satisfied by every command handler without a result.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler is satisfied by query handlers and by command handlers that return the
// id of what they created.
type ResultHandler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	RegisterTransporter CommandHandler[commands.RegisterTransporterCommand]
	VerifyTransporter   CommandHandler[commands.VerifyTransporterCommand]
	AddDriver           CommandHandler[commands.AddDriverCommand]
	AddVehicle          CommandHandler[commands.AddVehicleCommand]

	CreateTransportRequest   CommandHandler[commands.CreateTransportRequestCommand]
	StartBidding             CommandHandler[commands.StartBiddingCommand]
	SubmitBid                ResultHandler[commands.SubmitBidCommand, kernel.UUID]
	WithdrawBid              CommandHandler[commands.WithdrawBidCommand]
	AcceptBid                CommandHandler[commands.AcceptBidCommand]
	AllocateBid              ResultHandler[commands.AllocateBidCommand, kernel.UUID]
	CreateJobAssignment      ResultHandler[commands.CreateJobAssignmentCommand, kernel.UUID]
	StartTransit             CommandHandler[commands.StartTransitCommand]
	CompleteTransportRequest CommandHandler[commands.CompleteTransportRequestCommand]
	CancelTransportRequest   CommandHandler[commands.CancelTransportRequestCommand]

	GetTransportRequest   ResultHandler[queries.GetTransportRequestQuery, queries.GetTransportRequestQueryResponse]
	GetNearbyOpenRequests ResultHandler[queries.GetNearbyOpenRequestsQuery, []queries.GetNearbyOpenRequestsQueryResponse]
	GetTransporterBids    ResultHandler[queries.GetTransporterBidsQuery, []queries.GetTransporterBidsQueryResponse]
}

// Server translates HTTP requests into commands and queries and maps the error
// taxonomy onto status codes.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// NewEcho builds an echo instance with recovery, slog request logging, and every route
// registered.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLogger(s.logger))

	s.RegisterRoutes(e)
	return e
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	transporters := api.Group("/transporters")
	transporters.POST("", s.RegisterTransporter)
	transporters.POST("/:id/verify", s.VerifyTransporter)
	transporters.POST("/:id/drivers", s.AddDriver)
	transporters.POST("/:id/vehicles", s.AddVehicle)
	transporters.GET("/:id/bids", s.GetTransporterBids)

	requests := api.Group("/requests")
	requests.POST("", s.CreateTransportRequest)
	requests.GET("/nearby", s.GetNearbyOpenRequests)
	requests.GET("/:id", s.GetTransportRequest)
	requests.POST("/:id/bidding", s.StartBidding)
	requests.POST("/:id/bids", s.SubmitBid)
	requests.POST("/:id/bids/:bidId/withdraw", s.WithdrawBid)
	requests.POST("/:id/bids/:bidId/accept", s.AcceptBid)
	requests.POST("/:id/allocate", s.AllocateBid)
	requests.POST("/:id/assignment", s.CreateJobAssignment)
	requests.POST("/:id/transit", s.StartTransit)
	requests.POST("/:id/complete", s.CompleteTransportRequest)
	requests.POST("/:id/cancel", s.CancelTransportRequest)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RequestLogger writes one slog record per request. Failed requests are logged at
// error level.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.RequestID != "" {
				attrs = append(attrs, slog.String("request_id", v.RequestID))
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			logger.LogAttrs(c.Request().Context(), level, "HTTP request", attrs...)
			return nil
		},
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return parseUUID(name, ctx.Param(name))
}

func parseUUID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
