package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/ports"
)

// CreateTransportRequestCommandHandler persists a new Open request and publishes
// RequestCreated once the transaction has committed.
type CreateTransportRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewCreateTransportRequestCommandHandler(
	uowFactory RequestUoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) CreateTransportRequestCommandHandler {
	return CreateTransportRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h CreateTransportRequestCommandHandler) Handle(ctx context.Context, cmd CreateTransportRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.TransportRequestRepository()
	r, created, err := request.NewTransportRequest(cmd.RequestID(), cmd.RequesterID(), cmd.Details(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = requestRepo.Add(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publish(ctx, h.publisher, created)
	return nil
}
