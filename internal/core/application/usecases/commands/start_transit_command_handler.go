package commands

import (
	"context"
)

// StartTransitCommandHandler records pickup. The request must already carry a job
// assignment.
type StartTransitCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewStartTransitCommandHandler(uowFactory RequestUoWFactory) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h StartTransitCommandHandler) Handle(ctx context.Context, cmd StartTransitCommand) error {
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
	r, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = r.StartTransit(); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
