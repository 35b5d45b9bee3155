package commands

import (
	"context"
)

type StartBiddingCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewStartBiddingCommandHandler(uowFactory RequestUoWFactory) StartBiddingCommandHandler {
	return StartBiddingCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h StartBiddingCommandHandler) Handle(ctx context.Context, cmd StartBiddingCommand) error {
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

	if err = r.StartBidding(); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
