package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ExpireStaleRequestsCommandHandler cancels Open and Bidding requests whose scheduled
// time has passed. Each request is cancelled in its own unit of work. A request that
// changed since the sweep loaded it is skipped and reconsidered by the next run.
type ExpireStaleRequestsCommandHandler struct {
	uowFactory RequestUoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewExpireStaleRequestsCommandHandler(
	uowFactory RequestUoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) ExpireStaleRequestsCommandHandler {
	return ExpireStaleRequestsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns the number of expired requests. Failures other than version conflicts
// are joined into the returned error; the count still covers the requests that committed.
func (h ExpireStaleRequestsCommandHandler) Handle(ctx context.Context, cmd ExpireStaleRequestsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()
	stale, err := h.uowFactory.Create().TransportRequestRepository().GetExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	var (
		expired  int
		failures []error
	)
	for _, r := range stale {
		if err = ctx.Err(); err != nil {
			return expired, errors.Join(append(failures, err)...)
		}

		cancelled, expireErr := h.expire(ctx, r, now)
		switch {
		case errors.Is(expireErr, errs.ErrVersionIsInvalid):
			continue
		case expireErr != nil:
			failures = append(failures, expireErr)
			continue
		}

		expired++
		publish(ctx, h.publisher, cancelled)
	}

	return expired, errors.Join(failures...)
}

func (h ExpireStaleRequestsCommandHandler) expire(
	ctx context.Context,
	r *request.TransportRequest,
	now time.Time,
) (request.RequestCancelled, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return request.RequestCancelled{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cancelled, err := r.Cancel(now)
	if err != nil {
		return request.RequestCancelled{}, err
	}

	if err = uow.TransportRequestRepository().Update(ctx, r); err != nil {
		return request.RequestCancelled{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return request.RequestCancelled{}, err
	}

	return cancelled, nil
}
