// Package ports defines the contracts between the marketplace core and its
// infrastructure: aggregate repositories, the unit of work, and event publishing.
package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
)

// TransportRequestRepository persists TransportRequest aggregates together with their
// bids and job assignment.
type TransportRequestRepository interface {
	// Add persists a new request. The request must not exist yet.
	Add(ctx context.Context, r *request.TransportRequest) error

	// Update saves the whole aggregate if the stored version still equals r.Version().
	// A stale version fails with errs.VersionIsInvalidError. Saving an assignment whose
	// vehicle or driver is already bound to another active job fails with
	// errs.ResourceUnavailableError.
	Update(ctx context.Context, r *request.TransportRequest) error

	// Get loads a request with its bids and assignment.
	// Returns errs.ObjectNotFoundError when no request has the id.
	Get(ctx context.Context, id kernel.UUID) (*request.TransportRequest, error)

	// GetExpired returns the Open and Bidding requests whose scheduled time is not after now.
	GetExpired(ctx context.Context, now time.Time) ([]*request.TransportRequest, error)
}
