package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"
)

// TransporterRepository persists TransporterProfile aggregates with their drivers and
// vehicles.
type TransporterRepository interface {
	Add(ctx context.Context, p *transporter.TransporterProfile) error

	// Update saves the profile and its fleet under the same optimistic version check as
	// TransportRequestRepository.Update. Dispatching a vehicle relies on it.
	Update(ctx context.Context, p *transporter.TransporterProfile) error

	// Get returns errs.ObjectNotFoundError when no profile has the id.
	Get(ctx context.Context, id kernel.UUID) (*transporter.TransporterProfile, error)

	// GetMany returns the profiles that exist among ids, in no particular order.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*transporter.TransporterProfile, error)
}
