package queries

import (
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// locationColumns receives the seven columns of an embedded location.
type locationColumns struct {
	latitude   float64
	longitude  float64
	division   string
	district   string
	thana      string
	postalCode string
	address    string
}

func (c locationColumns) toLocation() (kernel.Location, error) {
	return kernel.NewLocation(c.latitude, c.longitude, c.division, c.district, c.thana, c.postalCode, c.address)
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
