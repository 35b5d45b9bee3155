package postgres

import (
	"fmt"

	"freight/internal/adapters/out/postgres/requestrepo"
	"freight/internal/adapters/out/postgres/transporterrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Besides the tables derived from the DTOs it
// creates the partial unique indexes that keep a vehicle or driver on at most one active
// job assignment.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&transporterrepo.TransporterProfileDTO{},
		&transporterrepo.DriverDTO{},
		&transporterrepo.VehicleDTO{},
		&requestrepo.TransportRequestDTO{},
		&requestrepo.TransportBidDTO{},
		&requestrepo.JobAssignmentDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	indexes := []struct {
		name   string
		column string
	}{
		{name: requestrepo.ActiveVehicleIndex, column: "vehicle_id"},
		{name: requestrepo.ActiveDriverIndex, column: "driver_id"},
	}

	for _, idx := range indexes {
		stmt := fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS %s ON job_assignments (%s) WHERE active",
			idx.name, idx.column,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}

	return nil
}
