package transporterrepo

import (
	"context"
	"errors"

	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transporter"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	licenseNumberIndex      = "idx_drivers_license_number"
	registrationNumberIndex = "idx_vehicles_registration_number"
)

type GormTransporterRepository struct {
	db     *gorm.DB
	tracer trace.Tracer
}

func NewGormTransporterRepository(db *gorm.DB) *GormTransporterRepository {
	return &GormTransporterRepository{
		db:     db,
		tracer: otel.Tracer("freight/transporterrepo"),
	}
}

func (r *GormTransporterRepository) Add(ctx context.Context, aggregate *transporter.TransporterProfile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return uniqueViolation(err, "transporter profile id")
	}

	return nil
}

// Update saves the profile and its fleet under the optimistic-concurrency version. Drivers
// and vehicles are upserted; they are never removed, only deactivated.
func (r *GormTransporterRepository) Update(ctx context.Context, aggregate *transporter.TransporterProfile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	ctx, span := r.tracer.Start(ctx, "transporterrepo.update",
		trace.WithAttributes(
			attribute.String("transporter.id", aggregate.ID().String()),
			attribute.Int("expected.version", aggregate.Version()),
		),
	)
	defer span.End()

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&TransporterProfileDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"display_name":         dto.DisplayName,
			"contact_number":       dto.ContactNumber,
			"type":                 dto.Type,
			"trade_license_number": dto.TradeLicenseNumber,
			"base_latitude":        dto.BaseLocation.Latitude,
			"base_longitude":       dto.BaseLocation.Longitude,
			"base_division":        dto.BaseLocation.Division,
			"base_district":        dto.BaseLocation.District,
			"base_thana":           dto.BaseLocation.Thana,
			"base_postal_code":     dto.BaseLocation.PostalCode,
			"base_address":         dto.BaseLocation.Address,
			"service_radius_km":    dto.ServiceRadiusKm,
			"verified":             dto.Verified,
			"rating":               dto.Rating,
			"completed_jobs":       dto.CompletedJobs,
			"version":              dto.Version + 1,
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "update profile row")
		return result.Error
	}

	if result.RowsAffected == 0 {
		err := r.missingOrStale(db, aggregate.ID())
		span.SetAttributes(attribute.Bool("conflict.detected", errors.Is(err, errs.ErrVersionIsInvalid)))
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := upsertAll(db, dto.Drivers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save drivers")
		return uniqueViolation(err, "license number")
	}

	if err := upsertAll(db, dto.Vehicles); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save vehicles")
		return uniqueViolation(err, "registration number")
	}

	span.SetAttributes(
		attribute.Int("drivers.saved", len(dto.Drivers)),
		attribute.Int("vehicles.saved", len(dto.Vehicles)),
	)
	return nil
}

func (r *GormTransporterRepository) Get(ctx context.Context, id kernel.UUID) (*transporter.TransporterProfile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransporterProfileDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transporter profile", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany loads the profiles with the given ids. Unknown ids are skipped.
func (r *GormTransporterRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*transporter.TransporterProfile, error) {
	if len(ids) == 0 {
		return []*transporter.TransporterProfile{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []TransporterProfileDTO
	if err := r.preloaded(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	profiles := make([]*transporter.TransporterProfile, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

func (r *GormTransporterRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Drivers", func(db *gorm.DB) *gorm.DB {
			return db.Order("license_number")
		}).
		Preload("Vehicles", func(db *gorm.DB) *gorm.DB {
			return db.Order("registration_number")
		})
}

func (r *GormTransporterRepository) missingOrStale(db *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := db.Model(&TransporterProfileDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("transporter profile", id.String())
	}
	return errs.NewVersionIsInvalidError("transporter profile")
}

func upsertAll[T any](db *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rows).Error
}

// uniqueViolation turns a duplicate license or registration number into a validation error.
func uniqueViolation(err error, paramName string) error {
	if !pgerr.IsUniqueViolation(err) {
		return err
	}

	switch pgerr.Constraint(err) {
	case licenseNumberIndex:
		paramName = "license number"
	case registrationNumberIndex:
		paramName = "registration number"
	}
	return errs.NewValueIsInvalidErrorWithCause(paramName, err)
}
