package requestrepo

import (
	"context"
	"errors"
	"time"

	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
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
	// ActiveVehicleIndex and ActiveDriverIndex are the partial unique indexes over
	// active job assignments.
	ActiveVehicleIndex = "idx_job_assignments_active_vehicle"
	ActiveDriverIndex  = "idx_job_assignments_active_driver"
)

type GormTransportRequestRepository struct {
	db     *gorm.DB
	tracer trace.Tracer
}

func NewGormTransportRequestRepository(db *gorm.DB) *GormTransportRequestRepository {
	return &GormTransportRequestRepository{
		db:     db,
		tracer: otel.Tracer("freight/requestrepo"),
	}
}

func (r *GormTransportRequestRepository) Add(ctx context.Context, aggregate *request.TransportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("transport request id", err)
		}
		return err
	}

	return nil
}

// Update saves the request, its bids, and its assignment. The request row is only written
// when its stored version still equals aggregate.Version(); the stored version is then
// incremented, so an instance can be saved once per load.
//
// A concurrent writer yields errs.VersionIsInvalidError. An assignment whose vehicle or
// driver is already held by another active assignment yields a retryable
// errs.ResourceUnavailableError.
func (r *GormTransportRequestRepository) Update(ctx context.Context, aggregate *request.TransportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	ctx, span := r.tracer.Start(ctx, "requestrepo.update",
		trace.WithAttributes(
			attribute.String("request.id", aggregate.ID().String()),
			attribute.String("request.status", aggregate.Status().String()),
			attribute.Int("expected.version", aggregate.Version()),
		),
	)
	defer span.End()

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&TransportRequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":        dto.Status,
			"winner_bid_id": dto.WinnerBidID,
			"version":       dto.Version + 1,
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "update request row")
		return result.Error
	}

	if result.RowsAffected == 0 {
		err := r.missingOrStale(db, aggregate.ID())
		span.SetAttributes(attribute.Bool("conflict.detected", errors.Is(err, errs.ErrVersionIsInvalid)))
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := saveBids(db, dto.Bids); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save bids")
		return err
	}

	if err := saveAssignment(db, dto.ID, dto.Assignment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save assignment")
		return err
	}

	span.SetAttributes(attribute.Int("bids.saved", len(dto.Bids)))
	return nil
}

func (r *GormTransportRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.TransportRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransportRequestDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transport request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetExpired returns Open and Bidding requests whose scheduled time is not after now,
// oldest first.
func (r *GormTransportRequestRepository) GetExpired(ctx context.Context, now time.Time) ([]*request.TransportRequest, error) {
	var dtos []TransportRequestDTO
	if err := r.preloaded(ctx).
		Where("status IN ? AND scheduled_time <= ?", []int{int(request.Open), int(request.Bidding)}, now).
		Order("scheduled_time").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*request.TransportRequest, 0, len(dtos))
	for _, dto := range dtos {
		req, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func (r *GormTransportRequestRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Bids", func(db *gorm.DB) *gorm.DB {
			return db.Order("bid_time, id")
		}).
		Preload("Assignment")
}

func (r *GormTransportRequestRepository) missingOrStale(db *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := db.Model(&TransportRequestDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("transport request", id.String())
	}
	return errs.NewVersionIsInvalidError("transport request")
}

func saveBids(db *gorm.DB, bids []TransportBidDTO) error {
	if len(bids) == 0 {
		return nil
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "currency", "note", "status"}),
	}).Create(&bids).Error
}

// saveAssignment keeps job_assignments in step with the aggregate: the row is removed when
// the request no longer holds an assignment and upserted otherwise.
func saveAssignment(db *gorm.DB, requestID uuid.UUID, assignment *JobAssignmentDTO) error {
	if assignment == nil {
		return db.Where("request_id = ?", requestID).Delete(&JobAssignmentDTO{}).Error
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "request_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vehicle_id", "driver_id", "assigned_at", "active"}),
	}).Create(assignment).Error
	if err == nil {
		return nil
	}

	if pgerr.IsUniqueViolation(err) {
		switch pgerr.Constraint(err) {
		case ActiveDriverIndex:
			return errs.NewResourceUnavailableErrorWithCause(
				"driver", assignment.DriverID.String(), "driver is already on an active job", err)
		default:
			return errs.NewResourceUnavailableErrorWithCause(
				"vehicle", assignment.VehicleID.String(), "vehicle is already on an active job", err)
		}
	}

	return err
}
