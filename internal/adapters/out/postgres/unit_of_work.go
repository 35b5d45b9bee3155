// Package postgres implements the unit of work over GORM and PostgreSQL.
//
// A unit of work owns at most one open transaction. Repositories obtained from it after
// Begin run inside that transaction; repositories obtained before Begin, or after Commit
// or Rollback, run directly on the connection pool.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.TransportRequestRepository().Update(ctx, req); err != nil {
//	    return err
//	}
//	if err := uow.TransporterRepository().Update(ctx, profile); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and is otherwise
// harmless, which is what makes the deferred rollback above safe.
//
// Instances are not safe for concurrent use; each goroutine creates its own.
package postgres

import (
	"context"

	"freight/internal/adapters/out/postgres/requestrepo"
	"freight/internal/adapters/out/postgres/transporterrepo"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens a transaction. Calling Begin again while one is open does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) TransportRequestRepository() ports.TransportRequestRepository {
	return requestrepo.NewGormTransportRequestRepository(uow.conn())
}

func (uow *GormUnitOfWork) TransporterRepository() ports.TransporterRepository {
	return transporterrepo.NewGormTransporterRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
