// Package pgtest starts a throwaway PostgreSQL container for integration tests and
// returns a migrated GORM connection that talks through lib/pq, like the service does.
package pgtest

import (
	"context"
	"database/sql"
	"time"

	"freight/internal/adapters/out/postgres"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every table created by postgres.Migrate, for TRUNCATE between tests.
const Tables = "job_assignments, transport_bids, transport_requests, vehicles, drivers, transporter_profiles"

type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + Tables + " CASCADE").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	return d.Container.Terminate(ctx)
}
