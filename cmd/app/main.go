package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight/cmd"
	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(config)

	gormDB, err := openDatabase(config)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(config, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = startWebServer(ctx, &app, config.HTTPPort, logger); err != nil {
		logger.Error("HTTP server stopped with error", "error", err)
	}
}

func newLogger(config cmd.Config) *slog.Logger {
	// LoadConfig has already validated the level
	level, _ := config.SlogLevel()
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e := httpin.NewEcho(app.CreateHTTPServer())

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", port)
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down HTTP server")
	return e.Shutdown(shutdownCtx)
}
