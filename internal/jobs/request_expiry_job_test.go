package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockExpireStaleRequestsHandler struct{ mock.Mock }

func (m *MockExpireStaleRequestsHandler) Handle(ctx context.Context, cmd commands.ExpireStaleRequestsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestRequestExpiryJob_RunOnce(t *testing.T) {
	validCommand := mock.MatchedBy(func(cmd commands.ExpireStaleRequestsCommand) bool {
		return cmd.Validate() == nil
	})

	t.Run("should report the expired count", func(t *testing.T) {
		handler := &MockExpireStaleRequestsHandler{}
		handler.On("Handle", mock.Anything, validCommand).Return(3, nil).Once()
		logger, buf := newLogger()

		expired := jobs.NewRequestExpiryJob(handler, "", logger).RunOnce(context.Background())

		assert.Equal(t, 3, expired)
		assert.Contains(t, buf.String(), `"count":3`)
		assert.Contains(t, buf.String(), `"component":"request_expiry_job"`)
		handler.AssertExpectations(t)
	})

	t.Run("should stay quiet when nothing expired", func(t *testing.T) {
		handler := &MockExpireStaleRequestsHandler{}
		handler.On("Handle", mock.Anything, validCommand).Return(0, nil).Once()
		logger, buf := newLogger()

		assert.Zero(t, jobs.NewRequestExpiryJob(handler, "", logger).RunOnce(context.Background()))
		assert.Empty(t, buf.String())
	})

	t.Run("should report a partial sweep", func(t *testing.T) {
		handler := &MockExpireStaleRequestsHandler{}
		handler.On("Handle", mock.Anything, validCommand).Return(2, errors.New("connection reset")).Once()
		logger, buf := newLogger()

		assert.Equal(t, 2, jobs.NewRequestExpiryJob(handler, "", logger).RunOnce(context.Background()))
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Contains(t, buf.String(), `"expired":2`)
	})

	t.Run("should log other failures as errors", func(t *testing.T) {
		handler := &MockExpireStaleRequestsHandler{}
		handler.On("Handle", mock.Anything, validCommand).Return(0, errors.New("database is down")).Once()
		logger, buf := newLogger()

		assert.Zero(t, jobs.NewRequestExpiryJob(handler, "", logger).RunOnce(context.Background()))
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Contains(t, buf.String(), "database is down")
	})
}

func TestRequestExpiryJob_Start(t *testing.T) {
	t.Run("should reject an invalid schedule", func(t *testing.T) {
		logger, _ := newLogger()

		err := jobs.NewRequestExpiryJob(&MockExpireStaleRequestsHandler{}, "every minute", logger).Start()

		require.Error(t, err)
	})

	t.Run("should start and stop", func(t *testing.T) {
		logger, buf := newLogger()
		job := jobs.NewRequestExpiryJob(&MockExpireStaleRequestsHandler{}, "@every 1h", logger)

		require.NoError(t, job.Start())
		job.Stop()

		assert.Contains(t, buf.String(), "Request expiry job started")
		assert.Contains(t, buf.String(), "Request expiry job stopped")
	})
}

func TestJobManager(t *testing.T) {
	logger, _ := newLogger()

	t.Run("should wrap a start failure", func(t *testing.T) {
		jm := jobs.NewJobManager(&MockExpireStaleRequestsHandler{}, "not a schedule", logger)

		require.ErrorContains(t, jm.StartAll(), "request expiry job")
	})

	t.Run("should start and stop every job", func(t *testing.T) {
		jm := jobs.NewJobManager(&MockExpireStaleRequestsHandler{}, "@every 1h", logger)

		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})
}
