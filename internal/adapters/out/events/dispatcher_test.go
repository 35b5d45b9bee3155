package events_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"freight/internal/adapters/out/events"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_Publish(t *testing.T) {
	requestID := kernel.NewUUID()
	submitted := request.BidSubmitted{RequestID: requestID, BidID: kernel.NewUUID(), At: now}
	cancelled := request.RequestCancelled{RequestID: requestID, At: now}

	t.Run("should deliver to typed subscribers before catch-all ones", func(t *testing.T) {
		d := events.NewDispatcher(discardLogger())
		var got []string

		d.SubscribeAll(func(_ context.Context, e kernel.DomainEvent) error {
			got = append(got, "all:"+e.EventType())
			return nil
		})
		d.Subscribe(request.EventBidSubmitted, func(_ context.Context, e kernel.DomainEvent) error {
			got = append(got, "typed:"+e.EventType())
			return nil
		})

		require.NoError(t, d.Publish(context.Background(), submitted, cancelled))

		assert.Equal(t, []string{
			"typed:" + request.EventBidSubmitted,
			"all:" + request.EventBidSubmitted,
			"all:" + request.EventRequestCancelled,
		}, got)
	})

	t.Run("should keep delivering after a handler fails", func(t *testing.T) {
		d := events.NewDispatcher(discardLogger())
		errBoom := errors.New("boom")
		delivered := 0

		d.Subscribe(request.EventBidSubmitted, func(context.Context, kernel.DomainEvent) error {
			return errBoom
		})
		d.SubscribeAll(func(context.Context, kernel.DomainEvent) error {
			delivered++
			return nil
		})

		err := d.Publish(context.Background(), submitted, cancelled)

		require.ErrorIs(t, err, errBoom)
		assert.ErrorContains(t, err, request.EventBidSubmitted)
		assert.Equal(t, 2, delivered)
	})

	t.Run("should stop and log on a cancelled context", func(t *testing.T) {
		var buf bytes.Buffer
		d := events.NewDispatcher(slog.New(slog.NewJSONHandler(&buf, nil)))
		d.SubscribeAll(func(context.Context, kernel.DomainEvent) error {
			t.Fatal("handler must not run")
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, d.Publish(ctx, submitted), context.Canceled)
		assert.Contains(t, buf.String(), "Event delivery interrupted")
		assert.Contains(t, buf.String(), `"event_type":"`+request.EventBidSubmitted+`"`)
	})

	t.Run("should accept no events and no subscribers", func(t *testing.T) {
		d := events.NewDispatcher(discardLogger())

		require.NoError(t, d.Publish(context.Background()))
		require.NoError(t, d.Publish(context.Background(), submitted, nil))
	})
}

func TestNewLogSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	requestID := kernel.NewUUID()

	h := events.NewLogSubscriber(logger)
	require.NoError(t, h(context.Background(), request.RequestCompleted{RequestID: requestID, At: now}))

	out := buf.String()
	assert.Contains(t, out, `"event_type":"`+request.EventRequestCompleted+`"`)
	assert.Contains(t, out, `"aggregate_id":"`+requestID.String()+`"`)
	assert.Contains(t, out, `"component":"domain_events"`)
}
