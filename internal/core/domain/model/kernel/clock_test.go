package kernel_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	dhaka := time.FixedZone("BST", 6*60*60)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, dhaka)

	clock := kernel.FixedClock(at)

	assert.True(t, clock.Now().Equal(at))
	assert.Equal(t, time.UTC, clock.Now().Location())
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	now := kernel.SystemClock{}.Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.False(t, now.Before(before.Add(-time.Second)))
}
