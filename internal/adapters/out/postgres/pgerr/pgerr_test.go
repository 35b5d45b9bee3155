package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"freight/internal/adapters/out/postgres/pgerr"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "pq unique violation", err: &pq.Error{Code: "23505"}, want: true},
		{name: "wrapped pq unique violation", err: fmt.Errorf("save: %w", &pq.Error{Code: "23505"}), want: true},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: true},
		{name: "pq foreign key violation", err: &pq.Error{Code: "23503"}},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pgerr.IsUniqueViolation(tt.err))
		})
	}
}

func TestConstraint(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "idx_job_assignments_active_vehicle"})

	assert.Equal(t, "idx_job_assignments_active_vehicle", pgerr.Constraint(err))
	assert.Empty(t, pgerr.Constraint(errors.New("boom")))
}
