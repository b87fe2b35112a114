// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// RecurringRunRepository records which (template, due date) pairs were materialized.
type RecurringRunRepository interface {
	// Claim inserts the run record. It returns false without error when a run for the
	// same template and due date already exists.
	Claim(ctx context.Context, run *entity.RecurringRun) (bool, error)
}
