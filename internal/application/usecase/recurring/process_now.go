package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// GlobalLockKey guards the scheduled run across processes.
const GlobalLockKey = "recurring:all"

// ProcessNowInput represents an on-demand run for one user.
type ProcessNowInput struct {
	UserID uuid.UUID
}

// ProcessNowOutput represents the result of an on-demand run.
type ProcessNowOutput struct {
	Summary *Summary
}

// ProcessNowUseCase runs the recurring job for the caller's templates only.
type ProcessNowUseCase struct {
	runner  *Runner
	locker  adapter.JobLocker
	lockTTL time.Duration
}

// NewProcessNowUseCase creates a new ProcessNowUseCase instance.
func NewProcessNowUseCase(runner *Runner, locker adapter.JobLocker, lockTTL time.Duration) *ProcessNowUseCase {
	return &ProcessNowUseCase{
		runner:  runner,
		locker:  locker,
		lockTTL: lockTTL,
	}
}

// Execute runs the job for the user, failing if a run for them is already in progress.
func (uc *ProcessNowUseCase) Execute(ctx context.Context, input ProcessNowInput) (*ProcessNowOutput, error) {
	key := "recurring:user:" + input.UserID.String()

	token, acquired, err := uc.locker.Acquire(ctx, key, uc.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire recurring lock: %w", err)
	}
	if !acquired {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeRunInProgress,
			"recurring processing is already running",
			domainerror.ErrRunInProgress,
		)
	}
	defer func() {
		if err := uc.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			slog.Warn("Failed to release recurring lock", "key", key, "error", err)
		}
	}()

	userID := input.UserID
	summary, err := uc.runner.Run(ctx, &userID)
	if err != nil {
		return nil, err
	}

	return &ProcessNowOutput{Summary: summary}, nil
}
