// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Create adds a new email job to the queue.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to create email job",
			fmt.Errorf("%w: %w", domainerror.ErrEmailQueueFailed, err),
		)
	}
	return nil
}

// ClaimPendingJobs flips due pending jobs to processing inside one transaction.
// The status guard on the update keeps two workers from claiming the same row.
func (r *emailQueueRepository) ClaimPendingJobs(ctx context.Context, limit int, now time.Time) ([]*entity.EmailJob, error) {
	var claimed []model.EmailQueueModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&model.EmailQueueModel{}).
			Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now).
			Order("scheduled_at ASC").
			Limit(limit).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Model(&model.EmailQueueModel{}).
			Where("id IN ? AND status = ?", ids, entity.EmailStatusPending).
			Updates(map[string]interface{}{
				"status":     entity.EmailStatusProcessing,
				"claimed_at": now,
			}).Error; err != nil {
			return err
		}

		return tx.Where("id IN ? AND status = ?", ids, entity.EmailStatusProcessing).
			Order("scheduled_at ASC").
			Find(&claimed).Error
	})
	if err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, len(claimed))
	for i := range claimed {
		jobs[i] = claimed[i].ToEntity()
	}
	return jobs, nil
}

// Update saves changes to an email job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

// ReleaseStaleClaims returns jobs stuck in processing since before cutoff to pending.
func (r *emailQueueRepository) ReleaseStaleClaims(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("status = ? AND (claimed_at IS NULL OR claimed_at < ?)", entity.EmailStatusProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":     entity.EmailStatusPending,
			"claimed_at": nil,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GetByRecipient retrieves jobs for a specific email address, newest first.
func (r *emailQueueRepository) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel
	result := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
	}
	return jobs, nil
}

// DeleteSentBefore removes sent jobs processed before cutoff.
func (r *emailQueueRepository) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", entity.EmailStatusSent, cutoff).
		Delete(&model.EmailQueueModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
