package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	apperrors "quadro-expedicao.com/quadro-expedicao/internal/errors"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
)

type PickingRepository struct {
	db *gorm.DB
}

func NewPickingRepository(db *gorm.DB) *PickingRepository {
	return &PickingRepository{db: db}
}

// Create inserts the task, checking movement-number uniqueness inside the
// same transaction so two concurrent creations cannot both commit.
func (r *PickingRepository) Create(ctx context.Context, task *model.PickingTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PickingTask{}).
			Where("movement_number = ?", task.MovementNumber).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Conflict(fmt.Sprintf("O número de movimentação %s já existe.", task.MovementNumber))
		}
		return tx.Create(task).Error
	})
}

func (r *PickingRepository) FindByID(ctx context.Context, id string) (*model.PickingTask, error) {
	var task model.PickingTask
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPickingNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *PickingRepository) List(ctx context.Context) ([]model.PickingTask, error) {
	var tasks []model.PickingTask
	err := r.db.WithContext(ctx).
		Order("CAST(movement_number AS INTEGER) desc").
		Find(&tasks).Error
	return tasks, err
}

// MovementNumberTaken reports whether another live task already uses num.
func (r *PickingRepository) MovementNumberTaken(ctx context.Context, num, excludeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PickingTask{}).
		Where("movement_number = ? AND id <> ?", num, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Update writes the task back guarded by its version column. A stale version
// loses with ErrOptimisticLock and the caller decides whether to retry.
// The JSON-serialized columns are marshaled here; map-based updates bypass
// the field serializers.
func (r *PickingRepository) Update(ctx context.Context, task *model.PickingTask) error {
	workers, err := json.Marshal(task.AssignedWorkers)
	if err != nil {
		return err
	}
	notes, err := json.Marshal(task.Notes)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.PickingTask{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"movement_number":         task.MovementNumber,
			"client_name":             task.ClientName,
			"assigned_workers":        string(workers),
			"seller_name":             task.SellerName,
			"piece_count":             task.PieceCount,
			"status":                  task.Status,
			"verifier_name":           task.VerifierName,
			"notes":                   string(notes),
			"verification_started_at": task.VerificationStartedAt,
			"finished_at":             task.FinishedAt,
			"version":                 gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	return nil
}

func (r *PickingRepository) DeleteTx(tx *gorm.DB, id string) error {
	return tx.Delete(&model.PickingTask{}, "id = ?", id).Error
}
