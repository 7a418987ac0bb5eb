package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	apperrors "quadro-expedicao.com/quadro-expedicao/internal/errors"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create inserts a receipt. Invoice numbers carry no uniqueness constraint.
func (r *VerificationRepository) Create(ctx context.Context, task *model.VerificationTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *VerificationRepository) FindByID(ctx context.Context, id string) (*model.VerificationTask, error) {
	var task model.VerificationTask
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrVerificationNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *VerificationRepository) ListByStatuses(ctx context.Context, statuses []constants.VerificationStatus) ([]model.VerificationTask, error) {
	var tasks []model.VerificationTask
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("received_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (r *VerificationRepository) ListRecent(ctx context.Context, limit int) ([]model.VerificationTask, error) {
	var tasks []model.VerificationTask
	err := r.db.WithContext(ctx).
		Order("received_at desc").Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// Update writes the task back guarded by its version column. The
// JSON-serialized columns are marshaled here; map-based updates bypass the
// field serializers.
func (r *VerificationRepository) Update(ctx context.Context, task *model.VerificationTask) error {
	verifiers, err := json.Marshal(task.Verifiers)
	if err != nil {
		return err
	}
	notes, err := json.Marshal(task.Notes)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.VerificationTask{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"invoice_number":            task.InvoiceNumber,
			"supplier_name":             task.SupplierName,
			"carrier_name":              task.CarrierName,
			"volume_count":              task.VolumeCount,
			"seller_name":               task.SellerName,
			"received_by":               task.ReceivedBy,
			"status":                    task.Status,
			"verifiers":                 string(verifiers),
			"resolved_by_stock_manager": task.ResolvedByStockManager,
			"resolved_by_accounting":    task.ResolvedByAccounting,
			"notes":                     string(notes),
			"verification_started_at":   task.VerificationStartedAt,
			"finalized_at":              task.FinalizedAt,
			"version":                   gorm.Expr("version + 1"),
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

func (r *VerificationRepository) DeleteTx(tx *gorm.DB, id string) error {
	return tx.Delete(&model.VerificationTask{}, "id = ?", id).Error
}
