package repository

import (
	"context"

	"gorm.io/gorm"

	model "quadro-expedicao.com/quadro-expedicao/internal/models"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry *model.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepository) ListByItem(ctx context.Context, logType, itemID string) ([]model.AuditEntry, error) {
	var entries []model.AuditEntry
	err := r.db.WithContext(ctx).
		Where("log_type = ? AND item_id = ?", logType, itemID).
		Order("timestamp asc").
		Find(&entries).Error
	return entries, err
}
