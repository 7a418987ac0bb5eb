package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "quadro-expedicao.com/quadro-expedicao/internal/errors"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
)

type TrashRepository struct {
	db *gorm.DB
}

func NewTrashRepository(db *gorm.DB) *TrashRepository {
	return &TrashRepository{db: db}
}

func (r *TrashRepository) CreateTx(tx *gorm.DB, item *model.TrashItem) error {
	return tx.Create(item).Error
}

func (r *TrashRepository) List(ctx context.Context) ([]model.TrashItem, error) {
	var items []model.TrashItem
	err := r.db.WithContext(ctx).Order("deleted_at desc").Find(&items).Error
	return items, err
}

func (r *TrashRepository) FindByID(ctx context.Context, id string) (*model.TrashItem, error) {
	var item model.TrashItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTrashItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *TrashRepository) DeleteTx(tx *gorm.DB, id string) error {
	return tx.Delete(&model.TrashItem{}, "id = ?", id).Error
}
