package repository

import (
	"context"

	"gorm.io/gorm"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
)

// WorkerRepository reads the worker roster. Queue state (active flag and
// priority) is mutated only through the worker queue, never here.
type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *WorkerRepository) ListByRole(ctx context.Context, role constants.Role) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name asc").
		Find(&workers).Error
	return workers, err
}

func (r *WorkerRepository) ListActiveByRole(ctx context.Context, role constants.Role) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).
		Where("role = ? AND active = ?", role, true).
		Order("name asc").
		Find(&workers).Error
	return workers, err
}
