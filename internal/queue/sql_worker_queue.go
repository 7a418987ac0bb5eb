package queue

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
)

// SQLWorkerQueue stores the queue as (active, queue_priority) columns on the
// worker rows. One mutex is the single serialization point for all mutations;
// there is no other writer of those columns.
type SQLWorkerQueue struct {
	mu sync.Mutex
	db *gorm.DB
}

func NewSQLWorkerQueue(db *gorm.DB) *SQLWorkerQueue {
	return &SQLWorkerQueue{db: db}
}

func (q *SQLWorkerQueue) ListActive(ctx context.Context) ([]string, error) {
	workers, err := q.loadActive(ctx, q.db)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(workers))
	for _, w := range workers {
		names = append(names, w.Name)
	}
	return names, nil
}

func (q *SQLWorkerQueue) SetActiveSet(ctx context.Context, names []string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := q.loadActive(ctx, tx)
		if err != nil {
			return err
		}

		maxPriority := 0
		activeNow := make(map[string]bool, len(active))
		for _, w := range active {
			activeNow[w.Name] = true
			if w.QueuePriority > maxPriority {
				maxPriority = w.QueuePriority
			}
		}

		for _, w := range active {
			if wanted[w.Name] {
				continue
			}
			if err := tx.Model(&model.Worker{}).
				Where("name = ?", w.Name).
				Update("active", false).Error; err != nil {
				return err
			}
		}

		// Newly activated workers join at the back, in the order given.
		for _, name := range names {
			if activeNow[name] {
				continue
			}
			maxPriority++
			res := tx.Model(&model.Worker{}).
				Where("name = ? AND role = ?", name, constants.RolePicker).
				Updates(map[string]interface{}{
					"active":         true,
					"queue_priority": maxPriority,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				maxPriority--
			}
		}

		return nil
	})
}

func (q *SQLWorkerQueue) RotateToBack(ctx context.Context, names []string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			active, err := q.loadActive(ctx, tx)
			if err != nil {
				return err
			}

			found := false
			maxPriority := 0
			for _, w := range active {
				if w.Name == name {
					found = true
				}
				if w.QueuePriority > maxPriority {
					maxPriority = w.QueuePriority
				}
			}
			if !found {
				continue
			}

			if err := tx.Model(&model.Worker{}).
				Where("name = ?", name).
				Update("queue_priority", maxPriority+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (q *SQLWorkerQueue) loadActive(ctx context.Context, tx *gorm.DB) ([]model.Worker, error) {
	var workers []model.Worker
	err := tx.WithContext(ctx).
		Where("role = ? AND active = ?", constants.RolePicker, true).
		Find(&workers).Error
	if err != nil {
		return nil, err
	}

	sort.Slice(workers, func(i, j int) bool {
		if workers[i].QueuePriority != workers[j].QueuePriority {
			return workers[i].QueuePriority < workers[j].QueuePriority
		}
		return workers[i].Name < workers[j].Name
	})

	return workers, nil
}
