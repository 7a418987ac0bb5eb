package services

import (
	"context"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	dto "quadro-expedicao.com/quadro-expedicao/internal/data_models"
	"quadro-expedicao.com/quadro-expedicao/internal/queue"
	repository "quadro-expedicao.com/quadro-expedicao/internal/repositories"
)

// QueueService exposes the picking queue to the admin UI: the current
// service order and the active/inactive toggle per worker.
type QueueService struct {
	queue   queue.WorkerQueue
	workers *repository.WorkerRepository
}

func NewQueueService(workerQueue queue.WorkerQueue, workers *repository.WorkerRepository) *QueueService {
	return &QueueService{
		queue:   workerQueue,
		workers: workers,
	}
}

func (s *QueueService) ListQueue(ctx context.Context) ([]string, error) {
	return s.queue.ListActive(ctx)
}

func (s *QueueService) SetActiveSet(ctx context.Context, names []string) error {
	return s.queue.SetActiveSet(ctx, names)
}

// WorkerStatuses reports every picker with its current active flag, for the
// queue management modal.
func (s *QueueService) WorkerStatuses(ctx context.Context) ([]dto.WorkerStatus, error) {
	workers, err := s.workers.ListByRole(ctx, constants.RolePicker)
	if err != nil {
		return nil, err
	}

	statuses := make([]dto.WorkerStatus, 0, len(workers))
	for _, w := range workers {
		statuses = append(statuses, dto.WorkerStatus{
			Name:   w.Name,
			Active: w.Active,
		})
	}
	return statuses, nil
}
