package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"quadro-expedicao.com/quadro-expedicao/internal/audit"
	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	apperrors "quadro-expedicao.com/quadro-expedicao/internal/errors"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
	repository "quadro-expedicao.com/quadro-expedicao/internal/repositories"
)

// TrashService lists soft-deleted tasks and restores them from their
// snapshots.
type TrashService struct {
	db            *gorm.DB
	trash         *repository.TrashRepository
	pickings      *repository.PickingRepository
	verifications *repository.VerificationRepository
	audit         *audit.Recorder
}

func NewTrashService(
	db *gorm.DB,
	trash *repository.TrashRepository,
	pickings *repository.PickingRepository,
	verifications *repository.VerificationRepository,
	recorder *audit.Recorder,
) *TrashService {
	return &TrashService{
		db:            db,
		trash:         trash,
		pickings:      pickings,
		verifications: verifications,
		audit:         recorder,
	}
}

func (s *TrashService) List(ctx context.Context) ([]model.TrashItem, error) {
	return s.trash.List(ctx)
}

// Restore recreates the live row from the trash snapshot and removes the
// trash entry, refusing when the original ID is live again or, for picking
// tasks, when the movement number has been reused meanwhile.
func (s *TrashService) Restore(ctx context.Context, trashID, editorName string) error {
	item, err := s.trash.FindByID(ctx, trashID)
	if err != nil {
		return err
	}

	switch item.ItemType {
	case constants.ItemTypePicking:
		return s.restorePicking(ctx, item, editorName)
	case constants.ItemTypeVerification:
		return s.restoreVerification(ctx, item, editorName)
	default:
		return apperrors.Validation(fmt.Sprintf("Tipo de item desconhecido: %s", item.ItemType))
	}
}

func (s *TrashService) restorePicking(ctx context.Context, item *model.TrashItem, editorName string) error {
	var task model.PickingTask
	if err := json.Unmarshal([]byte(item.Snapshot), &task); err != nil {
		return apperrors.Validation("O item da lixeira está corrompido e não pode ser restaurado.")
	}

	if _, err := s.pickings.FindByID(ctx, task.ID); err == nil {
		return apperrors.Conflict(fmt.Sprintf("Um item do tipo %s com o ID %s já existe. Restauração cancelada.", item.ItemType, task.ID))
	} else if err != apperrors.ErrPickingNotFound {
		return err
	}

	taken, err := s.pickings.MovementNumberTaken(ctx, task.MovementNumber, task.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Conflict(fmt.Sprintf("O número de movimentação %s já pertence a outra separação.", task.MovementNumber))
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		return s.trash.DeleteTx(tx, item.ID)
	}); err != nil {
		return err
	}

	s.audit.Record(ctx, constants.LogTypePicking, task.ID, editorName, "RESTAURACAO", nil)
	return nil
}

func (s *TrashService) restoreVerification(ctx context.Context, item *model.TrashItem, editorName string) error {
	var task model.VerificationTask
	if err := json.Unmarshal([]byte(item.Snapshot), &task); err != nil {
		return apperrors.Validation("O item da lixeira está corrompido e não pode ser restaurado.")
	}

	if _, err := s.verifications.FindByID(ctx, task.ID); err == nil {
		return apperrors.Conflict(fmt.Sprintf("Um item do tipo %s com o ID %s já existe. Restauração cancelada.", item.ItemType, task.ID))
	} else if err != apperrors.ErrVerificationNotFound {
		return err
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		return s.trash.DeleteTx(tx, item.ID)
	}); err != nil {
		return err
	}

	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, editorName, "RESTAURACAO", nil)
	return nil
}
