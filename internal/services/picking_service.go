package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quadro-expedicao.com/quadro-expedicao/internal/audit"
	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	apperrors "quadro-expedicao.com/quadro-expedicao/internal/errors"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
	"quadro-expedicao.com/quadro-expedicao/internal/notifier"
	"quadro-expedicao.com/quadro-expedicao/internal/queue"
	repository "quadro-expedicao.com/quadro-expedicao/internal/repositories"
)

var movementNumberRe = regexp.MustCompile(`^[0-9]{6}$`)

// PickingService runs the separação lifecycle: Em Separação -> Em
// Conferência -> Finalizado. Every transition commits before its audit and
// notification side effects run, so a failed side effect never rolls back a
// state change.
type PickingService struct {
	db       *gorm.DB
	repo     *repository.PickingRepository
	trash    *repository.TrashRepository
	workers  *repository.WorkerRepository
	queue    queue.WorkerQueue
	audit    *audit.Recorder
	notifier notifier.Notifier
}

func NewPickingService(
	db *gorm.DB,
	repo *repository.PickingRepository,
	trash *repository.TrashRepository,
	workers *repository.WorkerRepository,
	workerQueue queue.WorkerQueue,
	recorder *audit.Recorder,
	n notifier.Notifier,
) *PickingService {
	return &PickingService{
		db:       db,
		repo:     repo,
		trash:    trash,
		workers:  workers,
		queue:    workerQueue,
		audit:    recorder,
		notifier: n,
	}
}

type CreatePickingInput struct {
	MovementNumber string
	ClientName     string
	WorkerNames    []string
	SellerName     string
	PieceCount     int
	EditorName     string
}

func (s *PickingService) Create(ctx context.Context, input CreatePickingInput) (*model.PickingTask, error) {
	if !movementNumberRe.MatchString(input.MovementNumber) {
		return nil, apperrors.Validation("O Nº de Movimentação deve ter exatamente 6 dígitos.")
	}
	if len(input.WorkerNames) == 0 {
		return nil, apperrors.Validation("É necessário designar ao menos um separador.")
	}
	if input.PieceCount < 0 {
		return nil, apperrors.Validation("A quantidade de peças não pode ser negativa.")
	}

	task := &model.PickingTask{
		ID:              uuid.NewString(),
		MovementNumber:  input.MovementNumber,
		ClientName:      input.ClientName,
		AssignedWorkers: input.WorkerNames,
		SellerName:      input.SellerName,
		PieceCount:      input.PieceCount,
		Status:          constants.PickingInProgress,
		Notes:           []model.Note{},
		Version:         1,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	// The committed task is the source of truth; rotation is a consequence
	// that a reconciliation pass can recompute from task history if lost.
	if err := s.queue.RotateToBack(ctx, input.WorkerNames); err != nil {
		log.Printf("picking: queue rotation failed for %s: %v", task.MovementNumber, err)
	}

	s.audit.Record(ctx, constants.LogTypePicking, task.ID, input.EditorName, "CRIAÇÃO",
		map[string]string{"info": fmt.Sprintf("Criou a separação para o cliente '%s'.", input.ClientName)})
	s.notifier.Notify(ctx, input.SellerName,
		fmt.Sprintf("Nova separação (Mov: %s) criada para você por %s.", task.MovementNumber, input.EditorName),
		"/separacoes")

	return task, nil
}

// AssignVerifier moves a task in Em Separação into Em Conferência and records
// the verification start once. Re-assigning on a task already past that point
// only swaps the verifier name.
func (s *PickingService) AssignVerifier(ctx context.Context, id, verifierName, editorName string) (*model.PickingTask, error) {
	if strings.TrimSpace(verifierName) == "" {
		return nil, apperrors.Validation("O nome do conferente é obrigatório.")
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.VerifierName = verifierName
	if task.Status == constants.PickingInProgress {
		now := time.Now().UTC()
		task.Status = constants.PickingInVerification
		task.VerificationStartedAt = &now
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.LogTypePicking, task.ID, editorName, "EDIÇÃO",
		map[string]string{"info": fmt.Sprintf("Designou o conferente '%s'.", verifierName)})
	s.notifier.Notify(ctx, task.SellerName,
		fmt.Sprintf("A separação (Mov: %s) foi editada por %s.", task.MovementNumber, editorName),
		"/separacoes")

	return task, nil
}

func (s *PickingService) SetStatus(ctx context.Context, id string, newStatus constants.PickingStatus, editorName string) (*model.PickingTask, error) {
	switch newStatus {
	case constants.PickingInProgress, constants.PickingInVerification, constants.PickingDone:
	default:
		return nil, apperrors.Validation(fmt.Sprintf("Status inválido: %s", newStatus))
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	task.Status = newStatus
	if newStatus == constants.PickingDone && task.FinishedAt == nil {
		now := time.Now().UTC()
		task.FinishedAt = &now
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.LogTypePicking, task.ID, editorName, "MUDANÇA DE STATUS",
		map[string]string{"de": string(oldStatus), "para": string(newStatus)})

	return task, nil
}

// AddNote appends an observation and notifies the seller. Seller-authored
// notes additionally fan out to the active shipping team.
func (s *PickingService) AddNote(ctx context.Context, id, text, author string, role constants.Role) (*model.PickingTask, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Notes = append(task.Notes, model.Note{
		Text:      text,
		Author:    author,
		Role:      role,
		Timestamp: time.Now().UTC(),
	})

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.LogTypePicking, task.ID, author, "NOVA OBSERVAÇÃO",
		map[string]string{"info": text})

	s.notifier.Notify(ctx, task.SellerName,
		fmt.Sprintf("%s adicionou uma observação na separação (Mov: %s).", author, task.MovementNumber),
		"/separacoes")

	if role == constants.RoleSeller {
		shipping, err := s.workers.ListActiveByRole(ctx, constants.RoleShipping)
		if err != nil {
			log.Printf("picking: failed to list shipping workers: %v", err)
			return task, nil
		}
		for _, w := range shipping {
			s.notifier.Notify(ctx, w.Name,
				fmt.Sprintf("O vendedor %s adicionou uma observação na separação (Mov: %s).", author, task.MovementNumber),
				"/separacoes")
		}
	}

	return task, nil
}

type EditPickingInput struct {
	MovementNumber *string
	ClientName     *string
	WorkerNames    []string
	SellerName     *string
	PieceCount     *int
	VerifierName   *string
	EditorName     string
}

// Edit applies a general field update. A changed movement number is
// re-validated against every other live task; assigning a verifier on a task
// still in Em Separação advances it, same as AssignVerifier.
func (s *PickingService) Edit(ctx context.Context, id string, input EditPickingInput) (*model.PickingTask, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var changes []string

	if input.MovementNumber != nil && *input.MovementNumber != task.MovementNumber {
		if !movementNumberRe.MatchString(*input.MovementNumber) {
			return nil, apperrors.Validation("O Nº de Movimentação deve ter exatamente 6 dígitos.")
		}
		taken, err := s.repo.MovementNumberTaken(ctx, *input.MovementNumber, task.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.Conflict(fmt.Sprintf("O número de movimentação %s já pertence a outra separação.", *input.MovementNumber))
		}
		changes = append(changes, fmt.Sprintf("alterou 'numero_movimentacao' de '%s' para '%s'", task.MovementNumber, *input.MovementNumber))
		task.MovementNumber = *input.MovementNumber
	}

	if input.ClientName != nil && *input.ClientName != task.ClientName {
		changes = append(changes, fmt.Sprintf("alterou 'nome_cliente' de '%s' para '%s'", task.ClientName, *input.ClientName))
		task.ClientName = *input.ClientName
	}
	if input.SellerName != nil && *input.SellerName != task.SellerName {
		changes = append(changes, fmt.Sprintf("alterou 'vendedor_nome' de '%s' para '%s'", task.SellerName, *input.SellerName))
		task.SellerName = *input.SellerName
	}
	if input.PieceCount != nil && *input.PieceCount != task.PieceCount {
		changes = append(changes, fmt.Sprintf("alterou 'qtd_pecas' de '%d' para '%d'", task.PieceCount, *input.PieceCount))
		task.PieceCount = *input.PieceCount
	}
	if len(input.WorkerNames) > 0 {
		changes = append(changes, "alterou os separadores designados")
		task.AssignedWorkers = input.WorkerNames
	}
	if input.VerifierName != nil && *input.VerifierName != "" {
		if *input.VerifierName != task.VerifierName {
			changes = append(changes, fmt.Sprintf("alterou 'conferente_nome' de '%s' para '%s'", task.VerifierName, *input.VerifierName))
		}
		task.VerifierName = *input.VerifierName
		if task.Status == constants.PickingInProgress {
			now := time.Now().UTC()
			task.Status = constants.PickingInVerification
			task.VerificationStartedAt = &now
		}
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		s.audit.Record(ctx, constants.LogTypePicking, task.ID, input.EditorName, "EDIÇÃO",
			map[string]string{"info": fmt.Sprintf("Editou a separação: %s.", strings.Join(changes, ", "))})
	}

	s.notifier.Notify(ctx, task.SellerName,
		fmt.Sprintf("A separação (Mov: %s) foi editada por %s.", task.MovementNumber, input.EditorName),
		"/separacoes")

	return task, nil
}

// Delete snapshots the task into the trash and removes the live row in one
// transaction.
func (s *PickingService) Delete(ctx context.Context, id, actor string) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	snapshot, err := json.Marshal(task)
	if err != nil {
		return err
	}

	s.audit.Record(ctx, constants.LogTypePicking, task.ID, actor, "EXCLUSÃO",
		map[string]string{"info": fmt.Sprintf("Excluiu a separação (Mov: %s).", task.MovementNumber)})

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.trash.CreateTx(tx, &model.TrashItem{
			ID:         uuid.NewString(),
			ItemType:   constants.ItemTypePicking,
			OriginalID: task.ID,
			Snapshot:   string(snapshot),
			DeletedBy:  actor,
			DeletedAt:  time.Now().UTC(),
		}); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, task.ID)
	})
}

func (s *PickingService) Get(ctx context.Context, id string) (*model.PickingTask, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PickingService) List(ctx context.Context) ([]model.PickingTask, error) {
	return s.repo.List(ctx)
}
