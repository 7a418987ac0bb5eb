package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quadro-expedicao.com/quadro-expedicao/internal/audit"
	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	apperrors "quadro-expedicao.com/quadro-expedicao/internal/errors"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
	"quadro-expedicao.com/quadro-expedicao/internal/notifier"
	repository "quadro-expedicao.com/quadro-expedicao/internal/repositories"
)

// VerificationService runs the conferência lifecycle. The status of a task
// with pendências is a pure function of the two resolution flags:
// Finalizado iff both are set, the pending statuses cover the other three
// combinations.
type VerificationService struct {
	db       *gorm.DB
	repo     *repository.VerificationRepository
	trash    *repository.TrashRepository
	workers  *repository.WorkerRepository
	audit    *audit.Recorder
	notifier notifier.Notifier
}

func NewVerificationService(
	db *gorm.DB,
	repo *repository.VerificationRepository,
	trash *repository.TrashRepository,
	workers *repository.WorkerRepository,
	recorder *audit.Recorder,
	n notifier.Notifier,
) *VerificationService {
	return &VerificationService{
		db:       db,
		repo:     repo,
		trash:    trash,
		workers:  workers,
		audit:    recorder,
		notifier: n,
	}
}

type CreateReceiptInput struct {
	InvoiceNumber string
	SupplierName  string
	CarrierName   string
	VolumeCount   int
	ReceivedBy    string
	EditorName    string
}

func (s *VerificationService) CreateReceipt(ctx context.Context, input CreateReceiptInput) (*model.VerificationTask, error) {
	if strings.TrimSpace(input.InvoiceNumber) == "" {
		return nil, apperrors.Validation("O número da nota fiscal é obrigatório.")
	}
	if input.VolumeCount < 0 {
		return nil, apperrors.Validation("A quantidade de volumes não pode ser negativa.")
	}

	task := &model.VerificationTask{
		ID:            uuid.NewString(),
		InvoiceNumber: input.InvoiceNumber,
		SupplierName:  input.SupplierName,
		CarrierName:   input.CarrierName,
		VolumeCount:   input.VolumeCount,
		ReceivedBy:    input.ReceivedBy,
		Status:        constants.VerificationAwaiting,
		Verifiers:     []string{},
		Notes:         []model.Note{},
		Version:       1,
		ReceivedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, input.EditorName, "RECEBIMENTO_CRIADO", nil)
	return task, nil
}

type CreateStreetReceiptInput struct {
	InvoiceNumber    string
	SupplierName     string
	VolumeCount      int
	SellerName       string
	ReceivedBy       string
	PendingSupplier  bool
	PendingAmendment bool
	Note             string
	EditorName       string
}

// CreateStreetReceipt records a nota da rua: the receiver verifies on the
// spot, so the task is created already in verification and finalized in the
// same call.
func (s *VerificationService) CreateStreetReceipt(ctx context.Context, input CreateStreetReceiptInput) (*model.VerificationTask, error) {
	if strings.TrimSpace(input.InvoiceNumber) == "" {
		return nil, apperrors.Validation("O número da nota fiscal é obrigatório.")
	}
	if (input.PendingSupplier || input.PendingAmendment) && strings.TrimSpace(input.Note) == "" {
		return nil, apperrors.Validation("Observação é obrigatória quando há divergências.")
	}

	now := time.Now().UTC()
	task := &model.VerificationTask{
		ID:                    uuid.NewString(),
		InvoiceNumber:         input.InvoiceNumber,
		SupplierName:          input.SupplierName,
		CarrierName:           constants.StreetCarrierName,
		VolumeCount:           input.VolumeCount,
		SellerName:            input.SellerName,
		ReceivedBy:            input.ReceivedBy,
		Status:                constants.VerificationAwaiting,
		Verifiers:             []string{input.EditorName},
		Notes:                 []model.Note{},
		Version:               1,
		ReceivedAt:            now,
		VerificationStartedAt: &now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, input.EditorName, "RECEBIMENTO_RUA_CRIADO", nil)

	return s.Finalize(ctx, task.ID, input.PendingSupplier, input.PendingAmendment, input.Note, input.EditorName)
}

func (s *VerificationService) StartVerification(ctx context.Context, id string, verifiers []string, editorName string) (*model.VerificationTask, error) {
	if len(verifiers) == 0 {
		return nil, apperrors.Validation("É necessário informar ao menos um conferente.")
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task.Status = constants.VerificationInProgress
	task.VerificationStartedAt = &now
	task.Verifiers = verifiers

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, editorName, "INICIO_CONFERENCIA",
		map[string]string{"conferentes": strings.Join(verifiers, ", ")})

	return task, nil
}

// Finalize closes the verification. Any divergence demands a note; the
// resulting status and resolution flags follow directly from which
// divergences were raised.
func (s *VerificationService) Finalize(ctx context.Context, id string, pendingSupplier, pendingAmendment bool, note, editorName string) (*model.VerificationTask, error) {
	if (pendingSupplier || pendingAmendment) && strings.TrimSpace(note) == "" {
		return nil, apperrors.Validation("Observação é obrigatória quando há divergências.")
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case pendingSupplier && pendingAmendment:
		task.Status = constants.VerificationPendingBoth
	case pendingSupplier:
		task.Status = constants.VerificationPendingSupplier
	case pendingAmendment:
		task.Status = constants.VerificationPendingAmendment
	default:
		task.Status = constants.VerificationFinalized
	}

	now := time.Now().UTC()
	task.FinalizedAt = &now
	task.ResolvedByStockManager = !pendingSupplier
	task.ResolvedByAccounting = !pendingAmendment

	if strings.TrimSpace(note) != "" {
		task.Notes = append(task.Notes, model.Note{
			Text:      fmt.Sprintf("[DIVERGÊNCIA] %s", note),
			Author:    editorName,
			Timestamp: now,
		})
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, editorName,
		fmt.Sprintf("FINALIZADO_COM_STATUS_%s", strings.ToUpper(string(task.Status))),
		map[string]string{"info": note})

	if pendingAmendment {
		s.notifyRoles(ctx, []constants.Role{constants.RoleAccounting, constants.RoleAdmin},
			fmt.Sprintf("A conferência da NF %s aguarda alteração da contabilidade.", task.InvoiceNumber))
	}

	return task, nil
}

// RequestAmendmentLater raises an accounting divergence after the fact. Only
// Pendente (Fornecedor) and Finalizado have anywhere to go; any other status
// is a no-op success.
func (s *VerificationService) RequestAmendmentLater(ctx context.Context, id, note, editorName string) (*model.VerificationTask, error) {
	if strings.TrimSpace(note) == "" {
		return nil, apperrors.Validation("A observação é obrigatória.")
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch task.Status {
	case constants.VerificationPendingSupplier:
		task.Status = constants.VerificationPendingBoth
	case constants.VerificationFinalized:
		task.Status = constants.VerificationPendingAmendment
	default:
		return task, nil
	}

	task.ResolvedByAccounting = false
	task.Notes = append(task.Notes, model.Note{
		Text:      fmt.Sprintf("[SOLICITAÇÃO DE ALTERAÇÃO] %s", note),
		Author:    editorName,
		Timestamp: time.Now().UTC(),
	})

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, editorName, "SOLICITACAO_ALTERACAO_POSTERIOR",
		map[string]string{"info": note})
	s.notifyRoles(ctx, []constants.Role{constants.RoleAccounting, constants.RoleAdmin},
		fmt.Sprintf("A conferência da NF %s recebeu uma solicitação de alteração.", task.InvoiceNumber))

	return task, nil
}

// ResolvePendingItem records one side's sign-off. Admin and Estoque resolve
// the supplier pendência, Contabilidade resolves the amendment; once both
// flags are set the task finalizes.
func (s *VerificationService) ResolvePendingItem(ctx context.Context, id string, actorRole constants.Role, note, editorName string) (*model.VerificationTask, error) {
	if strings.TrimSpace(note) == "" {
		return nil, apperrors.Validation("A observação de resolução é obrigatória.")
	}

	var action string
	switch actorRole {
	case constants.RoleAdmin, constants.RoleStock:
		action = "PENDENCIA_FORNECEDOR_RESOLVIDA"
	case constants.RoleAccounting:
		action = "ALTERACAO_CONTABILIDADE_RESOLVIDA"
	default:
		return nil, apperrors.ErrPermissionDenied
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorRole == constants.RoleAccounting {
		task.ResolvedByAccounting = true
	} else {
		task.ResolvedByStockManager = true
	}

	completed := false
	if task.ResolvedByStockManager && task.ResolvedByAccounting && task.Status != constants.VerificationFinalized {
		task.Status = constants.VerificationFinalized
		now := time.Now().UTC()
		task.FinalizedAt = &now
		completed = true
	}

	task.Notes = append(task.Notes, model.Note{
		Text:      fmt.Sprintf("[%s] %s", action, note),
		Author:    editorName,
		Timestamp: time.Now().UTC(),
	})

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, editorName, action,
		map[string]string{"info": note})

	if completed {
		opposite := []constants.Role{constants.RoleAccounting}
		if actorRole == constants.RoleAccounting {
			opposite = []constants.Role{constants.RoleStock, constants.RoleAdmin}
		}
		s.notifyRoles(ctx, opposite,
			fmt.Sprintf("A conferência da NF %s foi totalmente resolvida e finalizada.", task.InvoiceNumber))
	}

	return task, nil
}

// Reopen sends a finalized verification back to Em Conferência, clearing both
// sign-offs. Gated to the roles that participate in pending resolution.
func (s *VerificationService) Reopen(ctx context.Context, id string, actorRole constants.Role, reason, editorName string) (*model.VerificationTask, error) {
	switch actorRole {
	case constants.RoleAdmin, constants.RoleStock, constants.RoleAccounting:
	default:
		return nil, apperrors.ErrPermissionDenied
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.Validation("O motivo da reabertura é obrigatório.")
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Status != constants.VerificationFinalized {
		return nil, apperrors.Validation("Apenas conferências finalizadas podem ser reabertas.")
	}

	task.Status = constants.VerificationInProgress
	task.FinalizedAt = nil
	task.ResolvedByStockManager = false
	task.ResolvedByAccounting = false
	task.Notes = append(task.Notes, model.Note{
		Text:      fmt.Sprintf("[REABERTO] %s", reason),
		Author:    editorName,
		Timestamp: time.Now().UTC(),
	})

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, editorName, "REABERTURA",
		map[string]string{"info": reason})

	return task, nil
}

func (s *VerificationService) AddNote(ctx context.Context, id, text, author string, role constants.Role) (*model.VerificationTask, error) {
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

	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, author, "NOVA_ATUALIZACAO",
		map[string]string{"info": text})

	return task, nil
}

func (s *VerificationService) Delete(ctx context.Context, id, actor string) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	snapshot, err := json.Marshal(task)
	if err != nil {
		return err
	}

	s.audit.Record(ctx, constants.LogTypeVerification, task.ID, actor, "EXCLUSAO",
		map[string]string{"info": fmt.Sprintf("Excluiu a conferência da NF %s.", task.InvoiceNumber)})

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.trash.CreateTx(tx, &model.TrashItem{
			ID:         uuid.NewString(),
			ItemType:   constants.ItemTypeVerification,
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

func (s *VerificationService) Get(ctx context.Context, id string) (*model.VerificationTask, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VerificationService) ListActive(ctx context.Context) ([]model.VerificationTask, error) {
	return s.repo.ListByStatuses(ctx, []constants.VerificationStatus{
		constants.VerificationAwaiting,
		constants.VerificationInProgress,
	})
}

func (s *VerificationService) ListPendingAndResolved(ctx context.Context) ([]model.VerificationTask, error) {
	return s.repo.ListByStatuses(ctx, []constants.VerificationStatus{
		constants.VerificationPendingSupplier,
		constants.VerificationPendingAmendment,
		constants.VerificationPendingBoth,
		constants.VerificationFinalized,
	})
}

func (s *VerificationService) ListRecent(ctx context.Context) ([]model.VerificationTask, error) {
	return s.repo.ListRecent(ctx, 200)
}

func (s *VerificationService) notifyRoles(ctx context.Context, roles []constants.Role, message string) {
	for _, role := range roles {
		users, err := s.workers.ListByRole(ctx, role)
		if err != nil {
			log.Printf("verification: failed to list %s users: %v", role, err)
			continue
		}
		for _, u := range users {
			s.notifier.Notify(ctx, u.Name, message, "/conferencias")
		}
	}
}
