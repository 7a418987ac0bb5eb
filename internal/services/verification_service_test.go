package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	apperrors "quadro-expedicao.com/quadro-expedicao/internal/errors"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
)

func createReceipt(t *testing.T, env *testEnv) *model.VerificationTask {
	t.Helper()
	task, err := env.verification.CreateReceipt(context.Background(), CreateReceiptInput{
		InvoiceNumber: "NF-1001",
		SupplierName:  "Fornecedor A",
		CarrierName:   "Transportes B",
		VolumeCount:   3,
		ReceivedBy:    "Portaria",
		EditorName:    "Admin",
	})
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}
	return task
}

func startVerification(t *testing.T, env *testEnv, id string) *model.VerificationTask {
	t.Helper()
	task, err := env.verification.StartVerification(context.Background(), id, []string{"Carla"}, "Carla")
	if err != nil {
		t.Fatalf("StartVerification failed: %v", err)
	}
	return task
}

func TestCreateReceipt_InitialState(t *testing.T) {
	env := newTestEnv(t)
	task := createReceipt(t, env)

	if task.Status != constants.VerificationAwaiting {
		t.Errorf("expected status %s, got %s", constants.VerificationAwaiting, task.Status)
	}
	if task.FinalizedAt != nil {
		t.Error("expected finalizedAt to be unset on creation")
	}
}

func TestStartVerification(t *testing.T) {
	env := newTestEnv(t)
	task := createReceipt(t, env)

	task = startVerification(t, env, task.ID)

	if task.Status != constants.VerificationInProgress {
		t.Errorf("expected status %s, got %s", constants.VerificationInProgress, task.Status)
	}
	if task.VerificationStartedAt == nil {
		t.Error("expected verification start timestamp to be set")
	}
	if len(task.Verifiers) != 1 || task.Verifiers[0] != "Carla" {
		t.Errorf("unexpected verifiers: %v", task.Verifiers)
	}

	_, err := env.verification.StartVerification(context.Background(), task.ID, nil, "Carla")
	if err == nil {
		t.Error("expected validation error for empty verifier list")
	}
}

func TestFinalize_StateTable(t *testing.T) {
	cases := []struct {
		name             string
		pendingSupplier  bool
		pendingAmendment bool
		wantStatus       constants.VerificationStatus
		wantStock        bool
		wantAccounting   bool
	}{
		{"no divergence", false, false, constants.VerificationFinalized, true, true},
		{"supplier only", true, false, constants.VerificationPendingSupplier, false, true},
		{"amendment only", false, true, constants.VerificationPendingAmendment, true, false},
		{"both", true, true, constants.VerificationPendingBoth, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			task := createReceipt(t, env)
			startVerification(t, env, task.ID)

			note := ""
			if tc.pendingSupplier || tc.pendingAmendment {
				note = "faltou 1 volume"
			}

			task, err := env.verification.Finalize(context.Background(), task.ID, tc.pendingSupplier, tc.pendingAmendment, note, "Carla")
			if err != nil {
				t.Fatalf("Finalize failed: %v", err)
			}

			if task.Status != tc.wantStatus {
				t.Errorf("expected status %s, got %s", tc.wantStatus, task.Status)
			}
			if task.ResolvedByStockManager != tc.wantStock {
				t.Errorf("expected resolvedByStockManager=%v, got %v", tc.wantStock, task.ResolvedByStockManager)
			}
			if task.ResolvedByAccounting != tc.wantAccounting {
				t.Errorf("expected resolvedByAccounting=%v, got %v", tc.wantAccounting, task.ResolvedByAccounting)
			}
			if task.FinalizedAt == nil {
				t.Error("expected finalizedAt to be set")
			}
		})
	}
}

func TestFinalize_BlankNoteRejectedWithDivergence(t *testing.T) {
	env := newTestEnv(t)
	task := createReceipt(t, env)
	startVerification(t, env, task.ID)

	_, err := env.verification.Finalize(context.Background(), task.ID, true, false, "  ", "Carla")
	if err == nil {
		t.Fatal("expected validation error for blank note with divergence")
	}
	if apperrors.StatusCode(err) != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apperrors.StatusCode(err))
	}

	// State untouched after the rejection.
	current, getErr := env.verification.Get(context.Background(), task.ID)
	if getErr != nil {
		t.Fatalf("Get failed: %v", getErr)
	}
	if current.Status != constants.VerificationInProgress {
		t.Errorf("expected status unchanged, got %s", current.Status)
	}
}

func TestFinalize_DivergenceNoteIsTagged(t *testing.T) {
	env := newTestEnv(t)
	task := createReceipt(t, env)
	startVerification(t, env, task.ID)

	task, err := env.verification.Finalize(context.Background(), task.ID, true, false, "faltou 1 volume", "Carla")
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if len(task.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(task.Notes))
	}
	if !strings.HasPrefix(task.Notes[0].Text, "[DIVERGÊNCIA] ") {
		t.Errorf("expected divergence tag, got %q", task.Notes[0].Text)
	}
}

func TestFinalize_PersistsAcrossReload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task := createReceipt(t, env)
	startVerification(t, env, task.ID)

	if _, err := env.verification.Finalize(ctx, task.ID, true, false, "faltou 1 volume", "Carla"); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	reloaded, err := env.verification.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if reloaded.Status != constants.VerificationPendingSupplier {
		t.Errorf("expected status %s after reload, got %s", constants.VerificationPendingSupplier, reloaded.Status)
	}
	if len(reloaded.Verifiers) != 1 || reloaded.Verifiers[0] != "Carla" {
		t.Errorf("expected verifiers to survive reload, got %v", reloaded.Verifiers)
	}
	if len(reloaded.Notes) != 1 || !strings.HasPrefix(reloaded.Notes[0].Text, "[DIVERGÊNCIA] ") {
		t.Errorf("expected tagged note to survive reload, got %+v", reloaded.Notes)
	}
}

func TestFinalize_AmendmentNotifiesAccountingAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	createWorker(t, env.db, "Conta", constants.RoleAccounting, false, 0)
	createWorker(t, env.db, "Chefe", constants.RoleAdmin, false, 0)

	task := createReceipt(t, env)
	startVerification(t, env, task.ID)

	if _, err := env.verification.Finalize(context.Background(), task.ID, false, true, "nota com valor errado", "Carla"); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if msgs := env.notifier.sentTo("Conta"); len(msgs) != 1 {
		t.Errorf("expected accounting to be notified once, got %d", len(msgs))
	}
	if msgs := env.notifier.sentTo("Chefe"); len(msgs) != 1 {
		t.Errorf("expected admin to be notified once, got %d", len(msgs))
	}
}

func TestResolvePendingItem_HalfResolveKeepsPendingBoth(t *testing.T) {
	env := newTestEnv(t)
	task := createReceipt(t, env)
	startVerification(t, env, task.ID)

	if _, err := env.verification.Finalize(context.Background(), task.ID, true, true, "divergência dupla", "Carla"); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	task, err := env.verification.ResolvePendingItem(context.Background(), task.ID, constants.RoleStock, "reposto", "Gestor")
	if err != nil {
		t.Fatalf("ResolvePendingItem failed: %v", err)
	}

	if !task.ResolvedByStockManager {
		t.Error("expected stock manager flag to be set")
	}
	if task.ResolvedByAccounting {
		t.Error("expected accounting flag to remain unset")
	}
	if task.Status == constants.VerificationFinalized {
		t.Error("expected status to remain pending with one flag unset")
	}
}

func TestResolvePendingItem_CompletesFinalization(t *testing.T) {
	env := newTestEnv(t)
	createWorker(t, env.db, "Conta", constants.RoleAccounting, false, 0)

	task := createReceipt(t, env)
	startVerification(t, env, task.ID)

	// Supplier pendência only: accounting is already resolved.
	if _, err := env.verification.Finalize(context.Background(), task.ID, true, false, "faltou 1 volume", "Carla"); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	task, err := env.verification.ResolvePendingItem(context.Background(), task.ID, constants.RoleStock, "reposto", "Gestor")
	if err != nil {
		t.Fatalf("ResolvePendingItem failed: %v", err)
	}

	if task.Status != constants.VerificationFinalized {
		t.Errorf("expected status %s, got %s", constants.VerificationFinalized, task.Status)
	}
	if task.FinalizedAt == nil {
		t.Error("expected finalizedAt to be set")
	}
	if msgs := env.notifier.sentTo("Conta"); len(msgs) != 1 {
		t.Errorf("expected opposite role group to be notified, got %d", len(msgs))
	}
}

func TestResolvePendingItem_RequiresNoteAndRole(t *testing.T) {
	env := newTestEnv(t)
	task := createReceipt(t, env)
	startVerification(t, env, task.ID)

	if _, err := env.verification.Finalize(context.Background(), task.ID, true, false, "faltou 1 volume", "Carla"); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	ctx := context.Background()

	if _, err := env.verification.ResolvePendingItem(ctx, task.ID, constants.RoleStock, " ", "Gestor"); err == nil {
		t.Error("expected validation error for blank note")
	}

	_, err := env.verification.ResolvePendingItem(ctx, task.ID, constants.RoleSeller, "tentativa", "Vera")
	if err == nil {
		t.Fatal("expected permission error for seller role")
	}
	if apperrors.StatusCode(err) != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", apperrors.StatusCode(err))
	}
}

func TestRequestAmendmentLater_Transitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// From Pendente (Fornecedor) it escalates to Pendente (Ambos).
	task := createReceipt(t, env)
	startVerification(t, env, task.ID)
	if _, err := env.verification.Finalize(ctx, task.ID, true, false, "faltou 1 volume", "Carla"); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	task, err := env.verification.RequestAmendmentLater(ctx, task.ID, "corrigir valor", "Conta")
	if err != nil {
		t.Fatalf("RequestAmendmentLater failed: %v", err)
	}
	if task.Status != constants.VerificationPendingBoth {
		t.Errorf("expected status %s, got %s", constants.VerificationPendingBoth, task.Status)
	}
	if task.ResolvedByAccounting {
		t.Error("expected accounting flag to be cleared")
	}

	// From Finalizado it reopens the accounting side.
	second := createReceipt(t, env)
	startVerification(t, env, second.ID)
	if _, err := env.verification.Finalize(ctx, second.ID, false, false, "", "Carla"); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	second, err = env.verification.RequestAmendmentLater(ctx, second.ID, "corrigir valor", "Conta")
	if err != nil {
		t.Fatalf("RequestAmendmentLater failed: %v", err)
	}
	if second.Status != constants.VerificationPendingAmendment {
		t.Errorf("expected status %s, got %s", constants.VerificationPendingAmendment, second.Status)
	}
}

func TestRequestAmendmentLater_NoOpOnAwaiting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task := createReceipt(t, env)

	task, err := env.verification.RequestAmendmentLater(ctx, task.ID, "qualquer", "Conta")
	if err != nil {
		t.Fatalf("expected no-op success, got %v", err)
	}
	if task.Status != constants.VerificationAwaiting {
		t.Errorf("expected status unchanged, got %s", task.Status)
	}
	if len(task.Notes) != 0 {
		t.Errorf("expected no note appended on no-op, got %d", len(task.Notes))
	}
}

func TestReopen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task := createReceipt(t, env)
	startVerification(t, env, task.ID)
	if _, err := env.verification.Finalize(ctx, task.ID, false, false, "", "Carla"); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if _, err := env.verification.Reopen(ctx, task.ID, constants.RoleSeller, "motivo", "Vera"); err == nil {
		t.Error("expected permission error for seller role")
	}
	if _, err := env.verification.Reopen(ctx, task.ID, constants.RoleAdmin, " ", "Chefe"); err == nil {
		t.Error("expected validation error for blank reason")
	}

	task, err := env.verification.Reopen(ctx, task.ID, constants.RoleAdmin, "conferência incompleta", "Chefe")
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}

	if task.Status != constants.VerificationInProgress {
		t.Errorf("expected status %s, got %s", constants.VerificationInProgress, task.Status)
	}
	if task.FinalizedAt != nil {
		t.Error("expected finalizedAt to be cleared")
	}
	if task.ResolvedByStockManager || task.ResolvedByAccounting {
		t.Error("expected both resolution flags to be cleared")
	}
	if len(task.Notes) == 0 || !strings.HasPrefix(task.Notes[len(task.Notes)-1].Text, "[REABERTO] ") {
		t.Error("expected a tagged reopen note")
	}

	// Not finalized anymore, so a second reopen is rejected.
	if _, err := env.verification.Reopen(ctx, task.ID, constants.RoleAdmin, "de novo", "Chefe"); err == nil {
		t.Error("expected reopen to be legal only from Finalizado")
	}
}

func TestCreateStreetReceipt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.verification.CreateStreetReceipt(ctx, CreateStreetReceiptInput{
		InvoiceNumber: "NF-2002",
		SupplierName:  "Fornecedor B",
		VolumeCount:   1,
		SellerName:    "Vera",
		ReceivedBy:    "Balcão",
		EditorName:    "Balcão",
	})
	if err != nil {
		t.Fatalf("CreateStreetReceipt failed: %v", err)
	}

	if task.CarrierName != constants.StreetCarrierName {
		t.Errorf("expected carrier %q, got %q", constants.StreetCarrierName, task.CarrierName)
	}
	if task.Status != constants.VerificationFinalized {
		t.Errorf("expected status %s, got %s", constants.VerificationFinalized, task.Status)
	}
	if len(task.Verifiers) != 1 || task.Verifiers[0] != "Balcão" {
		t.Errorf("expected receiver as sole verifier, got %v", task.Verifiers)
	}

	// Divergence still demands a note, before anything is created.
	_, err = env.verification.CreateStreetReceipt(ctx, CreateStreetReceiptInput{
		InvoiceNumber:   "NF-2003",
		PendingSupplier: true,
		SellerName:      "Vera",
		EditorName:      "Balcão",
	})
	if err == nil {
		t.Fatal("expected validation error for blank note with divergence")
	}
	if apperrors.StatusCode(err) != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apperrors.StatusCode(err))
	}
}

func TestUpdate_StaleVersionConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task := createReceipt(t, env)
	startVerification(t, env, task.ID)

	// Two callers read the same version; the second write loses.
	stale, err := env.verification.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if _, err := env.verification.Finalize(ctx, task.ID, false, false, "", "Carla"); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	repo := env.verification.repo
	stale.Status = constants.VerificationPendingSupplier
	err = repo.Update(ctx, stale)
	if err != apperrors.ErrOptimisticLock {
		t.Errorf("expected optimistic lock conflict, got %v", err)
	}
}
