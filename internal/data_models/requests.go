package dto

type CreatePickingRequest struct {
	MovementNumber string   `json:"numero_movimentacao"`
	ClientName     string   `json:"nome_cliente"`
	WorkerNames    []string `json:"separadores_nomes"`
	SellerName     string   `json:"vendedor_nome"`
	PieceCount     int      `json:"qtd_pecas"`
	EditorName     string   `json:"editor_nome"`
}

type EditPickingRequest struct {
	MovementNumber *string  `json:"numero_movimentacao,omitempty"`
	ClientName     *string  `json:"nome_cliente,omitempty"`
	WorkerNames    []string `json:"separadores_nomes,omitempty"`
	SellerName     *string  `json:"vendedor_nome,omitempty"`
	PieceCount     *int     `json:"qtd_pecas,omitempty"`
	VerifierName   *string  `json:"conferente_nome,omitempty"`
	EditorName     string   `json:"editor_nome"`
}

type AssignVerifierRequest struct {
	VerifierName string `json:"conferente_nome"`
	EditorName   string `json:"editor_nome"`
}

type SetStatusRequest struct {
	Status     string `json:"status"`
	EditorName string `json:"editor_nome"`
}

type AddNoteRequest struct {
	Text   string `json:"texto"`
	Author string `json:"autor"`
	Role   string `json:"role"`
}

type ActorRequest struct {
	EditorName string `json:"editor_nome"`
}

type CreateReceiptRequest struct {
	InvoiceNumber string `json:"numero_nota_fiscal"`
	SupplierName  string `json:"nome_fornecedor"`
	CarrierName   string `json:"nome_transportadora"`
	VolumeCount   int    `json:"qtd_volumes"`
	ReceivedBy    string `json:"recebido_por"`
	EditorName    string `json:"editor_nome"`
}

type CreateStreetReceiptRequest struct {
	InvoiceNumber    string `json:"numero_nota_fiscal"`
	SupplierName     string `json:"nome_fornecedor"`
	VolumeCount      int    `json:"qtd_volumes"`
	SellerName       string `json:"vendedor_nome"`
	ReceivedBy       string `json:"recebido_por"`
	PendingSupplier  bool   `json:"tem_pendencia_fornecedor"`
	PendingAmendment bool   `json:"solicita_alteracao"`
	Note             string `json:"observacao"`
	EditorName       string `json:"editor_nome"`
}

type StartVerificationRequest struct {
	Verifiers  []string `json:"conferentes"`
	EditorName string   `json:"editor_nome"`
}

type FinalizeRequest struct {
	PendingSupplier  bool   `json:"tem_pendencia_fornecedor"`
	PendingAmendment bool   `json:"solicita_alteracao"`
	Note             string `json:"observacao"`
	EditorName       string `json:"editor_nome"`
}

type NoteActionRequest struct {
	Note       string `json:"observacao"`
	EditorName string `json:"editor_nome"`
}

type ResolvePendingRequest struct {
	Role       string `json:"user_role"`
	Note       string `json:"observacao"`
	EditorName string `json:"editor_nome"`
}

type ReopenRequest struct {
	Role       string `json:"user_role"`
	Reason     string `json:"motivo"`
	EditorName string `json:"editor_nome"`
}

type WorkerStatus struct {
	Name   string `json:"nome"`
	Active bool   `json:"ativo"`
}
