package model

import (
	"time"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
)

// VerificationTask is a goods-receiving verification job (conferência). A
// receipt may surface supplier-side or record-amendment divergences that need
// independent sign-off from the stock manager and from accounting.
//
// Invariant: Status is Finalizado exactly when both resolution flags are true;
// the pending statuses map one-to-one onto the remaining flag combinations.
type VerificationTask struct {
	ID            string                       `gorm:"primaryKey;size:36" json:"id"`
	InvoiceNumber string                       `gorm:"size:100" json:"numero_nota_fiscal"`
	SupplierName  string                       `gorm:"size:200" json:"nome_fornecedor"`
	CarrierName   string                       `gorm:"size:100" json:"nome_transportadora"`
	VolumeCount   int                          `gorm:"not null;default:0" json:"qtd_volumes"`
	SellerName    string                       `gorm:"size:100" json:"vendedor_nome,omitempty"`
	ReceivedBy    string                       `gorm:"size:100" json:"recebido_por"`
	Status        constants.VerificationStatus `gorm:"type:varchar(50);not null" json:"status"`
	Verifiers     []string                     `gorm:"serializer:json" json:"conferentes"`

	ResolvedByStockManager bool `gorm:"not null;default:false" json:"resolvido_gestor"`
	ResolvedByAccounting   bool `gorm:"not null;default:false" json:"resolvido_contabilidade"`

	Notes   []Note `gorm:"serializer:json" json:"observacoes"`
	Version uint   `gorm:"not null;default:1" json:"version"`

	ReceivedAt            time.Time  `json:"data_recebimento"`
	VerificationStartedAt *time.Time `json:"data_inicio_conferencia,omitempty"`
	FinalizedAt           *time.Time `json:"data_finalizacao,omitempty"`
}
