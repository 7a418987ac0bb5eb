package model

import (
	"time"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
)

// PickingTask is a warehouse order-picking job (separação) tied to a unique
// six-digit movement number.
type PickingTask struct {
	ID              string                  `gorm:"primaryKey;size:36" json:"id"`
	MovementNumber  string                  `gorm:"size:20;not null;uniqueIndex" json:"numero_movimentacao"`
	ClientName      string                  `gorm:"size:200" json:"nome_cliente"`
	AssignedWorkers []string                `gorm:"serializer:json" json:"separadores_nomes"`
	SellerName      string                  `gorm:"size:100" json:"vendedor_nome"`
	PieceCount      int                     `gorm:"not null;default:0" json:"qtd_pecas"`
	Status          constants.PickingStatus `gorm:"type:varchar(50);not null" json:"status"`
	VerifierName    string                  `gorm:"size:100" json:"conferente_nome"`
	Notes           []Note                  `gorm:"serializer:json" json:"observacoes"`
	Version         uint                    `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time               `json:"data_criacao"`

	// Set exactly once, at Em Separação -> Em Conferência.
	VerificationStartedAt *time.Time `json:"data_inicio_conferencia,omitempty"`
	// Set exactly once, at the transition into Finalizado.
	FinishedAt *time.Time `json:"data_finalizacao,omitempty"`
}
