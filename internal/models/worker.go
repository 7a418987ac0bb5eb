package model

import (
	"quadro-expedicao.com/quadro-expedicao/internal/constants"
)

// Worker is a provisioned user eligible to appear in the picking queue.
// Active and QueuePriority are mutated only through the WorkerQueue; lower
// priority means served sooner, ties broken by name.
type Worker struct {
	Name          string         `gorm:"primaryKey;size:150" json:"nome"`
	Role          constants.Role `gorm:"type:varchar(50);not null" json:"role"`
	Active        bool           `gorm:"not null;default:false" json:"ativo"`
	QueuePriority int            `gorm:"not null;default:0" json:"prioridade"`
}
