package model

import "time"

// AuditEntry is one append-only audit log record for a task.
type AuditEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ItemID    string    `gorm:"size:100;not null;index:idx_log_item" json:"item_id"`
	LogType   string    `gorm:"size:50;not null;index:idx_log_item" json:"log_type"`
	Author    string    `gorm:"size:100" json:"autor"`
	Action    string    `gorm:"size:100;not null" json:"acao"`
	Details   string    `gorm:"type:text" json:"detalhes"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
