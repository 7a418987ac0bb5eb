package model

import "time"

// TrashItem holds the full JSON snapshot of a soft-deleted task so it can be
// inspected and restored later.
type TrashItem struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	ItemType   string    `gorm:"size:50;not null;index:idx_tipo_id_original" json:"tipo_item"`
	OriginalID string    `gorm:"size:100;not null;index:idx_tipo_id_original" json:"item_id_original"`
	Snapshot   string    `gorm:"type:text;not null" json:"dados_item"`
	DeletedBy  string    `gorm:"size:100" json:"excluido_por"`
	DeletedAt  time.Time `gorm:"not null" json:"data_exclusao"`
}
