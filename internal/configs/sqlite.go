package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "quadro-expedicao.com/quadro-expedicao/internal/models"
)

func New(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Worker{},
		&model.PickingTask{},
		&model.VerificationTask{},
		&model.TrashItem{},
		&model.AuditEntry{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
