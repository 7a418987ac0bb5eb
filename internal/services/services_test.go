package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quadro-expedicao.com/quadro-expedicao/internal/audit"
	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
	"quadro-expedicao.com/quadro-expedicao/internal/queue"
	repository "quadro-expedicao.com/quadro-expedicao/internal/repositories"
)

// mockNotifier records notifications in memory for assertions.
type mockNotifier struct {
	mu       sync.Mutex
	messages []mockNotification
}

type mockNotification struct {
	Recipient string
	Message   string
	Link      string
}

func (m *mockNotifier) Notify(ctx context.Context, recipient, message, link string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, mockNotification{Recipient: recipient, Message: message, Link: link})
}

func (m *mockNotifier) sentTo(recipient string) []mockNotification {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []mockNotification
	for _, msg := range m.messages {
		if msg.Recipient == recipient {
			out = append(out, msg)
		}
	}
	return out
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Worker{},
		&model.PickingTask{},
		&model.VerificationTask{},
		&model.TrashItem{},
		&model.AuditEntry{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func createWorker(t *testing.T, db *gorm.DB, name string, role constants.Role, active bool, priority int) {
	t.Helper()
	worker := &model.Worker{
		Name:          name,
		Role:          role,
		Active:        active,
		QueuePriority: priority,
	}
	if err := db.Create(worker).Error; err != nil {
		t.Fatalf("failed to create worker %s: %v", name, err)
	}
}

type testEnv struct {
	db           *gorm.DB
	picking      *PickingService
	verification *VerificationService
	trash        *TrashService
	queueSvc     *QueueService
	workerQueue  queue.WorkerQueue
	notifier     *mockNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)

	pickingRepo := repository.NewPickingRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	trashRepo := repository.NewTrashRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	recorder := audit.NewRecorder(auditRepo)
	workerQueue := queue.NewSQLWorkerQueue(db)
	notifier := &mockNotifier{}

	return &testEnv{
		db:           db,
		picking:      NewPickingService(db, pickingRepo, trashRepo, workerRepo, workerQueue, recorder, notifier),
		verification: NewVerificationService(db, verificationRepo, trashRepo, workerRepo, recorder, notifier),
		trash:        NewTrashService(db, trashRepo, pickingRepo, verificationRepo, recorder),
		queueSvc:     NewQueueService(workerQueue, workerRepo),
		workerQueue:  workerQueue,
		notifier:     notifier,
	}
}
