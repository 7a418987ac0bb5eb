package queue

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	model "quadro-expedicao.com/quadro-expedicao/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&model.Worker{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func addPicker(t *testing.T, db *gorm.DB, name string, active bool, priority int) {
	t.Helper()
	worker := &model.Worker{
		Name:          name,
		Role:          constants.RolePicker,
		Active:        active,
		QueuePriority: priority,
	}
	if err := db.Create(worker).Error; err != nil {
		t.Fatalf("failed to create worker %s: %v", name, err)
	}
}

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected queue %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected queue %v, got %v", want, got)
		}
	}
}

func TestListActive_OrderedByPriorityThenName(t *testing.T) {
	db := setupTestDB(t)
	q := NewSQLWorkerQueue(db)

	addPicker(t, db, "Carla", true, 2)
	addPicker(t, db, "Ana", true, 1)
	addPicker(t, db, "Bruno", true, 2)
	addPicker(t, db, "Diego", false, 0)

	names, err := q.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}

	assertOrder(t, names, []string{"Ana", "Bruno", "Carla"})
}

func TestSetActiveSet_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	q := NewSQLWorkerQueue(db)

	addPicker(t, db, "Ana", false, 0)
	addPicker(t, db, "Bruno", false, 0)
	addPicker(t, db, "Carla", false, 0)

	ctx := context.Background()
	if err := q.SetActiveSet(ctx, []string{"Bruno", "Ana"}); err != nil {
		t.Fatalf("SetActiveSet failed: %v", err)
	}

	names, err := q.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}

	// Exactly the requested set, no duplicates, activation order preserved.
	assertOrder(t, names, []string{"Bruno", "Ana"})
}

func TestSetActiveSet_NewWorkersJoinAtBack(t *testing.T) {
	db := setupTestDB(t)
	q := NewSQLWorkerQueue(db)

	addPicker(t, db, "Ana", true, 1)
	addPicker(t, db, "Bruno", true, 2)
	addPicker(t, db, "Carla", false, 0)

	ctx := context.Background()
	if err := q.SetActiveSet(ctx, []string{"Carla", "Ana", "Bruno"}); err != nil {
		t.Fatalf("SetActiveSet failed: %v", err)
	}

	names, err := q.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}

	// Ana and Bruno keep their relative order; Carla is appended.
	assertOrder(t, names, []string{"Ana", "Bruno", "Carla"})
}

func TestSetActiveSet_DeactivatesMissingWorkers(t *testing.T) {
	db := setupTestDB(t)
	q := NewSQLWorkerQueue(db)

	addPicker(t, db, "Ana", true, 1)
	addPicker(t, db, "Bruno", true, 2)
	addPicker(t, db, "Carla", true, 3)

	ctx := context.Background()
	if err := q.SetActiveSet(ctx, []string{"Ana", "Carla"}); err != nil {
		t.Fatalf("SetActiveSet failed: %v", err)
	}

	names, err := q.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}

	assertOrder(t, names, []string{"Ana", "Carla"})
}

func TestRotateToBack_SingleWorker(t *testing.T) {
	db := setupTestDB(t)
	q := NewSQLWorkerQueue(db)

	addPicker(t, db, "Ana", true, 1)
	addPicker(t, db, "Bruno", true, 2)
	addPicker(t, db, "Carla", true, 3)

	ctx := context.Background()
	if err := q.RotateToBack(ctx, []string{"Ana"}); err != nil {
		t.Fatalf("RotateToBack failed: %v", err)
	}

	names, err := q.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}

	assertOrder(t, names, []string{"Bruno", "Carla", "Ana"})
}

func TestRotateToBack_MultiWorkerBatchOrder(t *testing.T) {
	db := setupTestDB(t)
	q := NewSQLWorkerQueue(db)

	addPicker(t, db, "Ana", true, 1)
	addPicker(t, db, "Bruno", true, 2)
	addPicker(t, db, "Carla", true, 3)
	addPicker(t, db, "Diego", true, 4)

	ctx := context.Background()
	if err := q.RotateToBack(ctx, []string{"Ana", "Bruno"}); err != nil {
		t.Fatalf("RotateToBack failed: %v", err)
	}

	names, err := q.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}

	// The last name in the batch ends up furthest back.
	assertOrder(t, names, []string{"Carla", "Diego", "Ana", "Bruno"})
}

func TestRotateToBack_UnknownAndInactiveNamesAreNoOps(t *testing.T) {
	db := setupTestDB(t)
	q := NewSQLWorkerQueue(db)

	addPicker(t, db, "Ana", true, 1)
	addPicker(t, db, "Bruno", true, 2)
	addPicker(t, db, "Carla", false, 0)

	ctx := context.Background()
	if err := q.RotateToBack(ctx, []string{"Zeca", "Carla"}); err != nil {
		t.Fatalf("RotateToBack failed: %v", err)
	}

	names, err := q.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}

	assertOrder(t, names, []string{"Ana", "Bruno"})
}

func TestRotateToBack_ConcurrentRotationsLoseNoUpdate(t *testing.T) {
	db := setupTestDB(t)
	q := NewSQLWorkerQueue(db)

	workers := []string{"Ana", "Bruno", "Carla", "Diego", "Elisa"}
	for i, name := range workers {
		addPicker(t, db, name, true, i+1)
	}

	var wg sync.WaitGroup
	wg.Add(len(workers))
	for _, name := range workers {
		go func(n string) {
			defer wg.Done()
			if err := q.RotateToBack(context.Background(), []string{n}); err != nil {
				t.Errorf("RotateToBack(%s) failed: %v", n, err)
			}
		}(name)
	}
	wg.Wait()

	var rows []model.Worker
	if err := db.Where("active = ?", true).Find(&rows).Error; err != nil {
		t.Fatalf("failed to load workers: %v", err)
	}

	seen := make(map[int]string, len(rows))
	for _, w := range rows {
		if other, dup := seen[w.QueuePriority]; dup {
			t.Errorf("priority %d assigned to both %s and %s", w.QueuePriority, other, w.Name)
		}
		seen[w.QueuePriority] = w.Name
	}
}
