package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	model "quadro-expedicao.com/quadro-expedicao/internal/models"
	repository "quadro-expedicao.com/quadro-expedicao/internal/repositories"
)

// Recorder appends audit entries best-effort: a failed append is logged and
// swallowed so it can never fail a workflow operation that already committed.
type Recorder struct {
	repo *repository.AuditRepository
}

func NewRecorder(repo *repository.AuditRepository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, logType, itemID, author, action string, details map[string]string) {
	payload := ""
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err == nil {
			payload = string(raw)
		}
	}

	entry := &model.AuditEntry{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		LogType:   logType,
		Author:    author,
		Action:    action,
		Details:   payload,
		Timestamp: time.Now().UTC(),
	}

	if err := r.repo.Append(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s for %s/%s: %v", action, logType, itemID, err)
	}
}

func (r *Recorder) List(ctx context.Context, logType, itemID string) ([]model.AuditEntry, error) {
	return r.repo.ListByItem(ctx, logType, itemID)
}
