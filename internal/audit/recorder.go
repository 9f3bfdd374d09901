// Package audit records who changed what after every successful mutation.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GoArmGo/ShelterApp/internal/core/ports"
	"github.com/GoArmGo/ShelterApp/internal/messaging/payloads"
)

var (
	_ ports.AuditRecorder = (*LogRecorder)(nil)
	_ ports.AuditRecorder = (*QueueRecorder)(nil)
)

// LogRecorder writes one line per event to the audit log.
type LogRecorder struct {
	logger *slog.Logger
}

func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) RecordAudit(ctx context.Context, e payloads.AuditEvent) {
	r.logger.InfoContext(ctx,
		Line(e),
		"method", e.Method,
		"url", e.URL,
		"center_id", e.CenterID,
		"entity_type", e.EntityType,
		"entity_id", e.EntityID,
	)
}

// Line renders the human-readable audit message.
func Line(e payloads.AuditEvent) string {
	return fmt.Sprintf("method %s - request_url %s - center_id %d - entity_type %s - entity_id %d",
		e.Method, e.URL, e.CenterID, e.EntityType, e.EntityID)
}

// QueueRecorder hands events to the worker through the queue.
type QueueRecorder struct {
	publisher ports.AuditPublisher
	logger    *slog.Logger
}

func NewQueueRecorder(publisher ports.AuditPublisher, logger *slog.Logger) *QueueRecorder {
	return &QueueRecorder{publisher: publisher, logger: logger}
}

// RecordAudit never fails the caller; a lost event is logged.
func (r *QueueRecorder) RecordAudit(ctx context.Context, e payloads.AuditEvent) {
	if err := r.publisher.PublishAuditEvent(ctx, e); err != nil {
		r.logger.ErrorContext(ctx, "failed to publish audit event", "error", err, "event", Line(e))
	}
}

// EventID is a name-based UUID of the event, so redeliveries of one event map to one object.
func EventID(e payloads.AuditEvent) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(Line(e)+" - timestamp "+e.Timestamp.UTC().Format(time.RFC3339Nano)))
}

// ArchiveKey places an event under audit/YYYY/MM/DD/<id>.json by its UTC date.
func ArchiveKey(e payloads.AuditEvent) string {
	return fmt.Sprintf("audit/%s/%s.json", e.Timestamp.UTC().Format("2006/01/02"), EventID(e))
}

// WorkerHandler processes queued events: the event is archived when archive is
// non-nil, then the line goes to the log. A returned error leaves the line unwritten
// so a redelivery logs it once.
func WorkerHandler(log *LogRecorder, archive ports.ArchiveStorage) func(context.Context, payloads.AuditEvent) error {
	return func(ctx context.Context, e payloads.AuditEvent) error {
		if archive != nil {
			body, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("marshal audit event: %w", err)
			}
			if err := archive.PutObject(ctx, ArchiveKey(e), body, "application/json"); err != nil {
				return fmt.Errorf("archive audit event: %w", err)
			}
		}
		log.RecordAudit(ctx, e)
		return nil
	}
}
