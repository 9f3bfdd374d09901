package ports

import (
	"context"

	"github.com/GoArmGo/ShelterApp/internal/messaging/payloads"
)

// AuditRecorder accepts audit events after successful mutations.
// Implementations must not fail the request: errors are logged, not returned.
type AuditRecorder interface {
	RecordAudit(ctx context.Context, event payloads.AuditEvent)
}

// AuditConsumer is used by the worker to read queued audit events.
type AuditConsumer interface {
	// StartConsumingAuditEvents listens on the queue and calls handler for every event.
	StartConsumingAuditEvents(ctx context.Context, handler func(context.Context, payloads.AuditEvent) error) error
}

// ArchiveStorage stores audit events as objects in S3-compatible storage.
type ArchiveStorage interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
}

// AuditPublisher puts audit events on the queue.
type AuditPublisher interface {
	PublishAuditEvent(ctx context.Context, event payloads.AuditEvent) error
}
