package payloads

import "time"

// AuditEvent describes one successful mutation, published to RabbitMQ as JSON.
type AuditEvent struct {
	Method     string    `json:"method"`
	URL        string    `json:"url"`
	CenterID   int64     `json:"center_id"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Timestamp  time.Time `json:"timestamp"`
}
