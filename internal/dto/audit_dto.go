package dto

import "time"

// AuditEventMessage is the wire form of events on the internal audit topic.
type AuditEventMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
