package domain

import "time"

// AuditEventType enumerates the recorded security-relevant events.
type AuditEventType string

const (
	AuditLoginSuccess  AuditEventType = "login_success"
	AuditLoginFailed   AuditEventType = "login_failed"
	AuditAccountLocked AuditEventType = "account_locked"
	AuditStatusChanged AuditEventType = "status_changed"
)

// AuditEvent is one entry in the per-account audit trail. Email is the shard
// key, so events for the same account are persisted in order.
type AuditEvent struct {
	ID        string         `json:"id"`
	Type      AuditEventType `json:"type"`
	Email     string         `json:"email"`
	Actor     string         `json:"actor,omitempty"`
	Detail    string         `json:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
