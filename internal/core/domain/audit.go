package domain

import "time"

// AuditAction names what happened in an AuditEvent.
type AuditAction string

const (
	AuditLogin            AuditAction = "login"
	AuditLoginFailed      AuditAction = "login_failed"
	AuditLogout           AuditAction = "logout"
	AuditAccessDenied     AuditAction = "access_denied"
	AuditUserCreated      AuditAction = "user_created"
	AuditSessionDiscarded AuditAction = "session_discarded"
)

// AuditEvent records a single access-related action.
type AuditEvent struct {
	ActorID   string      `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Action    AuditAction `json:"action" bson:"action"`
	Subject   string      `json:"subject,omitempty" bson:"subject,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
