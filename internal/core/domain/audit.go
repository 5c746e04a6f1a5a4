package domain

import "time"

// AuditAction classifies an entry in the portal activity trail.
type AuditAction string

const (
	AuditLogin              AuditAction = "login"
	AuditLoginDenied        AuditAction = "login_denied"
	AuditLogout             AuditAction = "logout"
	AuditOrderUpdated       AuditAction = "order_updated"
	AuditMaintenanceUpdated AuditAction = "maintenance_updated"
)

// AuditEvent records one portal-side action for the activity trail.
type AuditEvent struct {
	Action    AuditAction `json:"action" bson:"action"`
	Username  string      `json:"username" bson:"username"`
	Role      string      `json:"role,omitempty" bson:"role,omitempty"`
	RecordID  int64       `json:"record_id,omitempty" bson:"record_id,omitempty"`
	Detail    string      `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}
