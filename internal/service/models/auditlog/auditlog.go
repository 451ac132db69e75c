package auditlog

import "time"

// SubmissionAudit is an audit entry for a committed booking or order.
type SubmissionAudit struct {
	ID             int64     `json:"id"`
	EventID        string    `json:"event_id"`
	Kind           string    `json:"kind"`
	RecordID       int64     `json:"record_id"`
	CustomerID     int64     `json:"customer_id"`
	CustomerEmail  string    `json:"customer_email"`
	ItemCount      int       `json:"item_count"`
	NotificationOK bool      `json:"notification_ok"`
	OccurredAt     time.Time `json:"occurred_at"`
	CreatedAt      time.Time `json:"created_at"`
}
