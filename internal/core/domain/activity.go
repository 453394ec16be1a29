package domain

import "time"

// ActivityType enumerates the mutations recorded in a book's activity log.
type ActivityType string

const (
	ActivityCreate    ActivityType = "create"
	ActivityUpdate    ActivityType = "update"
	ActivityDelete    ActivityType = "delete"
	ActivityCopy      ActivityType = "copy"
	ActivityMove      ActivityType = "move"
	ActivityDeleteAll ActivityType = "delete_all"
	ActivityImport    ActivityType = "import"
)

// ActivityLog records a single mutation performed on a book.
// Details carries a small type-specific payload (amounts, counts, target book).
type ActivityLog struct {
	ActivityID string            `json:"activityId"`
	BookID     string            `json:"bookId"`
	MemberID   string            `json:"memberId"`
	Timestamp  time.Time         `json:"timestamp"`
	Type       ActivityType      `json:"type"`
	Details    map[string]string `json:"details,omitempty"`
}
