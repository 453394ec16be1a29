package dto

import (
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
)

// ActivityResponse is the wire representation of one activity log entry.
type ActivityResponse struct {
	ActivityID string            `json:"activityId"`
	BookID     string            `json:"bookId"`
	MemberID   string            `json:"memberId"`
	MemberName string            `json:"memberName,omitempty"`
	Type       string            `json:"type"`
	Details    map[string]string `json:"details,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// ListActivitiesResponse is a paginated activity page, newest first.
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	NextToken  *string            `json:"nextToken,omitempty"`
}

// ToActivityResponse maps a domain activity to the wire form, attaching the
// acting member's display name when known.
func ToActivityResponse(a domain.ActivityLog, memberName string) ActivityResponse {
	return ActivityResponse{
		ActivityID: a.ActivityID,
		BookID:     a.BookID,
		MemberID:   a.MemberID,
		MemberName: memberName,
		Type:       string(a.Type),
		Details:    a.Details,
		Timestamp:  a.Timestamp,
	}
}
