package services

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// ActivitySvcFacade records and lists book activity.
type ActivitySvcFacade interface {
	// RecordActivity persists one audit entry. Failures are logged by the
	// caller and never abort the originating operation.
	RecordActivity(ctx context.Context, bookID, memberID string, activityType domain.ActivityType, details map[string]string) error
	ListActivities(ctx context.Context, memberID, bookID string, limit int, nextToken *string) (*dto.ListActivitiesResponse, error)
}
