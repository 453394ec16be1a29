package repositories

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
)

// ActivityRepositoryFacade defines persistence operations for book activity
// logs.
type ActivityRepositoryFacade interface {
	SaveActivity(ctx context.Context, activity domain.ActivityLog) error
	// ListActivitiesByBook returns activities newest first using keyset
	// pagination; nextToken is nil on the last page.
	ListActivitiesByBook(ctx context.Context, bookID string, limit int, nextToken *string) ([]domain.ActivityLog, *string, error)
}
