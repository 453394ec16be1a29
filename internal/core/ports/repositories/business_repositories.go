package repositories

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
)

// BusinessRepositoryFacade defines persistence operations for businesses
// (workspaces grouping books).
type BusinessRepositoryFacade interface {
	SaveBusiness(ctx context.Context, business domain.Business) error
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
	ListBusinessesByOwner(ctx context.Context, ownerID string) ([]domain.Business, error)
	UpdateBusiness(ctx context.Context, business domain.Business) error
	// UpdateBusinessOrder persists the display order of all supplied
	// businesses in one round trip.
	UpdateBusinessOrder(ctx context.Context, ownerID string, orderedIDs []string) error
	DeleteBusiness(ctx context.Context, businessID string) error
}
