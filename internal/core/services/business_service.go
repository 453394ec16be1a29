package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// businessService manages businesses (workspaces) and their display order.
type businessService struct {
	BaseService
	businessRepo portsrepo.BusinessRepositoryFacade
	bookRepo     portsrepo.BookRepositoryFacade
}

// NewBusinessService creates a new business service.
func NewBusinessService(businessRepo portsrepo.BusinessRepositoryFacade, bookRepo portsrepo.BookRepositoryFacade) portssvc.BusinessSvcFacade {
	return &businessService{businessRepo: businessRepo, bookRepo: bookRepo}
}

var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

// CreateBusiness creates a workspace for the owner. New businesses go to the
// end of the display order.
func (s *businessService) CreateBusiness(ctx context.Context, ownerID string, req dto.CreateBusinessRequest) (*dto.BusinessResponse, error) {
	existing, err := s.businessRepo.ListBusinessesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	business := domain.Business{
		BusinessID: uuid.NewString(),
		Name:       req.Name,
		OwnerID:    ownerID,
		Type:       domain.BusinessType(req.Type),
		SortOrder:  len(existing),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.businessRepo.SaveBusiness(ctx, business); err != nil {
		s.LogError(ctx, err, "failed to save business", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "business created", slog.String("business_id", business.BusinessID))
	resp := dto.ToBusinessResponse(business)
	return &resp, nil
}

// GetBusiness returns one business owned by the caller.
func (s *businessService) GetBusiness(ctx context.Context, ownerID, businessID string) (*dto.BusinessResponse, error) {
	business, err := s.findOwned(ctx, ownerID, businessID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToBusinessResponse(*business)
	return &resp, nil
}

// ListBusinesses returns the owner's businesses in display order.
func (s *businessService) ListBusinesses(ctx context.Context, ownerID string) (*dto.ListBusinessesResponse, error) {
	businesses, err := s.businessRepo.ListBusinessesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListBusinessesResponse(businesses)
	return &resp, nil
}

// UpdateBusiness renames a business or changes its type.
func (s *businessService) UpdateBusiness(ctx context.Context, ownerID, businessID string, req dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	business, err := s.findOwned(ctx, ownerID, businessID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Type != nil {
		business.Type = domain.BusinessType(*req.Type)
	}
	business.LastUpdatedAt = time.Now()
	business.LastUpdatedBy = ownerID

	if err := s.businessRepo.UpdateBusiness(ctx, *business); err != nil {
		s.LogError(ctx, err, "failed to update business", slog.String("business_id", businessID))
		return nil, err
	}
	resp := dto.ToBusinessResponse(*business)
	return &resp, nil
}

// ReorderBusinesses sets the display order. The request must name every
// business of the owner exactly once.
func (s *businessService) ReorderBusinesses(ctx context.Context, ownerID string, req dto.ReorderBusinessesRequest) (*dto.ListBusinessesResponse, error) {
	existing, err := s.businessRepo.ListBusinessesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(req.OrderedIDs) != len(existing) {
		return nil, fmt.Errorf("%w: expected %d business ids, got %d", apperrors.ErrValidation, len(existing), len(req.OrderedIDs))
	}
	known := make(map[string]bool, len(existing))
	for _, b := range existing {
		known[b.BusinessID] = true
	}
	seen := make(map[string]bool, len(req.OrderedIDs))
	for _, id := range req.OrderedIDs {
		if !known[id] {
			return nil, fmt.Errorf("%w: unknown business id %s", apperrors.ErrValidation, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate business id %s", apperrors.ErrValidation, id)
		}
		seen[id] = true
	}

	if err := s.businessRepo.UpdateBusinessOrder(ctx, ownerID, req.OrderedIDs); err != nil {
		s.LogError(ctx, err, "failed to reorder businesses", slog.String("owner_id", ownerID))
		return nil, err
	}

	reordered, err := s.businessRepo.ListBusinessesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListBusinessesResponse(reordered)
	return &resp, nil
}

// DeleteBusiness removes an empty business. Businesses still holding books
// cannot be deleted.
func (s *businessService) DeleteBusiness(ctx context.Context, ownerID, businessID string) error {
	if _, err := s.findOwned(ctx, ownerID, businessID); err != nil {
		return err
	}
	books, err := s.bookRepo.ListBooksByBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	if len(books) > 0 {
		return fmt.Errorf("%w: business still contains %d books", apperrors.ErrValidation, len(books))
	}
	if err := s.businessRepo.DeleteBusiness(ctx, businessID); err != nil {
		s.LogError(ctx, err, "failed to delete business", slog.String("business_id", businessID))
		return err
	}
	s.LogInfo(ctx, "business deleted", slog.String("business_id", businessID))
	return nil
}

func (s *businessService) findOwned(ctx context.Context, ownerID, businessID string) (*domain.Business, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return business, nil
}
