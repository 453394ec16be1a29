package services

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// BusinessSvcFacade manages businesses and their display order.
type BusinessSvcFacade interface {
	CreateBusiness(ctx context.Context, ownerID string, req dto.CreateBusinessRequest) (*dto.BusinessResponse, error)
	GetBusiness(ctx context.Context, ownerID, businessID string) (*dto.BusinessResponse, error)
	ListBusinesses(ctx context.Context, ownerID string) (*dto.ListBusinessesResponse, error)
	UpdateBusiness(ctx context.Context, ownerID, businessID string, req dto.UpdateBusinessRequest) (*dto.BusinessResponse, error)
	ReorderBusinesses(ctx context.Context, ownerID string, req dto.ReorderBusinessesRequest) (*dto.ListBusinessesResponse, error)
	DeleteBusiness(ctx context.Context, ownerID, businessID string) error
}
