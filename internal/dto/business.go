package dto

import (
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
)

// CreateBusinessRequest creates a new business for the calling owner.
type CreateBusinessRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Type string `json:"type" binding:"required,oneof=personal business"`
}

// UpdateBusinessRequest renames a business or changes its type.
type UpdateBusinessRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Type *string `json:"type,omitempty" binding:"omitempty,oneof=personal business"`
}

// ReorderBusinessesRequest sets the display order of the owner's businesses.
// Every business of the owner must appear exactly once.
type ReorderBusinessesRequest struct {
	OrderedIDs []string `json:"orderedIds" binding:"required,min=1,dive,required"`
}

// BusinessResponse is the wire representation of a business.
type BusinessResponse struct {
	BusinessID string    `json:"businessId"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ListBusinessesResponse wraps a business collection in display order.
type ListBusinessesResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
}

// ToBusinessResponse maps a domain business to its wire form.
func ToBusinessResponse(b domain.Business) BusinessResponse {
	return BusinessResponse{
		BusinessID: b.BusinessID,
		Name:       b.Name,
		Type:       string(b.Type),
		SortOrder:  b.SortOrder,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.LastUpdatedAt,
	}
}

// ToListBusinessesResponse maps a business slice to the wire form.
func ToListBusinessesResponse(businesses []domain.Business) ListBusinessesResponse {
	out := ListBusinessesResponse{Businesses: make([]BusinessResponse, 0, len(businesses))}
	for _, b := range businesses {
		out.Businesses = append(out.Businesses, ToBusinessResponse(b))
	}
	return out
}
