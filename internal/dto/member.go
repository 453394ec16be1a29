package dto

import (
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
)

// CreateMemberRequest registers a new member under the calling owner.
type CreateMemberRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Pin  string `json:"pin" binding:"required,len=4,numeric"`
	Role string `json:"role" binding:"required,oneof=owner admin viewer data-operator"`
}

// UpdateMemberRequest updates mutable member fields. Nil fields are left
// unchanged.
type UpdateMemberRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Pin  *string `json:"pin,omitempty" binding:"omitempty,len=4,numeric"`
	Role *string `json:"role,omitempty" binding:"omitempty,oneof=owner admin viewer data-operator"`
}

// UpdateDataOperatorSettingsRequest replaces the restrictions that apply when
// the member acts as a data operator on a book.
type UpdateDataOperatorSettingsRequest struct {
	AllowBackdatedEntries     *string `json:"allowBackdatedEntries,omitempty" binding:"omitempty,oneof=always never one-day-before"`
	HideNetBalanceAndReports  *bool   `json:"hideNetBalanceAndReports,omitempty"`
	HideEntriesByOtherMembers *bool   `json:"hideEntriesByOtherMembers,omitempty"`
	AllowEntryEditing         *bool   `json:"allowEntryEditing,omitempty"`
}

// DataOperatorSettingsResponse mirrors domain.DataOperatorSettings on the wire.
type DataOperatorSettingsResponse struct {
	AllowBackdatedEntries     string `json:"allowBackdatedEntries"`
	HideNetBalanceAndReports  bool   `json:"hideNetBalanceAndReports"`
	HideEntriesByOtherMembers bool   `json:"hideEntriesByOtherMembers"`
	AllowEntryEditing         bool   `json:"allowEntryEditing"`
}

// MemberResponse is the wire representation of a member.
type MemberResponse struct {
	MemberID             string                        `json:"memberId"`
	Name                 string                        `json:"name"`
	Role                 string                        `json:"role"`
	LastViewedBookID     string                        `json:"lastViewedBookId,omitempty"`
	DataOperatorSettings *DataOperatorSettingsResponse `json:"dataOperatorSettings,omitempty"`
	CreatedAt            time.Time                     `json:"createdAt"`
	UpdatedAt            time.Time                     `json:"updatedAt"`
}

// ListMembersResponse wraps a member collection.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// ToMemberResponse maps a domain member to its wire form. The PIN hash and
// lockout bookkeeping never leave the service layer.
func ToMemberResponse(m domain.Member) MemberResponse {
	resp := MemberResponse{
		MemberID:         m.MemberID,
		Name:             m.Name,
		Role:             string(m.Role),
		LastViewedBookID: m.LastViewedBookID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.LastUpdatedAt,
	}
	if m.DataOperatorSettings != nil {
		resp.DataOperatorSettings = &DataOperatorSettingsResponse{
			AllowBackdatedEntries:     string(m.DataOperatorSettings.AllowBackdatedEntries),
			HideNetBalanceAndReports:  m.DataOperatorSettings.HideNetBalanceAndReports,
			HideEntriesByOtherMembers: m.DataOperatorSettings.HideEntriesByOtherMembers,
			AllowEntryEditing:         m.DataOperatorSettings.AllowEntryEditing,
		}
	}
	return resp
}

// ToListMembersResponse maps a member slice to the wire form.
func ToListMembersResponse(members []domain.Member) ListMembersResponse {
	out := ListMembersResponse{Members: make([]MemberResponse, 0, len(members))}
	for _, m := range members {
		out.Members = append(out.Members, ToMemberResponse(m))
	}
	return out
}
