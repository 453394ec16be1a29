package services

import (
	"context"

	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// MemberSvcFacade manages member profiles and their data-operator settings.
type MemberSvcFacade interface {
	CreateMember(ctx context.Context, ownerID string, req dto.CreateMemberRequest) (*dto.MemberResponse, error)
	GetMember(ctx context.Context, callerID, memberID string) (*dto.MemberResponse, error)
	ListMembers(ctx context.Context, ownerID string) (*dto.ListMembersResponse, error)
	UpdateMember(ctx context.Context, callerID, memberID string, req dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	UpdateDataOperatorSettings(ctx context.Context, callerID, memberID string, req dto.UpdateDataOperatorSettingsRequest) (*dto.MemberResponse, error)
	DeleteMember(ctx context.Context, callerID, memberID string) error
}
