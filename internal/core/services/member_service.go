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
	"github.com/rupeebook/rupeebook_backend/internal/utils"
)

// memberService manages member profiles, roles and data-operator settings.
type memberService struct {
	BaseService
	memberRepo portsrepo.MemberRepositoryFacade
}

// NewMemberService creates a new member service.
func NewMemberService(memberRepo portsrepo.MemberRepositoryFacade) portssvc.MemberSvcFacade {
	return &memberService{memberRepo: memberRepo}
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

// CreateMember registers a new member under the caller's owner scope. Only
// owners and admins may create members.
func (s *memberService) CreateMember(ctx context.Context, ownerID string, req dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	caller, err := s.requireManager(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	pinHash, err := utils.HashPin(req.Pin)
	if err != nil {
		return nil, fmt.Errorf("failed to hash pin: %w", err)
	}

	now := time.Now()
	member := domain.Member{
		MemberID: uuid.NewString(),
		Name:     req.Name,
		PinHash:  pinHash,
		Role:     domain.Role(req.Role),
		OwnerID:  ownerScope(caller),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}
	if member.Role == domain.RoleDataOperator {
		defaults := domain.DefaultDataOperatorSettings()
		member.DataOperatorSettings = &defaults
	}

	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "failed to save member", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "member created", slog.String("member_id", member.MemberID), slog.String("role", req.Role))
	resp := dto.ToMemberResponse(member)
	return &resp, nil
}

// GetMember returns a member visible to the caller: themselves, or any member
// in the same owner scope.
func (s *memberService) GetMember(ctx context.Context, callerID, memberID string) (*dto.MemberResponse, error) {
	caller, err := s.memberRepo.FindMemberByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if callerID != memberID && ownerScope(caller) != ownerScope(member) {
		return nil, apperrors.ErrForbidden
	}
	resp := dto.ToMemberResponse(*member)
	return &resp, nil
}

// ListMembers returns all members in the caller's owner scope.
func (s *memberService) ListMembers(ctx context.Context, ownerID string) (*dto.ListMembersResponse, error) {
	caller, err := s.memberRepo.FindMemberByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListMembers(ctx, ownerScope(caller))
	if err != nil {
		return nil, err
	}
	resp := dto.ToListMembersResponse(members)
	return &resp, nil
}

// UpdateMember updates a member's name, PIN or role. Members may update their
// own name and PIN; role changes require a manager.
func (s *memberService) UpdateMember(ctx context.Context, callerID, memberID string, req dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if callerID != memberID || req.Role != nil {
		if _, err := s.requireManager(ctx, callerID); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Pin != nil {
		pinHash, err := utils.HashPin(*req.Pin)
		if err != nil {
			return nil, fmt.Errorf("failed to hash pin: %w", err)
		}
		member.PinHash = pinHash
	}
	if req.Role != nil {
		member.Role = domain.Role(*req.Role)
		if member.Role == domain.RoleDataOperator && member.DataOperatorSettings == nil {
			defaults := domain.DefaultDataOperatorSettings()
			member.DataOperatorSettings = &defaults
		}
	}
	member.LastUpdatedAt = time.Now()
	member.LastUpdatedBy = callerID

	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		s.LogError(ctx, err, "failed to update member", slog.String("member_id", memberID))
		return nil, err
	}
	resp := dto.ToMemberResponse(*member)
	return &resp, nil
}

// UpdateDataOperatorSettings replaces the restrictions applied to a
// data-operator member. Only managers may change them.
func (s *memberService) UpdateDataOperatorSettings(ctx context.Context, callerID, memberID string, req dto.UpdateDataOperatorSettingsRequest) (*dto.MemberResponse, error) {
	if _, err := s.requireManager(ctx, callerID); err != nil {
		return nil, err
	}
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.Role != domain.RoleDataOperator {
		return nil, fmt.Errorf("%w: member %s is not a data operator", apperrors.ErrValidation, memberID)
	}

	settings := domain.DefaultDataOperatorSettings()
	if member.DataOperatorSettings != nil {
		settings = *member.DataOperatorSettings
	}
	if req.AllowBackdatedEntries != nil {
		settings.AllowBackdatedEntries = domain.BackdatePolicy(*req.AllowBackdatedEntries)
	}
	if req.HideNetBalanceAndReports != nil {
		settings.HideNetBalanceAndReports = *req.HideNetBalanceAndReports
	}
	if req.HideEntriesByOtherMembers != nil {
		settings.HideEntriesByOtherMembers = *req.HideEntriesByOtherMembers
	}
	if req.AllowEntryEditing != nil {
		settings.AllowEntryEditing = *req.AllowEntryEditing
	}
	member.DataOperatorSettings = &settings
	member.LastUpdatedAt = time.Now()
	member.LastUpdatedBy = callerID

	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		s.LogError(ctx, err, "failed to update data operator settings", slog.String("member_id", memberID))
		return nil, err
	}
	resp := dto.ToMemberResponse(*member)
	return &resp, nil
}

// DeleteMember removes a member. Only managers may delete, and never
// themselves.
func (s *memberService) DeleteMember(ctx context.Context, callerID, memberID string) error {
	if callerID == memberID {
		return fmt.Errorf("%w: cannot delete own account", apperrors.ErrValidation)
	}
	if _, err := s.requireManager(ctx, callerID); err != nil {
		return err
	}
	if err := s.memberRepo.DeleteMember(ctx, memberID); err != nil {
		s.LogError(ctx, err, "failed to delete member", slog.String("member_id", memberID))
		return err
	}
	s.LogInfo(ctx, "member deleted", slog.String("member_id", memberID), slog.String("deleted_by", callerID))
	return nil
}

// requireManager loads the caller and checks they hold a managing role.
func (s *memberService) requireManager(ctx context.Context, callerID string) (*domain.Member, error) {
	caller, err := s.memberRepo.FindMemberByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleOwner && caller.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return caller, nil
}

// ownerScope resolves the owner identity a member belongs to.
func ownerScope(m *domain.Member) string {
	if m.OwnerID != "" {
		return m.OwnerID
	}
	return m.MemberID
}
