package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

const defaultActivityPageSize = 50

// activityService records and lists book activity.
type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityRepositoryFacade
	memberRepo   portsrepo.MemberRepositoryFacade
}

// NewActivityService creates a new activity service.
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade, memberRepo portsrepo.MemberRepositoryFacade, opts ...ActivityServiceOption) portssvc.ActivitySvcFacade {
	svc := &activityService{activityRepo: activityRepo, memberRepo: memberRepo}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ActivityServiceOption configures the activity service.
type ActivityServiceOption func(*activityService)

// WithActivityBookAuthorizer wires the authorizer used for listing.
func WithActivityBookAuthorizer(authorizer portssvc.BookAuthorizerSvc) ActivityServiceOption {
	return func(s *activityService) {
		s.BookAuthorizer = authorizer
	}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

// RecordActivity persists one audit entry.
func (s *activityService) RecordActivity(ctx context.Context, bookID, memberID string, activityType domain.ActivityType, details map[string]string) error {
	activity := domain.ActivityLog{
		ActivityID: uuid.NewString(),
		BookID:     bookID,
		MemberID:   memberID,
		Timestamp:  time.Now(),
		Type:       activityType,
		Details:    details,
	}
	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		s.LogError(ctx, err, "failed to record activity",
			slog.String("book_id", bookID),
			slog.String("type", string(activityType)))
		return err
	}
	return nil
}

// ListActivities returns a page of book activity, newest first.
func (s *activityService) ListActivities(ctx context.Context, memberID, bookID string, limit int, nextToken *string) (*dto.ListActivitiesResponse, error) {
	if _, err := s.AuthorizeMember(ctx, bookID, memberID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityPageSize
	}
	activities, token, err := s.activityRepo.ListActivitiesByBook(ctx, bookID, limit, nextToken)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.MemberID)
	}
	names, err := s.memberRepo.FindMembersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListActivitiesResponse{
		Activities: make([]dto.ActivityResponse, 0, len(activities)),
		NextToken:  token,
	}
	for _, a := range activities {
		resp.Activities = append(resp.Activities, dto.ToActivityResponse(a, names[a.MemberID].Name))
	}
	return resp, nil
}
