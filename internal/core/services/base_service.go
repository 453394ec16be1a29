package services

import (
	"context"
	"log/slog"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	BookAuthorizer portssvc.BookAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeMember checks that a member holds at least the required role on a
// book and returns the member's actual role.
func (s *BaseService) AuthorizeMember(ctx context.Context, bookID, memberID string, required domain.Role) (domain.Role, error) {
	if s.BookAuthorizer != nil {
		return s.BookAuthorizer.AuthorizeBookAction(ctx, bookID, memberID, required)
	}
	// No authorizer wired means the service is running standalone, for
	// example inside a unit test. Access is granted with the required role.
	s.LogDebug(ctx, "No book authorizer provided, access granted by default",
		slog.String("member_id", memberID),
		slog.String("book_id", bookID),
		slog.String("required_role", string(required)))
	return required, nil
}
