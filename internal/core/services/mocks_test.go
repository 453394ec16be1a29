package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByIDs(ctx context.Context, bookID string, transactionIDs []string) ([]domain.Transaction, error) {
	args := m.Called(ctx, bookID, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByBook(ctx context.Context, bookID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactions(ctx context.Context, bookID string, transactionIDs []string) (int, error) {
	args := m.Called(ctx, bookID, transactionIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) DeleteAllTransactions(ctx context.Context, bookID string) (int, error) {
	args := m.Called(ctx, bookID)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) CopyTransactions(ctx context.Context, sourceBookID, targetBookID string, transactionIDs []string, copies []domain.Transaction) error {
	args := m.Called(ctx, sourceBookID, targetBookID, transactionIDs, copies)
	return args.Error(0)
}

func (m *MockTransactionRepository) MoveTransactions(ctx context.Context, sourceBookID, targetBookID string, transactionIDs []string) error {
	args := m.Called(ctx, sourceBookID, targetBookID, transactionIDs)
	return args.Error(0)
}

// --- Mock BookRepository ---

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) SaveBook(ctx context.Context, book domain.Book, members []domain.BookMember) error {
	args := m.Called(ctx, book, members)
	return args.Error(0)
}

func (m *MockBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBooksByMember(ctx context.Context, memberID string) ([]domain.Book, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBooksByBusiness(ctx context.Context, businessID string) ([]domain.Book, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteBook(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockBookRepository) FindBookMembers(ctx context.Context, bookID string) ([]domain.BookMember, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookMember), args.Error(1)
}

func (m *MockBookRepository) FindBookMember(ctx context.Context, bookID, memberID string) (*domain.BookMember, error) {
	args := m.Called(ctx, bookID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookMember), args.Error(1)
}

func (m *MockBookRepository) UpsertBookMember(ctx context.Context, member domain.BookMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockBookRepository) RemoveBookMember(ctx context.Context, bookID, memberID string) error {
	args := m.Called(ctx, bookID, memberID)
	return args.Error(0)
}

func (m *MockBookRepository) TouchLastViewed(ctx context.Context, bookID, memberID string, viewedAt time.Time) error {
	args := m.Called(ctx, bookID, memberID, viewedAt)
	return args.Error(0)
}

func (m *MockBookRepository) AdjustBalance(ctx context.Context, bookID string, delta decimal.Decimal) error {
	args := m.Called(ctx, bookID, delta)
	return args.Error(0)
}

func (m *MockBookRepository) SetBalance(ctx context.Context, bookID string, balance decimal.Decimal) error {
	args := m.Called(ctx, bookID, balance)
	return args.Error(0)
}

// --- Mock MemberRepository ---

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByName(ctx context.Context, name string) (*domain.Member, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMembersByIDs(ctx context.Context, memberIDs []string) (map[string]domain.Member, error) {
	args := m.Called(ctx, memberIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, ownerID string) ([]domain.Member, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) DeleteMember(ctx context.Context, memberID string) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdatePinState(ctx context.Context, memberID string, failedAttempts int, lockedUntil *time.Time) error {
	args := m.Called(ctx, memberID, failedAttempts, lockedUntil)
	return args.Error(0)
}

func (m *MockMemberRepository) SaveRefreshToken(ctx context.Context, memberID string, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, memberID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockMemberRepository) FindRefreshToken(ctx context.Context, tokenHash string) (string, time.Time, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockMemberRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

// --- Mock ActivityService ---

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) RecordActivity(ctx context.Context, bookID, memberID string, activityType domain.ActivityType, details map[string]string) error {
	args := m.Called(ctx, bookID, memberID, activityType, details)
	return args.Error(0)
}

func (m *MockActivityService) ListActivities(ctx context.Context, memberID, bookID string, limit int, nextToken *string) (*dto.ListActivitiesResponse, error) {
	args := m.Called(ctx, memberID, bookID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListActivitiesResponse), args.Error(1)
}

// --- Mock BookAuthorizer ---

type MockBookAuthorizer struct {
	mock.Mock
}

func (m *MockBookAuthorizer) AuthorizeBookAction(ctx context.Context, bookID, memberID string, required domain.Role) (domain.Role, error) {
	args := m.Called(ctx, bookID, memberID, required)
	return args.Get(0).(domain.Role), args.Error(1)
}
