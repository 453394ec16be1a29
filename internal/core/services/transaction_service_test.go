package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rupeebook/rupeebook_backend/internal/apperrors"
	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/core/services"
	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo    *MockTransactionRepository
	mockBookRepo   *MockBookRepository
	mockMemberRepo *MockMemberRepository
	mockActivity   *MockActivityService
	mockAuthorizer *MockBookAuthorizer
	service        portssvc.TransactionSvcFacade

	bookID   string
	memberID string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockBookRepo = new(MockBookRepository)
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockActivity = new(MockActivityService)
	suite.mockAuthorizer = new(MockBookAuthorizer)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockBookRepo,
		suite.mockMemberRepo,
		suite.mockActivity,
		time.UTC,
		services.WithTransactionBookAuthorizer(suite.mockAuthorizer),
	)
	suite.bookID = uuid.NewString()
	suite.memberID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) authorizeAs(role domain.Role) {
	suite.mockAuthorizer.On("AuthorizeBookAction", mock.Anything, suite.bookID, suite.memberID, mock.Anything).
		Return(role, nil)
}

func (suite *TransactionServiceTestSuite) expectResponseLookups(balance decimal.Decimal) {
	suite.mockBookRepo.On("FindBookByID", mock.Anything, suite.bookID).
		Return(&domain.Book{BookID: suite.bookID, Name: "Shop", Balance: balance}, nil)
	suite.mockMemberRepo.On("FindMemberByID", mock.Anything, suite.memberID).
		Return(&domain.Member{MemberID: suite.memberID, Name: "Asha", Role: domain.RoleOwner}, nil)
}

func decimalEq(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(expected) })
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleOwner)
	req := dto.CreateTransactionRequest{
		Date:     time.Now(),
		Type:     "in",
		Amount:   decimal.NewFromInt(500),
		Category: "Sales",
	}

	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.BookID == suite.bookID &&
			t.MemberID == suite.memberID &&
			t.Type == domain.CashIn &&
			t.Amount.Equal(req.Amount) &&
			t.TransactionID != "" &&
			t.CreatedBy == suite.memberID
	})).Return(nil).Once()
	suite.mockBookRepo.On("AdjustBalance", mock.Anything, suite.bookID, decimalEq(decimal.NewFromInt(500))).Return(nil).Once()
	suite.mockActivity.On("RecordActivity", mock.Anything, suite.bookID, suite.memberID, domain.ActivityCreate, mock.Anything).Return(nil).Once()
	suite.expectResponseLookups(decimal.NewFromInt(500))

	resp, err := suite.service.CreateTransaction(ctx, suite.memberID, suite.bookID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("in", resp.Type)
	suite.Equal("Asha", resp.MemberName)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(500)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ViewerForbidden() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleViewer)

	resp, err := suite.service.CreateTransaction(ctx, suite.memberID, suite.bookID, dto.CreateTransactionRequest{
		Date:   time.Now(),
		Type:   "in",
		Amount: decimal.NewFromInt(10),
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleAdmin)

	resp, err := suite.service.CreateTransaction(ctx, suite.memberID, suite.bookID, dto.CreateTransactionRequest{
		Date:   time.Now(),
		Type:   "out",
		Amount: decimal.Zero,
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BackdateNeverRejected() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleDataOperator)
	settings := domain.DefaultDataOperatorSettings()
	settings.AllowBackdatedEntries = domain.BackdateNever
	suite.mockMemberRepo.On("FindMemberByID", mock.Anything, suite.memberID).
		Return(&domain.Member{MemberID: suite.memberID, Role: domain.RoleDataOperator, DataOperatorSettings: &settings}, nil).Once()

	resp, err := suite.service.CreateTransaction(ctx, suite.memberID, suite.bookID, dto.CreateTransactionRequest{
		Date:   time.Now().AddDate(0, 0, -2),
		Type:   "in",
		Amount: decimal.NewFromInt(10),
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BackdateOneDayBeforeAllowsYesterday() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleDataOperator)
	settings := domain.DefaultDataOperatorSettings()
	settings.AllowBackdatedEntries = domain.BackdateOneDayBefore
	suite.mockMemberRepo.On("FindMemberByID", mock.Anything, suite.memberID).
		Return(&domain.Member{MemberID: suite.memberID, Name: "Asha", Role: domain.RoleDataOperator, DataOperatorSettings: &settings}, nil)

	suite.mockTxnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockBookRepo.On("AdjustBalance", mock.Anything, suite.bookID, decimalEq(decimal.NewFromInt(10))).Return(nil).Once()
	suite.mockActivity.On("RecordActivity", mock.Anything, suite.bookID, suite.memberID, domain.ActivityCreate, mock.Anything).Return(nil).Once()
	suite.mockBookRepo.On("FindBookByID", mock.Anything, suite.bookID).
		Return(&domain.Book{BookID: suite.bookID, Name: "Shop", Balance: decimal.NewFromInt(10)}, nil)

	resp, err := suite.service.CreateTransaction(ctx, suite.memberID, suite.bookID, dto.CreateTransactionRequest{
		Date:   time.Now().AddDate(0, 0, -1),
		Type:   "in",
		Amount: decimal.NewFromInt(10),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AdjustsBalanceByDelta() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleAdmin)
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		BookID:        suite.bookID,
		Date:          time.Now(),
		Type:          domain.CashIn,
		Amount:        decimal.NewFromInt(100),
		MemberID:      suite.memberID,
	}
	newAmount := decimal.NewFromInt(150)

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID == transactionID && t.Amount.Equal(newAmount) && t.LastUpdatedBy == suite.memberID
	})).Return(nil).Once()
	suite.mockBookRepo.On("AdjustBalance", mock.Anything, suite.bookID, decimalEq(decimal.NewFromInt(50))).Return(nil).Once()
	suite.mockActivity.On("RecordActivity", mock.Anything, suite.bookID, suite.memberID, domain.ActivityUpdate, mock.Anything).Return(nil).Once()
	suite.expectResponseLookups(decimal.NewFromInt(150))

	resp, err := suite.service.UpdateTransaction(ctx, suite.memberID, suite.bookID, transactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.Amount.Equal(newAmount))
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_WrongBookNotFound() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleAdmin)
	transactionID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: transactionID, BookID: uuid.NewString(), Type: domain.CashIn, Amount: decimal.NewFromInt(5)}

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(existing, nil).Once()

	resp, err := suite.service.UpdateTransaction(ctx, suite.memberID, suite.bookID, transactionID, dto.UpdateTransactionRequest{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_OperatorEditingDisabled() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleDataOperator)
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		BookID:        suite.bookID,
		Type:          domain.CashIn,
		Amount:        decimal.NewFromInt(5),
		MemberID:      suite.memberID,
	}
	settings := domain.DefaultDataOperatorSettings()
	settings.AllowEntryEditing = false

	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(existing, nil).Once()
	suite.mockMemberRepo.On("FindMemberByID", mock.Anything, suite.memberID).
		Return(&domain.Member{MemberID: suite.memberID, Role: domain.RoleDataOperator, DataOperatorSettings: &settings}, nil).Once()

	resp, err := suite.service.UpdateTransaction(ctx, suite.memberID, suite.bookID, transactionID, dto.UpdateTransactionRequest{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransactions_ReversesNetEffect() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleOwner)
	ids := []string{uuid.NewString(), uuid.NewString()}
	txns := []domain.Transaction{
		{TransactionID: ids[0], BookID: suite.bookID, Type: domain.CashIn, Amount: decimal.NewFromInt(100)},
		{TransactionID: ids[1], BookID: suite.bookID, Type: domain.CashOut, Amount: decimal.NewFromInt(30)},
	}

	suite.mockTxnRepo.On("FindTransactionsByIDs", mock.Anything, suite.bookID, ids).Return(txns, nil).Once()
	suite.mockTxnRepo.On("DeleteTransactions", mock.Anything, suite.bookID, ids).Return(2, nil).Once()
	// Net effect was +70, so the reversal is -70.
	suite.mockBookRepo.On("AdjustBalance", mock.Anything, suite.bookID, decimalEq(decimal.NewFromInt(-70))).Return(nil).Once()
	suite.mockActivity.On("RecordActivity", mock.Anything, suite.bookID, suite.memberID, domain.ActivityDelete, mock.Anything).Return(nil).Once()

	resp, err := suite.service.DeleteTransactions(ctx, suite.memberID, suite.bookID, dto.DeleteTransactionsRequest{TransactionIDs: ids})

	suite.Require().NoError(err)
	suite.Equal(2, resp.Deleted)
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransactions_MissingEntry() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleOwner)
	ids := []string{uuid.NewString(), uuid.NewString()}
	txns := []domain.Transaction{
		{TransactionID: ids[0], BookID: suite.bookID, Type: domain.CashIn, Amount: decimal.NewFromInt(100)},
	}

	suite.mockTxnRepo.On("FindTransactionsByIDs", mock.Anything, suite.bookID, ids).Return(txns, nil).Once()

	resp, err := suite.service.DeleteTransactions(ctx, suite.memberID, suite.bookID, dto.DeleteTransactionsRequest{TransactionIDs: ids})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteAllTransactions_ResetsBalance() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleOwner)

	suite.mockTxnRepo.On("DeleteAllTransactions", mock.Anything, suite.bookID).Return(42, nil).Once()
	suite.mockBookRepo.On("SetBalance", mock.Anything, suite.bookID, decimalEq(decimal.Zero)).Return(nil).Once()
	suite.mockActivity.On("RecordActivity", mock.Anything, suite.bookID, suite.memberID, domain.ActivityDeleteAll, mock.Anything).Return(nil).Once()

	resp, err := suite.service.DeleteAllTransactions(ctx, suite.memberID, suite.bookID)

	suite.Require().NoError(err)
	suite.Equal(42, resp.Deleted)
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestMoveTransactions_AdjustsBothBooks() {
	ctx := context.Background()
	targetBookID := uuid.NewString()
	ids := []string{uuid.NewString()}
	txns := []domain.Transaction{
		{TransactionID: ids[0], BookID: suite.bookID, Type: domain.CashIn, Amount: decimal.NewFromInt(100)},
	}

	suite.mockAuthorizer.On("AuthorizeBookAction", mock.Anything, suite.bookID, suite.memberID, domain.RoleAdmin).
		Return(domain.RoleAdmin, nil).Once()
	suite.mockAuthorizer.On("AuthorizeBookAction", mock.Anything, targetBookID, suite.memberID, domain.RoleAdmin).
		Return(domain.RoleAdmin, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByIDs", mock.Anything, suite.bookID, ids).Return(txns, nil).Once()
	suite.mockTxnRepo.On("MoveTransactions", mock.Anything, suite.bookID, targetBookID, ids).Return(nil).Once()
	suite.mockBookRepo.On("AdjustBalance", mock.Anything, suite.bookID, decimalEq(decimal.NewFromInt(-100))).Return(nil).Once()
	suite.mockBookRepo.On("AdjustBalance", mock.Anything, targetBookID, decimalEq(decimal.NewFromInt(100))).Return(nil).Once()
	suite.mockActivity.On("RecordActivity", mock.Anything, suite.bookID, suite.memberID, domain.ActivityMove, mock.Anything).Return(nil).Once()

	err := suite.service.MoveTransactions(ctx, suite.memberID, suite.bookID, dto.TransferTransactionsRequest{
		TransactionIDs: ids,
		TargetBookID:   targetBookID,
	})

	suite.Require().NoError(err)
	suite.mockBookRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestMoveTransactions_SameBookRejected() {
	ctx := context.Background()

	err := suite.service.MoveTransactions(ctx, suite.memberID, suite.bookID, dto.TransferTransactionsRequest{
		TransactionIDs: []string{uuid.NewString()},
		TargetBookID:   suite.bookID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCopyTransactions_AdjustsTargetOnly() {
	ctx := context.Background()
	targetBookID := uuid.NewString()
	ids := []string{uuid.NewString()}
	txns := []domain.Transaction{
		{TransactionID: ids[0], BookID: suite.bookID, Type: domain.CashOut, Amount: decimal.NewFromInt(25)},
	}

	suite.mockAuthorizer.On("AuthorizeBookAction", mock.Anything, suite.bookID, suite.memberID, domain.RoleAdmin).
		Return(domain.RoleAdmin, nil).Once()
	suite.mockAuthorizer.On("AuthorizeBookAction", mock.Anything, targetBookID, suite.memberID, domain.RoleAdmin).
		Return(domain.RoleAdmin, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByIDs", mock.Anything, suite.bookID, ids).Return(txns, nil).Once()
	suite.mockTxnRepo.On("CopyTransactions", mock.Anything, suite.bookID, targetBookID, ids, mock.MatchedBy(func(copies []domain.Transaction) bool {
		return len(copies) == 1 &&
			copies[0].TransactionID != ids[0] &&
			copies[0].BookID == targetBookID &&
			copies[0].Amount.Equal(decimal.NewFromInt(25))
	})).Return(nil).Once()
	suite.mockBookRepo.On("AdjustBalance", mock.Anything, targetBookID, decimalEq(decimal.NewFromInt(-25))).Return(nil).Once()
	suite.mockActivity.On("RecordActivity", mock.Anything, suite.bookID, suite.memberID, domain.ActivityCopy, mock.Anything).Return(nil).Once()

	err := suite.service.CopyTransactions(ctx, suite.memberID, suite.bookID, dto.TransferTransactionsRequest{
		TransactionIDs: ids,
		TargetBookID:   targetBookID,
	})

	suite.Require().NoError(err)
	suite.mockBookRepo.AssertNotCalled(suite.T(), "AdjustBalance", mock.Anything, suite.bookID, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListLedger_RunningBalancesNewestFirst() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleOwner)
	otherMemberID := uuid.NewString()
	day1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		{TransactionID: "t1", BookID: suite.bookID, Date: day1, Type: domain.CashIn, Amount: decimal.NewFromInt(100), MemberID: suite.memberID},
		{TransactionID: "t2", BookID: suite.bookID, Date: day2, Type: domain.CashOut, Amount: decimal.NewFromInt(40), MemberID: otherMemberID},
	}

	suite.mockBookRepo.On("FindBookByID", mock.Anything, suite.bookID).
		Return(&domain.Book{BookID: suite.bookID, Name: "Shop", BalanceBefore: decimal.Zero}, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByBook", mock.Anything, suite.bookID).Return(txns, nil).Once()
	suite.mockMemberRepo.On("FindMembersByIDs", mock.Anything, []string{suite.memberID, otherMemberID}).
		Return(map[string]domain.Member{
			suite.memberID: {MemberID: suite.memberID, Name: "Asha"},
			otherMemberID:  {MemberID: otherMemberID, Name: "Ravi"},
		}, nil).Once()

	resp, err := suite.service.ListLedger(ctx, suite.memberID, suite.bookID, dto.LedgerFilterQuery{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 2)
	suite.Equal("t2", resp.Entries[0].TransactionID)
	suite.True(resp.Entries[0].Balance.Equal(decimal.NewFromInt(60)))
	suite.Equal("t1", resp.Entries[1].TransactionID)
	suite.True(resp.Entries[1].Balance.Equal(decimal.NewFromInt(100)))
	suite.True(resp.NetBalance.Equal(decimal.NewFromInt(60)))
	suite.Equal("Ravi", resp.Entries[0].MemberName)
}

func (suite *TransactionServiceTestSuite) TestListLedger_OperatorHiddenTotals() {
	ctx := context.Background()
	suite.authorizeAs(domain.RoleDataOperator)
	settings := domain.DefaultDataOperatorSettings()
	settings.HideNetBalanceAndReports = true
	txns := []domain.Transaction{
		{TransactionID: "t1", BookID: suite.bookID, Date: time.Now(), Type: domain.CashIn, Amount: decimal.NewFromInt(100), MemberID: suite.memberID},
	}

	suite.mockBookRepo.On("FindBookByID", mock.Anything, suite.bookID).
		Return(&domain.Book{BookID: suite.bookID, Name: "Shop"}, nil).Once()
	suite.mockMemberRepo.On("FindMemberByID", mock.Anything, suite.memberID).
		Return(&domain.Member{MemberID: suite.memberID, Name: "Asha", Role: domain.RoleDataOperator, DataOperatorSettings: &settings}, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByBook", mock.Anything, suite.bookID).Return(txns, nil).Once()
	suite.mockMemberRepo.On("FindMembersByIDs", mock.Anything, []string{suite.memberID}).
		Return(map[string]domain.Member{suite.memberID: {MemberID: suite.memberID, Name: "Asha"}}, nil).Once()

	resp, err := suite.service.ListLedger(ctx, suite.memberID, suite.bookID, dto.LedgerFilterQuery{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.True(resp.NetBalance.IsZero())
	suite.True(resp.TotalCashIn.IsZero())
	suite.True(resp.Entries[0].Balance.IsZero())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
