package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, accountID *string, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, accountID, status, limit, nextToken)
	var entries []domain.Entry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.Entry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, from, to, userID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) MarkApproved(ctx context.Context, entryID string, approverID string, now time.Time) error {
	args := m.Called(ctx, entryID, approverID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) NextEntryNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) PostEntry(ctx context.Context, entry domain.Entry, rows []domain.LedgerRow, changes map[string]decimal.Decimal) (*portsrepo.PostingResult, error) {
	args := m.Called(ctx, entry, rows, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.PostingResult), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, kind *domain.AccountKind, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) VerifyBalance(ctx context.Context, accountID string) (*dto.BalanceVerificationResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BalanceVerificationResponse), args.Error(1)
}

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrencyID, toCurrencyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, fromCurrencyID, toCurrencyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockConversionService) ResolveRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrencyID, toCurrencyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock CapabilityChecker ---
type MockCapabilityChecker struct {
	mock.Mock
}

func (m *MockCapabilityChecker) CanTransition(ctx context.Context, actorID string, entryID string, from, to domain.EntryStatus) (bool, error) {
	args := m.Called(ctx, actorID, entryID, from, to)
	return args.Bool(0), args.Error(1)
}

// --- Mock EventEmitter ---
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) Emit(ctx context.Context, eventType portssvc.EventType, payload map[string]any) {
	m.Called(ctx, eventType, payload)
}

// --- Test Suite ---
type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo  *MockEntryRepository
	mockAccountSvc *MockAccountService
	mockConversion *MockConversionService
	mockCapability *MockCapabilityChecker
	mockEmitter    *MockEventEmitter
	service        portssvc.EntrySvcFacade

	usdID     string
	sarID     string
	actorID   string
	accountID string
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockConversion = new(MockConversionService)
	suite.mockCapability = new(MockCapabilityChecker)
	suite.mockEmitter = new(MockEventEmitter)
	suite.service = services.NewEntryService(
		suite.mockEntryRepo,
		suite.mockAccountSvc,
		suite.mockConversion,
		suite.mockCapability,
		suite.mockEmitter,
	)
	suite.usdID = uuid.NewString()
	suite.sarID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.accountID = uuid.NewString()
}

func (suite *EntryServiceTestSuite) treasury(balance string) *domain.Account {
	return &domain.Account{
		AccountID:      suite.accountID,
		Kind:           domain.Treasury,
		Name:           "Main Treasury",
		HomeCurrencyID: suite.usdID,
		OpeningBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.RequireFromString(balance),
		AutoCredit:     true,
		IsActive:       true,
	}
}

func (suite *EntryServiceTestSuite) entry(status domain.EntryStatus, entryType domain.EntryType, amount string) *domain.Entry {
	return &domain.Entry{
		EntryID:          uuid.NewString(),
		EntryNumber:      "TRX-000042",
		AccountID:        suite.accountID,
		EntryDate:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Type:             entryType,
		Amount:           decimal.RequireFromString(amount),
		SourceCurrencyID: suite.usdID,
		Status:           status,
	}
}

// --- CreateDraft ---

func (suite *EntryServiceTestSuite) TestCreateDraft_Receipt() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		AccountID: suite.accountID,
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Type:      "RECEIPT",
		Amount:    decimal.NewFromInt(200),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()
	suite.mockEntryRepo.On("NextEntryNumber", ctx).Return(int64(7), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.Entry) bool {
		return e.EntryNumber == "TRX-000007" &&
			e.Status == domain.Draft &&
			e.Type == domain.Receipt &&
			e.SourceCurrencyID == suite.usdID && // defaulted to the home currency
			e.Amount.Equal(req.Amount)
	})).Return(nil).Once()

	entry, err := suite.service.CreateDraft(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("TRX-000007", entry.EntryNumber)
	suite.Equal(domain.Draft, entry.Status)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateDraft_ZeroAmount() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		AccountID: suite.accountID,
		Date:      time.Now().UTC(),
		Type:      "RECEIPT",
		Amount:    decimal.Zero,
	}

	entry, err := suite.service.CreateDraft(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "zero")
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateDraft_NegativeCharges() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		AccountID:   suite.accountID,
		Date:        time.Now().UTC(),
		Type:        "PAYMENT",
		Amount:      decimal.NewFromInt(100),
		BankCharges: decimal.NewFromInt(-5),
	}

	entry, err := suite.service.CreateDraft(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateDraft_InactiveAccount() {
	ctx := context.Background()
	account := suite.treasury("1000")
	account.IsActive = false
	req := dto.CreateEntryRequest{
		AccountID: suite.accountID,
		Date:      time.Now().UTC(),
		Type:      "RECEIPT",
		Amount:    decimal.NewFromInt(100),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(account, nil).Once()

	entry, err := suite.service.CreateDraft(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateDraft_TransferDetailsOnReceipt() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		AccountID: suite.accountID,
		Date:      time.Now().UTC(),
		Type:      "RECEIPT",
		Amount:    decimal.NewFromInt(100),
		Transfer:  &dto.TransferRequest{TransferType: "TREASURY_TO_BANK", ToAccountID: uuid.NewString()},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()

	entry, err := suite.service.CreateDraft(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateDraft_TransferMissingDetails() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		AccountID: suite.accountID,
		Date:      time.Now().UTC(),
		Type:      "TRANSFER",
		Amount:    decimal.NewFromInt(100),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()

	entry, err := suite.service.CreateDraft(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateDraft_TransferFromBank() {
	ctx := context.Background()
	source := suite.treasury("1000")
	source.Kind = domain.Bank
	req := dto.CreateEntryRequest{
		AccountID: suite.accountID,
		Date:      time.Now().UTC(),
		Type:      "TRANSFER",
		Amount:    decimal.NewFromInt(100),
		Transfer:  &dto.TransferRequest{TransferType: "TREASURY_TO_BANK", ToAccountID: uuid.NewString()},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(source, nil).Once()

	entry, err := suite.service.CreateDraft(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateDraft_TransferKindMismatch() {
	ctx := context.Background()
	destID := uuid.NewString()
	dest := &domain.Account{
		AccountID:      destID,
		Kind:           domain.Bank,
		HomeCurrencyID: suite.sarID,
		IsActive:       true,
	}
	req := dto.CreateEntryRequest{
		AccountID: suite.accountID,
		Date:      time.Now().UTC(),
		Type:      "TRANSFER",
		Amount:    decimal.NewFromInt(100),
		Transfer:  &dto.TransferRequest{TransferType: "TREASURY_TO_TREASURY", ToAccountID: destID},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, destID).Return(dest, nil).Once()

	entry, err := suite.service.CreateDraft(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateDraft_TransferResolvesDestCurrency() {
	ctx := context.Background()
	destID := uuid.NewString()
	dest := &domain.Account{
		AccountID:      destID,
		Kind:           domain.Bank,
		HomeCurrencyID: suite.sarID,
		AutoCredit:     false,
		IsActive:       true,
	}
	req := dto.CreateEntryRequest{
		AccountID: suite.accountID,
		Date:      time.Now().UTC(),
		Type:      "TRANSFER",
		Amount:    decimal.NewFromInt(500),
		Transfer:  &dto.TransferRequest{TransferType: "TREASURY_TO_BANK", ToAccountID: destID},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, destID).Return(dest, nil).Once()
	suite.mockEntryRepo.On("NextEntryNumber", ctx).Return(int64(8), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.Entry) bool {
		return e.Transfer != nil &&
			e.Transfer.ToAccountID == destID &&
			e.Transfer.ToCurrencyID == suite.sarID &&
			e.Transfer.TransferType == domain.TreasuryToBank
	})).Return(nil).Once()

	entry, err := suite.service.CreateDraft(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry.Transfer)
	suite.Equal(suite.sarID, entry.Transfer.ToCurrencyID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

// --- Submit / Approve / Reject ---

func (suite *EntryServiceTestSuite) TestSubmitEntry_Success() {
	ctx := context.Background()
	entry := suite.entry(domain.Draft, domain.Receipt, "200")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.Draft, domain.PendingApproval).Return(true, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryStatus", ctx, entry.EntryID, domain.Draft, domain.PendingApproval, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockEmitter.On("Emit", ctx, portssvc.EventEntrySubmitted, mock.Anything).Return().Once()

	updated, err := suite.service.SubmitEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PendingApproval, updated.Status)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockEmitter.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestSubmitEntry_WrongState() {
	ctx := context.Background()
	entry := suite.entry(domain.Posted, domain.Receipt, "200")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	updated, err := suite.service.SubmitEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntryStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestApproveEntry_Success() {
	ctx := context.Background()
	entry := suite.entry(domain.PendingApproval, domain.Payment, "150")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.PendingApproval, domain.Approved).Return(true, nil).Once()
	suite.mockEntryRepo.On("MarkApproved", ctx, entry.EntryID, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockEmitter.On("Emit", ctx, portssvc.EventEntryApproved, mock.Anything).Return().Once()

	updated, err := suite.service.ApproveEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Approved, updated.Status)
	suite.Require().NotNil(updated.ApprovedBy)
	suite.Equal(suite.actorID, *updated.ApprovedBy)
	suite.NotNil(updated.ApprovedAt)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestApproveEntry_Forbidden() {
	ctx := context.Background()
	entry := suite.entry(domain.PendingApproval, domain.Payment, "150")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.PendingApproval, domain.Approved).Return(false, nil).Once()

	updated, err := suite.service.ApproveEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "MarkApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestRejectEntry_FromPending() {
	ctx := context.Background()
	entry := suite.entry(domain.PendingApproval, domain.Payment, "150")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.PendingApproval, domain.Rejected).Return(true, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryStatus", ctx, entry.EntryID, domain.PendingApproval, domain.Rejected, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockEmitter.On("Emit", ctx, portssvc.EventEntryRejected, mock.Anything).Return().Once()

	updated, err := suite.service.RejectEntry(ctx, entry.EntryID, suite.actorID, "duplicate request")

	suite.Require().NoError(err)
	suite.Equal(domain.Rejected, updated.Status)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestRejectEntry_FromPosted() {
	ctx := context.Background()
	entry := suite.entry(domain.Posted, domain.Payment, "150")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	updated, err := suite.service.RejectEntry(ctx, entry.EntryID, suite.actorID, "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- PostEntry ---

func (suite *EntryServiceTestSuite) TestPostEntry_Receipt() {
	ctx := context.Background()
	entry := suite.entry(domain.Approved, domain.Receipt, "200")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.Approved, domain.Posted).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()
	suite.mockConversion.On("ResolveRate", ctx, suite.usdID, suite.usdID).Return(decimal.NewFromInt(1), nil).Once()
	suite.mockEntryRepo.On("PostEntry", ctx,
		mock.MatchedBy(func(e domain.Entry) bool {
			return e.ExchangeRate.Equal(decimal.NewFromInt(1)) &&
				e.ConvertedAmount.Equal(decimal.NewFromInt(200)) &&
				e.PostedBy != nil && *e.PostedBy == suite.actorID
		}),
		mock.MatchedBy(func(rows []domain.LedgerRow) bool {
			return len(rows) == 1 &&
				rows[0].Direction == domain.RowDebit &&
				rows[0].Amount.Equal(decimal.NewFromInt(200))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes[suite.accountID].Equal(decimal.NewFromInt(200))
		}),
	).Return(&portsrepo.PostingResult{
		BalanceBefore: decimal.NewFromInt(1000),
		BalanceAfter:  decimal.NewFromInt(1200),
	}, nil).Once()
	suite.mockEmitter.On("Emit", ctx, portssvc.EventEntryPosted, mock.Anything).Return().Once()

	posted, err := suite.service.PostEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.True(posted.BalanceBefore.Equal(decimal.NewFromInt(1000)))
	suite.True(posted.BalanceAfter.Equal(decimal.NewFromInt(1200)))
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockEmitter.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestPostEntry_PaymentWithCharges() {
	ctx := context.Background()
	entry := suite.entry(domain.Approved, domain.Payment, "150")
	entry.BankCharges = decimal.NewFromInt(10)
	entry.OtherCharges = decimal.NewFromInt(5)

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.Approved, domain.Posted).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()
	suite.mockConversion.On("ResolveRate", ctx, suite.usdID, suite.usdID).Return(decimal.NewFromInt(1), nil).Once()
	// Payments carry their charges: the account loses principal plus charges.
	suite.mockEntryRepo.On("PostEntry", ctx, mock.Anything,
		mock.MatchedBy(func(rows []domain.LedgerRow) bool {
			return len(rows) == 1 &&
				rows[0].Direction == domain.RowCredit &&
				rows[0].Amount.Equal(decimal.NewFromInt(-165))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.accountID].Equal(decimal.NewFromInt(-165))
		}),
	).Return(&portsrepo.PostingResult{
		BalanceBefore: decimal.NewFromInt(1000),
		BalanceAfter:  decimal.NewFromInt(835),
	}, nil).Once()
	suite.mockEmitter.On("Emit", ctx, portssvc.EventEntryPosted, mock.Anything).Return().Once()

	posted, err := suite.service.PostEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().NoError(err)
	suite.True(posted.BalanceAfter.Equal(decimal.NewFromInt(835)))
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestPostEntry_FreezesRate() {
	ctx := context.Background()
	entry := suite.entry(domain.Approved, domain.Receipt, "150")
	entry.SourceCurrencyID = suite.sarID
	rate := decimal.RequireFromString("0.2666666666666667")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.Approved, domain.Posted).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()
	suite.mockConversion.On("ResolveRate", ctx, suite.sarID, suite.usdID).Return(rate, nil).Once()
	suite.mockEntryRepo.On("PostEntry", ctx,
		mock.MatchedBy(func(e domain.Entry) bool {
			// The resolved rate is stamped onto the entry; the converted
			// amount is rounded once at persistence.
			return e.ExchangeRate.Equal(rate) &&
				e.ConvertedAmount.Equal(decimal.RequireFromString("40.00"))
		}),
		mock.Anything, mock.Anything,
	).Return(&portsrepo.PostingResult{
		BalanceBefore: decimal.NewFromInt(1000),
		BalanceAfter:  decimal.NewFromInt(1040),
	}, nil).Once()
	suite.mockEmitter.On("Emit", ctx, portssvc.EventEntryPosted, mock.Anything).Return().Once()

	posted, err := suite.service.PostEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().NoError(err)
	suite.True(posted.ExchangeRate.Equal(rate))
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestPostEntry_InsufficientBalance() {
	ctx := context.Background()
	entry := suite.entry(domain.Approved, domain.Payment, "150")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.Approved, domain.Posted).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("100"), nil).Once()
	suite.mockConversion.On("ResolveRate", ctx, suite.usdID, suite.usdID).Return(decimal.NewFromInt(1), nil).Once()

	posted, err := suite.service.PostEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(posted)
	var insufficientErr *apperrors.InsufficientBalanceError
	suite.Require().ErrorAs(err, &insufficientErr)
	suite.Equal(suite.accountID, insufficientErr.AccountID)
	// Rejected before the transaction; nothing was written.
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestPostEntry_TransferAutoCredit() {
	ctx := context.Background()
	destID := uuid.NewString()
	entry := suite.entry(domain.Approved, domain.Transfer, "500")
	entry.Transfer = &domain.TransferDetails{
		TransferType: domain.TreasuryToTreasury,
		ToAccountID:  destID,
		ToCurrencyID: suite.sarID,
	}
	dest := &domain.Account{
		AccountID:      destID,
		Kind:           domain.Treasury,
		HomeCurrencyID: suite.sarID,
		CurrentBalance: decimal.Zero,
		AutoCredit:     true,
		IsActive:       true,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.Approved, domain.Posted).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, destID).Return(dest, nil).Once()
	suite.mockConversion.On("ResolveRate", ctx, suite.usdID, suite.usdID).Return(decimal.NewFromInt(1), nil).Once()
	suite.mockConversion.On("Convert", ctx, mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(decimal.NewFromInt(500))
	}), suite.usdID, suite.sarID).Return(decimal.NewFromInt(1875), nil).Once()
	suite.mockEntryRepo.On("PostEntry", ctx, mock.Anything,
		mock.MatchedBy(func(rows []domain.LedgerRow) bool {
			if len(rows) != 2 {
				return false
			}
			source, destRow := rows[0], rows[1]
			return source.AccountID == suite.accountID &&
				source.Amount.Equal(decimal.NewFromInt(-500)) &&
				destRow.AccountID == destID &&
				destRow.Direction == domain.RowDebit &&
				destRow.Amount.Equal(decimal.NewFromInt(1875))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 2 &&
				changes[suite.accountID].Equal(decimal.NewFromInt(-500)) &&
				changes[destID].Equal(decimal.NewFromInt(1875))
		}),
	).Return(&portsrepo.PostingResult{
		BalanceBefore: decimal.NewFromInt(1000),
		BalanceAfter:  decimal.NewFromInt(500),
	}, nil).Once()
	suite.mockEmitter.On("Emit", ctx, portssvc.EventEntryPosted, mock.Anything).Return().Once()

	posted, err := suite.service.PostEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockConversion.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestPostEntry_TransferNoAutoCredit() {
	ctx := context.Background()
	destID := uuid.NewString()
	entry := suite.entry(domain.Approved, domain.Transfer, "500")
	entry.Transfer = &domain.TransferDetails{
		TransferType: domain.TreasuryToBank,
		ToAccountID:  destID,
		ToCurrencyID: suite.sarID,
	}
	dest := &domain.Account{
		AccountID:      destID,
		Kind:           domain.Bank,
		HomeCurrencyID: suite.sarID,
		AutoCredit:     false,
		IsActive:       true,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockCapability.On("CanTransition", ctx, suite.actorID, entry.EntryID, domain.Approved, domain.Posted).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.accountID).Return(suite.treasury("1000"), nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, destID).Return(dest, nil).Once()
	suite.mockConversion.On("ResolveRate", ctx, suite.usdID, suite.usdID).Return(decimal.NewFromInt(1), nil).Once()
	// No auto-credit: the destination is reconciled from statements, so the
	// posting carries only the source leg.
	suite.mockEntryRepo.On("PostEntry", ctx, mock.Anything,
		mock.MatchedBy(func(rows []domain.LedgerRow) bool {
			return len(rows) == 1 && rows[0].AccountID == suite.accountID
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1
		}),
	).Return(&portsrepo.PostingResult{
		BalanceBefore: decimal.NewFromInt(1000),
		BalanceAfter:  decimal.NewFromInt(500),
	}, nil).Once()
	suite.mockEmitter.On("Emit", ctx, portssvc.EventEntryPosted, mock.Anything).Return().Once()

	posted, err := suite.service.PostEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.mockConversion.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestPostEntry_NotApproved() {
	ctx := context.Background()
	entry := suite.entry(domain.Draft, domain.Receipt, "200")

	suite.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	posted, err := suite.service.PostEntry(ctx, entry.EntryID, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(posted)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- ListEntries ---

func (suite *EntryServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()
	token := "opaque"

	suite.mockEntryRepo.On("ListEntries", ctx, (*string)(nil), (*domain.EntryStatus)(nil), 20, (*string)(nil)).
		Return([]domain.Entry{*suite.entry(domain.Posted, domain.Receipt, "10")}, &token, nil).Once()

	resp, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestEntryService(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
