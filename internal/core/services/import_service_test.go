package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fidura/compta_recon_app/internal/apperrors"
	"github.com/fidura/compta_recon_app/internal/core/domain"
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
	"github.com/fidura/compta_recon_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, clientID string, ledgerType domain.LedgerType) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, clientID, ledgerType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesPage(ctx context.Context, clientID string, ledgerType domain.LedgerType, afterDate, afterCreated time.Time, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, clientID, ledgerType, afterDate, afterCreated, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListSignatures(ctx context.Context, clientID string) (map[string]struct{}, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

// --- Test Suite Setup ---

type ImportServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  portssvc.ImportSvcFacade
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewImportService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ImportServiceTestSuite) TestNormalizeRows_FrenchAliases() {
	ctx := context.Background()
	rows := []domain.RawRow{{
		"Date":      "15/03/2024",
		"Compte":    "411000",
		"Intitulé":  "Dupont SARL",
		"Libellé":   "Facture de mars",
		"Débit":     "1 234,56 €",
		"Crédit":    "",
		"Référence": "FAC-2024-001",
	}}

	entries, rejected, err := suite.service.NormalizeRows(ctx, "client-1", domain.ClientLedger, rows)

	suite.Require().NoError(err)
	suite.Empty(rejected)
	suite.Require().Len(entries, 1)

	e := entries[0]
	suite.Equal("411000", e.AccountNumber)
	suite.Equal("Dupont SARL", e.AccountName)
	suite.Equal("Facture de mars", e.Description)
	suite.True(e.Debit.Equal(decimal.RequireFromString("1234.56")), "got %s", e.Debit)
	suite.True(e.Credit.IsZero())
	suite.Require().NotNil(e.Date)
	suite.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), *e.Date)
}

func (suite *ImportServiceTestSuite) TestNormalizeRows_AmountFormats() {
	ctx := context.Background()
	rows := []domain.RawRow{
		{"Compte": "401", "Débit": "1,234.56"},
		{"Compte": "401", "Débit": "1.234,56"},
		{"Compte": "401", "Débit": "1234.56 EUR"},
		{"Compte": "401", "Débit": "not a number"},
	}

	entries, rejected, err := suite.service.NormalizeRows(ctx, "client-1", domain.SupplierLedger, rows)

	suite.Require().NoError(err)
	suite.Empty(rejected)
	suite.Require().Len(entries, 4)
	want := decimal.RequireFromString("1234.56")
	suite.True(entries[0].Debit.Equal(want))
	suite.True(entries[1].Debit.Equal(want))
	suite.True(entries[2].Debit.Equal(want))
	suite.True(entries[3].Debit.IsZero(), "unparseable amounts default to zero")
}

func (suite *ImportServiceTestSuite) TestNormalizeRows_UnparseableDateIsNil() {
	ctx := context.Background()
	rows := []domain.RawRow{{"Compte": "411", "Date": "pas une date", "Débit": "10"}}

	entries, rejected, err := suite.service.NormalizeRows(ctx, "client-1", domain.ClientLedger, rows)

	suite.Require().NoError(err)
	suite.Empty(rejected)
	suite.Require().Len(entries, 1)
	suite.Nil(entries[0].Date)
}

func (suite *ImportServiceTestSuite) TestNormalizeRows_RejectsBadRows() {
	ctx := context.Background()
	rows := []domain.RawRow{
		{"Libellé": "no account at all", "Débit": "10"},
		{"Compte": "411", "Débit": "-50"},
		{"Compte": "411", "Débit": "10"},
	}

	entries, rejected, err := suite.service.NormalizeRows(ctx, "client-1", domain.ClientLedger, rows)

	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.Require().Len(rejected, 2)
	suite.Equal(1, rejected[0].Row)
	suite.Contains(rejected[0].Fields, "accountNumber")
	suite.Equal(2, rejected[1].Row)
	suite.Contains(rejected[1].Fields, "debit")
}

func (suite *ImportServiceTestSuite) TestNormalizeRows_MissingClientIDIsFatal() {
	ctx := context.Background()

	_, _, err := suite.service.NormalizeRows(ctx, "  ", domain.ClientLedger, []domain.RawRow{{"Compte": "411"}})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingClientID)
}

func (suite *ImportServiceTestSuite) TestImportRows_DedupsAgainstStoredSignatures() {
	ctx := context.Background()
	rows := []domain.RawRow{
		{"Compte": "411", "Libellé": "Facture A", "Débit": "100", "Date": "01/03/2024"},
		{"Compte": "411", "Libellé": "Facture A", "Débit": "100", "Date": "01/03/2024"},
		{"Compte": "411", "Libellé": "Facture B", "Débit": "200", "Date": "02/03/2024"},
	}

	suite.mockRepo.On("ListSignatures", ctx, "client-1").Return(map[string]struct{}{}, nil).Once()
	suite.mockRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	summary, err := suite.service.ImportRows(ctx, "client-1", domain.ClientLedger, rows)

	suite.Require().NoError(err)
	suite.Equal(3, summary.Received)
	suite.Equal(2, summary.Inserted)
	suite.Equal(1, summary.Duplicates)
	suite.Empty(summary.Rejected)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportRows_AllDuplicatesSkipsSave() {
	ctx := context.Background()
	rows := []domain.RawRow{{"Compte": "411", "Libellé": "Facture A", "Débit": "100", "Date": "01/03/2024"}}

	entries, _, err := suite.service.NormalizeRows(ctx, "client-1", domain.ClientLedger, rows)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	sig := services.SignatureOf(entries[0])

	suite.mockRepo.On("ListSignatures", ctx, "client-1").Return(map[string]struct{}{sig: {}}, nil).Once()

	summary, err := suite.service.ImportRows(ctx, "client-1", domain.ClientLedger, rows)

	suite.Require().NoError(err)
	suite.Equal(0, summary.Inserted)
	suite.Equal(1, summary.Duplicates)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportRows_SurfacesDuplicateConflict() {
	ctx := context.Background()
	rows := []domain.RawRow{{"Compte": "411", "Libellé": "Facture A", "Débit": "100", "Date": "01/03/2024"}}

	suite.mockRepo.On("ListSignatures", ctx, "client-1").Return(map[string]struct{}{}, nil).Once()
	suite.mockRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).
		Return(fmt.Errorf("ledger entry e-1: %w", apperrors.ErrDuplicate)).Once()

	_, err := suite.service.ImportRows(ctx, "client-1", domain.ClientLedger, rows)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
