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

// --- Mock SnapshotTier ---
type MockSnapshotTier struct {
	mock.Mock
	name string
}

var _ portsrepo.SnapshotTier = (*MockSnapshotTier)(nil)

func newMockTier(name string) *MockSnapshotTier {
	return &MockSnapshotTier{name: name}
}

func (m *MockSnapshotTier) Name() string { return m.name }

func (m *MockSnapshotTier) Get(ctx context.Context, key string) (*domain.BalanceSnapshot, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Bool(1), args.Error(2)
}

func (m *MockSnapshotTier) Set(ctx context.Context, key string, snapshot domain.BalanceSnapshot) error {
	args := m.Called(ctx, key, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotTier) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockSnapshotTier) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock BalanceRepository (database tier) ---
type MockBalanceRepository struct {
	MockSnapshotTier
}

var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func newMockBalanceRepo() *MockBalanceRepository {
	return &MockBalanceRepository{MockSnapshotTier: MockSnapshotTier{name: "database"}}
}

func (m *MockBalanceRepository) UpsertLastPeriod(ctx context.Context, clientID, period string) error {
	args := m.Called(ctx, clientID, period)
	return args.Error(0)
}

func (m *MockBalanceRepository) GetLastPeriod(ctx context.Context, clientID string) (string, error) {
	args := m.Called(ctx, clientID)
	return args.String(0), args.Error(1)
}

// --- Test Suite Setup ---

type BalanceCacheServiceTestSuite struct {
	suite.Suite
	memory  *MockSnapshotTier
	session *MockSnapshotTier
	db      *MockBalanceRepository
	service portssvc.BalanceSvcFacade
}

func (suite *BalanceCacheServiceTestSuite) SetupTest() {
	suite.memory = newMockTier("memory")
	suite.session = newMockTier("session")
	suite.db = newMockBalanceRepo()
	suite.service = services.NewBalanceCacheService(suite.memory, suite.session, suite.db)
}

func tierUnavailable() error {
	return fmt.Errorf("tier down: %w", apperrors.ErrTierUnavailable)
}

func testSnapshot() *domain.BalanceSnapshot {
	return &domain.BalanceSnapshot{
		ClientID:    "client-1",
		Period:      "2024-03",
		TotalDebit:  decimal.NewFromInt(1000),
		TotalCredit: decimal.NewFromInt(400),
		Balance:     decimal.NewFromInt(600),
		EntryCount:  3,
		ComputedAt:  time.Now().UTC(),
	}
}

// --- Test Cases ---

func (suite *BalanceCacheServiceTestSuite) TestGetBalance_FallsBackThroughFailingTiers() {
	ctx := context.Background()
	key := domain.SnapshotCacheKey("client-1", "2024-03")
	want := testSnapshot()

	suite.memory.On("Get", ctx, key).Return(nil, false, nil).Once()
	suite.session.On("Get", ctx, key).Return(nil, false, tierUnavailable()).Once()
	suite.db.On("Get", ctx, key).Return(want, true, nil).Once()
	// Back-fill of the faster tiers; the session failing again stays a warning.
	suite.memory.On("Set", ctx, key, *want).Return(nil).Once()
	suite.session.On("Set", ctx, key, *want).Return(tierUnavailable()).Once()

	got, err := suite.service.GetBalance(ctx, "client-1", "2024-03")

	suite.Require().NoError(err, "an unavailable tier must be invisible to the caller")
	suite.Equal(want, got)
	suite.memory.AssertExpectations(suite.T())
	suite.session.AssertExpectations(suite.T())
	suite.db.AssertExpectations(suite.T())
}

func (suite *BalanceCacheServiceTestSuite) TestGetBalance_MemoryHitSkipsSlowerTiers() {
	ctx := context.Background()
	key := domain.SnapshotCacheKey("client-1", "2024-03")
	want := testSnapshot()

	suite.memory.On("Get", ctx, key).Return(want, true, nil).Once()

	got, err := suite.service.GetBalance(ctx, "client-1", "2024-03")

	suite.Require().NoError(err)
	suite.Equal(want, got)
	suite.session.AssertNotCalled(suite.T(), "Get", mock.Anything, mock.Anything)
	suite.db.AssertNotCalled(suite.T(), "Get", mock.Anything, mock.Anything)
}

func (suite *BalanceCacheServiceTestSuite) TestGetBalance_MissEverywhere() {
	ctx := context.Background()
	key := domain.SnapshotCacheKey("client-1", "2024-03")

	suite.memory.On("Get", ctx, key).Return(nil, false, nil).Once()
	suite.session.On("Get", ctx, key).Return(nil, false, nil).Once()
	suite.db.On("Get", ctx, key).Return(nil, false, nil).Once()

	_, err := suite.service.GetBalance(ctx, "client-1", "2024-03")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BalanceCacheServiceTestSuite) TestGetBalance_MissingClientID() {
	_, err := suite.service.GetBalance(context.Background(), " ", "2024-03")

	suite.ErrorIs(err, apperrors.ErrMissingClientID)
}

func (suite *BalanceCacheServiceTestSuite) TestSaveBalance_RecomputesBalanceAndWritesThrough() {
	ctx := context.Background()
	key := domain.SnapshotCacheKey("client-1", "2024-03")
	input := domain.BalanceSnapshot{
		ClientID:    "client-1",
		Period:      "2024-03",
		TotalDebit:  decimal.NewFromInt(1000),
		TotalCredit: decimal.NewFromInt(400),
		// Balance left zero on purpose: the manager recomputes it.
	}

	match := mock.MatchedBy(func(s domain.BalanceSnapshot) bool {
		return s.Balance.Equal(decimal.NewFromInt(600)) && !s.ComputedAt.IsZero()
	})
	suite.memory.On("Set", ctx, key, match).Return(nil).Once()
	suite.session.On("Set", ctx, key, match).Return(nil).Once()
	suite.db.On("Set", ctx, key, match).Return(nil).Once()
	suite.db.On("UpsertLastPeriod", ctx, "client-1", "2024-03").Return(nil).Once()

	err := suite.service.SaveBalance(ctx, input)

	suite.Require().NoError(err)
	suite.memory.AssertExpectations(suite.T())
	suite.session.AssertExpectations(suite.T())
	suite.db.AssertExpectations(suite.T())
}

func (suite *BalanceCacheServiceTestSuite) TestSaveBalance_SlowTierFailureIsSoft() {
	ctx := context.Background()
	key := domain.SnapshotCacheKey("client-1", "2024-03")

	suite.memory.On("Set", ctx, key, mock.Anything).Return(nil).Once()
	suite.session.On("Set", ctx, key, mock.Anything).Return(tierUnavailable()).Once()
	suite.db.On("Set", ctx, key, mock.Anything).Return(tierUnavailable()).Once()
	suite.db.On("UpsertLastPeriod", ctx, "client-1", "2024-03").Return(tierUnavailable()).Once()

	err := suite.service.SaveBalance(ctx, *testSnapshot())

	suite.NoError(err, "slower tiers failing degrades durability, not the call")
}

func (suite *BalanceCacheServiceTestSuite) TestSaveBalance_MemoryFailureIsFatal() {
	ctx := context.Background()
	key := domain.SnapshotCacheKey("client-1", "2024-03")
	expectedErr := fmt.Errorf("out of memory")

	suite.memory.On("Set", ctx, key, mock.Anything).Return(expectedErr).Once()

	err := suite.service.SaveBalance(ctx, *testSnapshot())

	suite.ErrorIs(err, expectedErr)
	suite.session.AssertNotCalled(suite.T(), "Set", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceCacheServiceTestSuite) TestSaveBalance_NoLastPeriodForFullLedger() {
	ctx := context.Background()
	snapshot := *testSnapshot()
	snapshot.Period = ""
	key := domain.SnapshotCacheKey("client-1", "")

	suite.memory.On("Set", ctx, key, mock.Anything).Return(nil).Once()
	suite.session.On("Set", ctx, key, mock.Anything).Return(nil).Once()
	suite.db.On("Set", ctx, key, mock.Anything).Return(nil).Once()

	err := suite.service.SaveBalance(ctx, snapshot)

	suite.Require().NoError(err)
	suite.db.AssertNotCalled(suite.T(), "UpsertLastPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceCacheServiceTestSuite) TestClearBalance_BestEffort() {
	ctx := context.Background()
	key := domain.SnapshotCacheKey("client-1", "2024-03")

	suite.memory.On("Delete", ctx, key).Return(nil).Once()
	suite.session.On("Delete", ctx, key).Return(tierUnavailable()).Once()
	suite.db.On("Delete", ctx, key).Return(nil).Once()

	err := suite.service.ClearBalance(ctx, "client-1", "2024-03")

	suite.NoError(err)
	suite.db.AssertExpectations(suite.T())
}

func (suite *BalanceCacheServiceTestSuite) TestMigrate_CopiesValidKeysAndCountsOutcomes() {
	ctx := context.Background()
	good := testSnapshot()
	failing := testSnapshot()
	failing.ClientID = "client-2"
	failing.Period = "2024-04"

	suite.session.On("Keys", ctx).Return([]string{"client-1::2024-03", "junk-key", "client-2::2024-04"}, nil).Once()
	suite.session.On("Get", ctx, "client-1::2024-03").Return(good, true, nil).Once()
	suite.session.On("Get", ctx, "client-2::2024-04").Return(failing, true, nil).Once()
	suite.db.On("Set", ctx, "client-1::2024-03", *good).Return(nil).Once()
	suite.db.On("Set", ctx, "client-2::2024-04", *failing).Return(tierUnavailable()).Once()
	suite.db.On("UpsertLastPeriod", ctx, "client-1", "2024-03").Return(nil).Once()

	report, err := suite.service.Migrate(ctx)

	suite.Require().NoError(err, "per-key failures never fail the migration")
	suite.Equal(3, report.Scanned)
	suite.Equal(1, report.Migrated)
	suite.Equal(1, report.Skipped)
	suite.Equal(1, report.Failed)
	suite.session.AssertExpectations(suite.T())
	suite.db.AssertExpectations(suite.T())
}

func (suite *BalanceCacheServiceTestSuite) TestMigrate_NoSessionTierIsNoOp() {
	service := services.NewBalanceCacheService(suite.memory, nil, suite.db)

	report, err := service.Migrate(context.Background())

	suite.Require().NoError(err)
	suite.Equal(0, report.Scanned)
}

func TestBalanceCacheServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceCacheServiceTestSuite))
}
