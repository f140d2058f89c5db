package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

// MockLinkingService is a mock implementation of LinkingService for testing
type MockLinkingService struct {
	mock.Mock
}

func (m *MockLinkingService) RegisterUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockLinkingService) LoginRedirect(ctx context.Context, userID, redirectURI string) (string, error) {
	args := m.Called(ctx, userID, redirectURI)
	return args.String(0), args.Error(1)
}

func (m *MockLinkingService) ListAccounts(ctx context.Context, userID string) ([]domain.BrokerageAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BrokerageAccount), args.Error(1)
}

func (m *MockLinkingService) ListHoldings(ctx context.Context, accountID string) ([]domain.Holding, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}

// MockAssetRepository is a mock implementation of AssetRepository for testing
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Asset, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository for testing
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func investmentsCategory() *domain.Category {
	return &domain.Category{
		ID:   uuid.New(),
		Name: "Investments",
		Slug: domain.CategoryInvestments,
	}
}

func holding(symbol string, value int64, gain int64) domain.Holding {
	return domain.Holding{
		Symbol:     symbol,
		Name:       symbol,
		Quantity:   decimal.NewFromInt(1),
		TotalValue: decimal.NewFromInt(value),
		GainLoss:   decimal.NewFromInt(gain),
	}
}

func TestImportHoldings_InsertsOneAssetPerHolding(t *testing.T) {
	ctx := context.Background()
	mockLinking := new(MockLinkingService)
	mockAssets := new(MockAssetRepository)
	mockCategories := new(MockCategoryRepository)

	userID := uuid.New()
	category := investmentsCategory()

	mockLinking.On("ListAccounts", ctx, userID.String()).Return([]domain.BrokerageAccount{
		{ID: "acct-1"},
		{ID: "acct-2"},
	}, nil)
	mockLinking.On("ListHoldings", ctx, "acct-1").Return([]domain.Holding{
		holding("AAPL", 1000, 50),
		holding("MSFT", 2000, -10),
	}, nil)
	mockLinking.On("ListHoldings", ctx, "acct-2").Return([]domain.Holding{
		holding("VTI", 500, 0),
	}, nil)
	mockCategories.On("GetBySlug", ctx, domain.CategoryInvestments).Return(category, nil)
	mockAssets.On("Create", ctx, mock.AnythingOfType("*domain.Asset")).Return(nil)

	service := NewImportService(mockLinking, mockAssets, mockCategories)
	imported, err := service.ImportHoldings(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 3, imported)
	mockAssets.AssertNumberOfCalls(t, "Create", 3)

	// Every inserted record is a non-liability owned by the user and
	// filed under investments.
	for _, call := range mockAssets.Calls {
		asset := call.Arguments.Get(1).(*domain.Asset)
		assert.Equal(t, userID, asset.UserID)
		assert.False(t, asset.IsLiability)
		require.NotNil(t, asset.CategoryID)
		assert.Equal(t, category.ID, *asset.CategoryID)
	}
}

func TestImportHoldings_AccountListFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	mockLinking := new(MockLinkingService)
	mockAssets := new(MockAssetRepository)
	mockCategories := new(MockCategoryRepository)

	mockLinking.On("ListAccounts", ctx, mock.Anything).Return(nil, domain.ErrExternalService)

	service := NewImportService(mockLinking, mockAssets, mockCategories)
	_, err := service.ImportHoldings(ctx, uuid.New())

	assert.ErrorIs(t, err, domain.ErrExternalService)
	mockAssets.AssertNotCalled(t, "Create")
	mockCategories.AssertNotCalled(t, "GetBySlug")
}

func TestImportHoldings_PerAccountFetchFailureIsSkipped(t *testing.T) {
	ctx := context.Background()
	mockLinking := new(MockLinkingService)
	mockAssets := new(MockAssetRepository)
	mockCategories := new(MockCategoryRepository)

	userID := uuid.New()

	mockLinking.On("ListAccounts", ctx, userID.String()).Return([]domain.BrokerageAccount{
		{ID: "acct-ok"},
		{ID: "acct-broken"},
	}, nil)
	mockLinking.On("ListHoldings", ctx, "acct-ok").Return([]domain.Holding{
		holding("AAPL", 1000, 50),
	}, nil)
	mockLinking.On("ListHoldings", ctx, "acct-broken").Return(nil, errors.New("502 Bad Gateway"))
	mockCategories.On("GetBySlug", ctx, domain.CategoryInvestments).Return(investmentsCategory(), nil)
	mockAssets.On("Create", ctx, mock.AnythingOfType("*domain.Asset")).Return(nil)

	service := NewImportService(mockLinking, mockAssets, mockCategories)
	imported, err := service.ImportHoldings(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
}

func TestImportHoldings_CategoryNotFoundAborts(t *testing.T) {
	ctx := context.Background()
	mockLinking := new(MockLinkingService)
	mockAssets := new(MockAssetRepository)
	mockCategories := new(MockCategoryRepository)

	userID := uuid.New()

	mockLinking.On("ListAccounts", ctx, userID.String()).Return([]domain.BrokerageAccount{{ID: "acct-1"}}, nil)
	mockLinking.On("ListHoldings", ctx, "acct-1").Return([]domain.Holding{holding("AAPL", 1000, 0)}, nil)
	mockCategories.On("GetBySlug", ctx, domain.CategoryInvestments).Return(nil, domain.ErrCategoryNotFound)

	service := NewImportService(mockLinking, mockAssets, mockCategories)
	_, err := service.ImportHoldings(ctx, userID)

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	mockAssets.AssertNotCalled(t, "Create")
}

func TestImportHoldings_InsertFailureDoesNotAbortBatch(t *testing.T) {
	ctx := context.Background()
	mockLinking := new(MockLinkingService)
	mockAssets := new(MockAssetRepository)
	mockCategories := new(MockCategoryRepository)

	userID := uuid.New()

	mockLinking.On("ListAccounts", ctx, userID.String()).Return([]domain.BrokerageAccount{{ID: "acct-1"}}, nil)
	mockLinking.On("ListHoldings", ctx, "acct-1").Return([]domain.Holding{
		holding("AAPL", 1000, 50),
		holding("BROKEN", 0, 0),
		holding("VTI", 500, 0),
	}, nil)
	mockCategories.On("GetBySlug", ctx, domain.CategoryInvestments).Return(investmentsCategory(), nil)

	mockAssets.On("Create", ctx, mock.MatchedBy(func(a *domain.Asset) bool {
		return a.Metadata["symbol"] == "BROKEN"
	})).Return(errors.New("constraint violation"))
	mockAssets.On("Create", ctx, mock.AnythingOfType("*domain.Asset")).Return(nil)

	service := NewImportService(mockLinking, mockAssets, mockCategories)
	imported, err := service.ImportHoldings(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	mockAssets.AssertNumberOfCalls(t, "Create", 3)
}

// Re-invoking the import with identical holdings inserts a second copy of
// every record. There is no dedup key; this documents the behavior rather
// than assuming prevention.
func TestImportHoldings_ReimportDuplicatesRecords(t *testing.T) {
	ctx := context.Background()
	mockLinking := new(MockLinkingService)
	mockAssets := new(MockAssetRepository)
	mockCategories := new(MockCategoryRepository)

	userID := uuid.New()

	mockLinking.On("ListAccounts", ctx, userID.String()).Return([]domain.BrokerageAccount{{ID: "acct-1"}}, nil)
	mockLinking.On("ListHoldings", ctx, "acct-1").Return([]domain.Holding{holding("AAPL", 1000, 50)}, nil)
	mockCategories.On("GetBySlug", ctx, domain.CategoryInvestments).Return(investmentsCategory(), nil)
	mockAssets.On("Create", ctx, mock.AnythingOfType("*domain.Asset")).Return(nil)

	service := NewImportService(mockLinking, mockAssets, mockCategories)

	first, err := service.ImportHoldings(ctx, userID)
	require.NoError(t, err)
	second, err := service.ImportHoldings(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	mockAssets.AssertNumberOfCalls(t, "Create", 2)
}
