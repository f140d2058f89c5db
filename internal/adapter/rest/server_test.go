package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/asset"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/dashboard"
)

// stubAuthenticator resolves every request to a fixed identity, or
// fails when Err is set.
type stubAuthenticator struct {
	UserID uuid.UUID
	Err    error
}

func (a stubAuthenticator) UserFromRequest(_ *http.Request) (uuid.UUID, error) {
	if a.Err != nil {
		return uuid.Nil, a.Err
	}
	return a.UserID, nil
}

var errAuthDenied = errors.New("invalid token")

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportHoldings(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) CreateUserLink(ctx context.Context, userID uuid.UUID, origin string) (string, error) {
	args := m.Called(ctx, userID, origin)
	return args.String(0), args.Error(1)
}

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Create(ctx context.Context, userID uuid.UUID, input asset.CreateAssetInput) (*domain.Asset, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Asset, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Asset), args.Error(1)
}

func (m *MockAssetService) Delete(ctx context.Context, userID, assetID uuid.UUID) error {
	args := m.Called(ctx, userID, assetID)
	return args.Error(0)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetSummary(ctx context.Context, userID uuid.UUID) (*dashboard.Summary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Summary), args.Error(1)
}

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

// testServer bundles a server with its mocks so each test can set only
// the expectations it cares about.
type testServer struct {
	server     *Server
	importer   *MockImportService
	linker     *MockLinkService
	assets     *MockAssetService
	dashboard  *MockDashboardService
	categories *MockCategoryRepository
}

func newTestServer(auth Authenticator) *testServer {
	ts := &testServer{
		importer:   new(MockImportService),
		linker:     new(MockLinkService),
		assets:     new(MockAssetService),
		dashboard:  new(MockDashboardService),
		categories: new(MockCategoryRepository),
	}
	ts.server = NewServer(auth, ts.importer, ts.linker, ts.assets, ts.dashboard, ts.categories)
	return ts
}
