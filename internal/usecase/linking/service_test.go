package linking

import (
	"context"
	"testing"

	"github.com/google/uuid"
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

func TestCreateUserLink_RegistersThenRequestsRedirect(t *testing.T) {
	ctx := context.Background()
	mockLinking := new(MockLinkingService)

	userID := uuid.New()

	mockLinking.On("RegisterUser", ctx, userID.String()).Return(nil)
	mockLinking.On("LoginRedirect", ctx, userID.String(), "https://app.example"+CallbackPath).
		Return("https://connect.example/go", nil)

	service := NewLinkService(mockLinking)
	uri, err := service.CreateUserLink(ctx, userID, "https://app.example")

	require.NoError(t, err)
	assert.Equal(t, "https://connect.example/go", uri)
	mockLinking.AssertExpectations(t)
}

func TestCreateUserLink_RegistrationFailureStopsFlow(t *testing.T) {
	ctx := context.Background()
	mockLinking := new(MockLinkingService)

	userID := uuid.New()
	mockLinking.On("RegisterUser", ctx, userID.String()).Return(domain.ErrExternalService)

	service := NewLinkService(mockLinking)
	_, err := service.CreateUserLink(ctx, userID, "https://app.example")

	assert.ErrorIs(t, err, domain.ErrExternalService)
	mockLinking.AssertNotCalled(t, "LoginRedirect")
}
