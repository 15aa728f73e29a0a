package handler

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/slabworks/cardstand/internal/catalog"
	"github.com/slabworks/cardstand/internal/domain"
)

// MockCheckoutService is a mock implementation of checkout.Service
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CheckoutItem(ctx context.Context, cardID string) (string, error) {
	args := m.Called(ctx, cardID)
	return args.String(0), args.Error(1)
}

func (m *MockCheckoutService) CheckoutCart(ctx context.Context, lines []domain.CartLine) (string, error) {
	args := m.Called(ctx, lines)
	return args.String(0), args.Error(1)
}

// MockCatalogService is a mock implementation of catalog.Service
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetCard(ctx context.Context, id string) (*catalog.CardView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CardView), args.Error(1)
}

func (m *MockCatalogService) ListCards(ctx context.Context, limit int) ([]catalog.CardView, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CardView), args.Error(1)
}

func (m *MockCatalogService) CreateCard(ctx context.Context, card *domain.Card) (string, error) {
	args := m.Called(ctx, card)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogService) UpdateCard(ctx context.Context, id string, card *domain.Card) error {
	args := m.Called(ctx, id, card)
	return args.Error(0)
}

func (m *MockCatalogService) DeleteCard(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) AttachImage(ctx context.Context, id string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, id, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogService) ReleaseExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockFulfillmentService is a mock implementation of fulfillment.Service
type MockFulfillmentService struct {
	mock.Mock
}

func (m *MockFulfillmentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	args := m.Called(ctx, payload, signature)
	return args.Error(0)
}

func (m *MockFulfillmentService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repository.Order
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) InsertOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrderBySessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
