package eventlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slabworks/cardstand/internal/domain"
	"github.com/slabworks/cardstand/internal/event"
	"github.com/slabworks/cardstand/internal/repository"
)

// MockRepository is a mock implementation of repository.EventLog
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LogEvent(ctx context.Context, eventType string, payload map[string]interface{}) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

func (m *MockRepository) GetEventsByType(ctx context.Context, eventType string, limit int) ([]repository.LoggedEvent, error) {
	args := m.Called(ctx, eventType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LoggedEvent), args.Error(1)
}

func (m *MockRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Subscribe_LogsPublishedEvents(t *testing.T) {
	repo := &MockRepository{}
	repo.On("LogEvent", mock.Anything, string(event.CheckoutStarted), mock.MatchedBy(func(payload map[string]interface{}) bool {
		return payload["session_id"] == "cs_123"
	})).Return(nil)

	bus := event.NewMemoryBus()
	svc := NewService(repo)
	assert.NoError(t, svc.Subscribe(bus))

	err := bus.Publish(context.Background(), event.NewCheckoutStartedEvent("cs_123", []string{"card-1"}))
	assert.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestService_HandleEvent_StructPayload(t *testing.T) {
	repo := &MockRepository{}
	repo.On("LogEvent", mock.Anything, string(event.OrderCompleted), mock.MatchedBy(func(payload map[string]interface{}) bool {
		return payload["order_id"] == "order-1" && payload["confirmation_code"] == "a1b2c3d4"
	})).Return(nil)

	bus := event.NewMemoryBus()
	svc := NewService(repo)
	assert.NoError(t, svc.Subscribe(bus))

	evt := event.NewOrderCompletedEvent("order-1", "a1b2c3d4", []string{"card-1"}, 42500)
	assert.NoError(t, bus.Publish(context.Background(), evt))

	repo.AssertExpectations(t)
}

func TestService_HandleEvent_SkipsUnconvertiblePayload(t *testing.T) {
	repo := &MockRepository{}

	hooks := NewTestHooks(NewService(repo))

	err := hooks.HandleEvent(context.Background(), event.Event{
		Version: "1.0",
		Type:    event.CheckoutStarted,
		Payload: make(chan int), // not marshalable
	})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_HandleEvent_PropagatesRepositoryError(t *testing.T) {
	repo := &MockRepository{}
	repo.On("LogEvent", mock.Anything, string(event.ReservationReleased), mock.Anything).Return(domain.ErrDatabaseError)

	hooks := NewTestHooks(NewService(repo))

	err := hooks.HandleEvent(context.Background(), event.NewReservationReleasedEvent([]string{"card-1"}, event.ReleaseReasonExpired))

	assert.ErrorIs(t, err, domain.ErrDatabaseError)
	repo.AssertExpectations(t)
}

func TestService_CleanupOldEvents(t *testing.T) {
	repo := &MockRepository{}
	repo.On("CleanupOldEvents", mock.Anything, 90).Return(int64(12), nil)

	svc := NewService(repo)

	count, err := svc.CleanupOldEvents(context.Background(), 90)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
	repo.AssertExpectations(t)
}
