package event

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBus is a test double for event.Bus
type mockBus struct {
	mu         sync.Mutex
	calls      []Event
	shouldFail func(attempt int) bool
}

func (m *mockBus) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, event)
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.shouldFail != nil && m.shouldFail(callCount) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(eventType Type, handler Handler) {}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func newTestPublisher(bus Bus, deadLetterPath string) *ResilientPublisher {
	return NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     3,
		RetryDelay:     20 * time.Millisecond,
		DeadLetterPath: deadLetterPath,
	})
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{}
	rp := newTestPublisher(bus, tmpFile)

	err := rp.Publish(context.Background(), Event{Type: Type("test_event"), Payload: "data"})
	require.NoError(t, err)

	assert.Equal(t, 1, bus.CallCount(), "Event should be published once")

	content, _ := os.ReadFile(tmpFile)
	assert.Empty(t, content, "No dead-letter entries expected")
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	// fails on first attempt, succeeds on second
	bus := &mockBus{
		shouldFail: func(attempt int) bool { return attempt == 1 },
	}
	rp := newTestPublisher(bus, tmpFile)

	err := rp.Publish(context.Background(), Event{Type: Type("test_event"), Payload: "data"})
	require.NoError(t, err, "caller never sees publish failures")

	assert.Eventually(t, func() bool { return bus.CallCount() >= 2 },
		time.Second, 10*time.Millisecond, "Should attempt twice: initial + retry")

	content, _ := os.ReadFile(tmpFile)
	assert.Empty(t, content, "No dead-letter entries for successful retry")
}

func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	bus := &mockBus{
		shouldFail: func(attempt int) bool { return true },
	}
	rp := newTestPublisher(bus, tmpFile)

	err := rp.Publish(context.Background(), Event{Type: Type("test_event"), Payload: "data"})
	require.NoError(t, err)

	// initial attempt + 3 retries
	assert.Eventually(t, func() bool { return bus.CallCount() >= 4 },
		2*time.Second, 10*time.Millisecond, "Should exhaust all retries")

	assert.Eventually(t, func() bool {
		content, err := os.ReadFile(tmpFile)
		return err == nil && len(content) > 0
	}, 2*time.Second, 10*time.Millisecond, "Dead-letter file should have entry")

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var dlEntry DeadLetterEntry
	require.NoError(t, json.Unmarshal(content, &dlEntry), "Dead-letter should be valid JSON")
	assert.Equal(t, Type("test_event"), dlEntry.Event.Type)
	assert.NotEmpty(t, dlEntry.LastError)
	assert.Equal(t, 3, dlEntry.Attempts)
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{}
	rp := newTestPublisher(bus, tmpFile)

	const numGoroutines = 10
	const eventsPerGoroutine = 5

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				_ = rp.Publish(context.Background(), Event{Type: Type("concurrent_test")})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, numGoroutines*eventsPerGoroutine, bus.CallCount(),
		"All concurrent events should be published")
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(base, 3))
}
