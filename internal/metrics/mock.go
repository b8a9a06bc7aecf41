package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	operations         map[string]int
	validationFailures int
	txCommitted        int
	txRolledBack       int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{operations: make(map[string]int)}
}

func (m *Mock) IncOperation(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations[op]++
}

func (m *Mock) IncValidationFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validationFailures++
}

func (m *Mock) IncTxCommitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txCommitted++
}

func (m *Mock) IncTxRolledBack() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txRolledBack++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Operations returns the per-operation counts recorded so far.
func (m *Mock) Operations() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.operations))
	for k, v := range m.operations {
		out[k] = v
	}
	return out
}

// ValidationFailures returns the number of times IncValidationFailure was called.
func (m *Mock) ValidationFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validationFailures
}

// TxCommitted returns the number of times IncTxCommitted was called.
func (m *Mock) TxCommitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txCommitted
}

// TxRolledBack returns the number of times IncTxRolledBack was called.
func (m *Mock) TxRolledBack() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txRolledBack
}

// MockUsage is an in-memory UsageStore for testing.
type MockUsage struct {
	mu     sync.Mutex
	counts map[string]int

	// GetAllFunc overrides the default return when set.
	GetAllFunc func() (map[string]int, error)
}

// NewMockUsage creates a new in-memory usage store.
func NewMockUsage() *MockUsage {
	return &MockUsage{counts: make(map[string]int)}
}

func (m *MockUsage) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
}

func (m *MockUsage) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllFunc != nil {
		return m.GetAllFunc()
	}
	out := make(map[string]int, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out, nil
}
