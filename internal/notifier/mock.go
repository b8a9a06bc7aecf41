package notifier

import "sync"

// Mock is a mock implementation of Notifier for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// SendMatchRecordedFunc overrides the default nil return when set.
	SendMatchRecordedFunc func(a MatchAnnouncement, dryRun bool) error

	// Call records
	SendMatchRecordedCalls []MatchAnnouncement
}

// NewMock creates a new mock Notifier.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchRecordedCalls = nil
}

// SendMatchRecorded records the call and executes the mock function if provided.
func (m *Mock) SendMatchRecorded(a MatchAnnouncement, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchRecordedCalls = append(m.SendMatchRecordedCalls, a)
	if m.SendMatchRecordedFunc != nil {
		return m.SendMatchRecordedFunc(a, dryRun)
	}
	return nil
}

// Calls returns the announcements recorded so far.
func (m *Mock) Calls() []MatchAnnouncement {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MatchAnnouncement, len(m.SendMatchRecordedCalls))
	copy(out, m.SendMatchRecordedCalls)
	return out
}
