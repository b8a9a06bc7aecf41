package metrics

// Metrics defines the process-level counters recorded around operations.
type Metrics interface {
	IncOperation(op string)
	IncValidationFailure()
	IncTxCommitted()
	IncTxRolledBack()
	SetStartupTime(seconds float64)
}

// UsageStore persists per-operation usage counters in the store itself, so
// they survive process restarts.
type UsageStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
