package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// store handles usage-counter database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore creates a new UsageStore.
func NewStore(db *sql.DB) UsageStore {
	return &store{db: db}
}

// Increment upserts a counter key and increments its value by one.
// Counter writes are best effort and never fail the operation they count.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO op_counts (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key)
	if err != nil {
		log.Error("Failed to increment usage counter", "error", err, "key", key)
		return
	}
	log.Debug("Incremented usage counter", "key", key)
}

// GetAll returns all usage counters from the database.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM op_counts")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counts[key] = value
	}
	return counts, rows.Err()
}
