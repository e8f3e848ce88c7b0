package history

import (
	"sync"

	"smarttag/internal/models"
)

const DefaultLimit = 10

// Log is a bounded, most-recent-first list of fraud detections.
type Log struct {
	mu      sync.RWMutex
	limit   int
	records []models.HistoryRecord
}

func New(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{
		limit:   limit,
		records: make([]models.HistoryRecord, 0, limit+1),
	}
}

// Add puts r at the front and evicts the oldest record beyond the limit.
func (l *Log) Add(r models.HistoryRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, models.HistoryRecord{})
	copy(l.records[1:], l.records)
	l.records[0] = r

	if len(l.records) > l.limit {
		l.records = l.records[:l.limit]
	}
}

// Items returns a copy, newest first.
func (l *Log) Items() []models.HistoryRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.HistoryRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

func (l *Log) Limit() int {
	return l.limit
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = l.records[:0]
}
