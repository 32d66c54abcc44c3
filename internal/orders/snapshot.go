package orders

import (
	"strings"
	"sync"
	"time"
)

// Snapshot is the last-fetched view of active orders, used for the soft
// one-active-order-per-table check before a new order is created. It is a
// client-side guard only; the server remains the source of truth and the
// check is inherently racy against concurrent clients.
type Snapshot struct {
	mu        sync.RWMutex
	fetchedAt time.Time
	byTable   map[string]int
}

// NewSnapshot indexes the in-progress orders of a fetched order list.
func NewSnapshot(list []Order) *Snapshot {
	byTable := make(map[string]int)
	for _, o := range list {
		if o.Active() {
			byTable[normalizeTable(o.TableNumber)]++
		}
	}
	return &Snapshot{fetchedAt: time.Now(), byTable: byTable}
}

// HasActiveOrder reports whether the snapshot holds an in-progress order for
// the table.
func (s *Snapshot) HasActiveOrder(tableNumber string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byTable[normalizeTable(tableNumber)] > 0
}

// FetchedAt returns when the snapshot was taken.
func (s *Snapshot) FetchedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

func normalizeTable(tableNumber string) string {
	return strings.TrimSpace(tableNumber)
}
