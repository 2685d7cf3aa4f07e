// Package livestatus owns the mutable live facility status table. The
// decision core never reaches into it; callers take an immutable
// snapshot per call.
package livestatus

import (
	"sync"
	"time"

	"github.com/rescueline/dispatch-cli/internal/model"
)

// Store is a concurrency-safe facility status table with copy-on-read
// snapshots.
type Store struct {
	mu     sync.RWMutex
	status map[string]model.FacilityStatus
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{status: make(map[string]model.FacilityStatus)}
}

// Set replaces the status for one facility and stamps the update time.
func (s *Store) Set(id string, status model.FacilityStatus) {
	status.LastUpdated = time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[id] = copyStatus(status)
}

// Get returns a copy of one facility's status.
func (s *Store) Get(id string) (model.FacilityStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.status[id]
	if !ok {
		return model.FacilityStatus{}, false
	}
	return copyStatus(status), true
}

// Snapshot returns a deep copy of the whole table, safe to read while
// the live feed keeps mutating the store.
func (s *Store) Snapshot() map[string]model.FacilityStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]model.FacilityStatus, len(s.status))
	for id, status := range s.status {
		snapshot[id] = copyStatus(status)
	}
	return snapshot
}

// copyStatus deep-copies the equipment map so snapshots never alias
// store state.
func copyStatus(status model.FacilityStatus) model.FacilityStatus {
	if status.Equipment != nil {
		equipment := make(map[string]model.EquipmentState, len(status.Equipment))
		for k, v := range status.Equipment {
			equipment[k] = v
		}
		status.Equipment = equipment
	}
	return status
}
