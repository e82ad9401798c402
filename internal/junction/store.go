package junction

import (
	"sort"
	"sync"
)

// ObstacleStore holds the latest feature of each tracked obstacle by
// ID. The evaluator reads obstacles from the store and writes
// probabilities back onto them; the store itself stays unaware of the
// pipeline.
type ObstacleStore struct {
	mu        sync.RWMutex
	obstacles map[int]*Obstacle
}

// NewObstacleStore creates an empty store.
func NewObstacleStore() *ObstacleStore {
	return &ObstacleStore{obstacles: make(map[int]*Obstacle)}
}

// Put inserts or replaces an obstacle keyed by its ID.
func (s *ObstacleStore) Put(obs *Obstacle) {
	if obs == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obstacles[obs.ID] = obs
}

// Get returns the obstacle with the given ID.
func (s *ObstacleStore) Get(id int) (*Obstacle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obs, ok := s.obstacles[id]
	return obs, ok
}

// IDs returns all obstacle IDs in ascending order.
func (s *ObstacleStore) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.obstacles))
	for id := range s.obstacles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of stored obstacles.
func (s *ObstacleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.obstacles)
}
