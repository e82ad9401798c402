package junction

import (
	"sync"
	"testing"
)

func TestObstacleStore(t *testing.T) {
	store := NewObstacleStore()
	if store.Len() != 0 {
		t.Fatalf("new store Len() = %d", store.Len())
	}

	store.Put(&Obstacle{ID: 3})
	store.Put(&Obstacle{ID: 1})
	store.Put(&Obstacle{ID: 2})
	store.Put(nil) // ignored

	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3", store.Len())
	}

	ids := store.IDs()
	want := []int{1, 2, 3}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("IDs() = %v, want %v", ids, want)
			break
		}
	}

	if _, ok := store.Get(2); !ok {
		t.Error("Get(2) missing")
	}
	if _, ok := store.Get(99); ok {
		t.Error("Get(99) unexpectedly present")
	}

	// Replacement by ID.
	replacement := &Obstacle{ID: 2, Speed: 9}
	store.Put(replacement)
	got, _ := store.Get(2)
	if got != replacement {
		t.Error("Put did not replace existing obstacle")
	}
}

func TestObstacleStore_ConcurrentAccess(t *testing.T) {
	store := NewObstacleStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			store.Put(&Obstacle{ID: id})
		}(i)
		go func(id int) {
			defer wg.Done()
			store.Get(id)
			store.IDs()
		}(i)
	}
	wg.Wait()
	if store.Len() != 50 {
		t.Errorf("Len() = %d, want 50", store.Len())
	}
}
