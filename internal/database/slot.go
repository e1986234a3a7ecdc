package database

import "sync"

// slot holds at most one shared handle for the lifetime of the process.
type slot struct {
	mu    sync.Mutex
	value any
	set   bool
}

type slotTable struct {
	mu    sync.Mutex
	slots map[string]*slot
}

// process is the process-wide state that outlives any single accessor.
var process = &slotTable{slots: make(map[string]*slot)}

func (t *slotTable) get(key string) *slot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.slots[key]
	if !ok {
		s = &slot{}
		t.slots[key] = s
	}

	return s
}

func (t *slotTable) reset(key string) any {
	t.mu.Lock()
	s, ok := t.slots[key]
	t.mu.Unlock()

	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.value
	s.value, s.set = nil, false

	return prev
}

// ResetSlot empties the process slot for key and returns the handle it held,
// or nil. Closing the returned handle is up to the caller. Accessors that
// already adopted the handle keep it.
func ResetSlot(key string) any {
	return process.reset(key)
}
