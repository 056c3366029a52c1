package core

import (
	"encoding/binary"
	"encoding/json"
	"hash/fnv"
	"sort"
	"sync"
)

// Assigns is a thread-safe store for the values a component exposes to
// its templates and tests. Every Set is fingerprinted so the router can
// tell whether a render is worth diffing.
type Assigns struct {
	data    map[string]any
	tracker *ChangeTracker
	mu      sync.RWMutex
}

// NewAssigns creates a new assigns store.
func NewAssigns() *Assigns {
	return &Assigns{
		data:    make(map[string]any),
		tracker: NewChangeTracker(),
	}
}

// Get retrieves a value from the store.
func (a *Assigns) Get(key string) any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data[key]
}

// GetString retrieves a string value.
func (a *Assigns) GetString(key string) string {
	if v, ok := a.Get(key).(string); ok {
		return v
	}
	return ""
}

// GetBool retrieves a bool value.
func (a *Assigns) GetBool(key string) bool {
	if v, ok := a.Get(key).(bool); ok {
		return v
	}
	return false
}

// Set stores a value and tracks the change.
func (a *Assigns) Set(key string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data[key] = value
	a.tracker.Track(key, value)
}

// SetAll sets multiple values at once.
func (a *Assigns) SetAll(values map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for key, value := range values {
		a.data[key] = value
		a.tracker.Track(key, value)
	}
}

// Data returns a shallow copy of all data.
func (a *Assigns) Data() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	result := make(map[string]any, len(a.data))
	for k, v := range a.data {
		result[k] = v
	}
	return result
}

// Tracker returns the change tracker.
func (a *Assigns) Tracker() *ChangeTracker {
	return a.tracker
}

// ChangeTracker records which assigns changed value since the last flush.
type ChangeTracker struct {
	hashes  map[string]uint64
	changed map[string]bool
	version uint64
	mu      sync.Mutex
}

// NewChangeTracker creates a new change tracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		hashes:  make(map[string]uint64),
		changed: make(map[string]bool),
	}
}

// Track registers a write to a field. Writing an equal value is not a change.
func (ct *ChangeTracker) Track(field string, value any) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	h := hashValue(value)
	if prev, ok := ct.hashes[field]; !ok || prev != h {
		ct.changed[field] = true
	}
	ct.hashes[field] = h
}

// Flush returns the sorted changed fields and starts a new version.
func (ct *ChangeTracker) Flush() []string {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	fields := make([]string, 0, len(ct.changed))
	for f := range ct.changed {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	ct.changed = make(map[string]bool)
	ct.version++
	return fields
}

// HasChanges returns true if there are pending changes.
func (ct *ChangeTracker) HasChanges() bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return len(ct.changed) > 0
}

// Version returns the number of flushes so far.
func (ct *ChangeTracker) Version() uint64 {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.version
}

// hashValue calculates a fast FNV-1a fingerprint of any value.
func hashValue(v any) uint64 {
	h := fnv.New64a()

	switch val := v.(type) {
	case nil:
		h.Write([]byte{0})
	case string:
		h.Write([]byte(val))
	case int:
		binary.Write(h, binary.LittleEndian, int64(val))
	case int64:
		binary.Write(h, binary.LittleEndian, val)
	case float64:
		binary.Write(h, binary.LittleEndian, val)
	case bool:
		if val {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{2})
		}
	case []string:
		for _, s := range val {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.Write([]byte(k))
			binary.Write(h, binary.LittleEndian, hashValue(val[k]))
		}
	default:
		data, _ := json.Marshal(val)
		h.Write(data)
	}

	return h.Sum64()
}
