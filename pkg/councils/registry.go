package councils

import (
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Council)
)

// Register registers a council integration.
func Register(c Council) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if c == nil {
		panic("councils: Register council is nil")
	}
	if _, dup := registry[c.Key()]; dup {
		panic("councils: Register called twice for council " + c.Key())
	}
	registry[c.Key()] = c
}

// Get returns a council by key.
func Get(key string) (Council, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[key]
	return c, ok
}

// List returns a sorted list of registered council keys.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	var keys []string
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll returns all registered councils.
func GetAll() []Council {
	registryMu.RLock()
	defer registryMu.RUnlock()
	var all []Council
	for _, c := range registry {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key() < all[j].Key() })
	return all
}
