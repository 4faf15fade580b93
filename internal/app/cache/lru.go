package cache

// lru is a bounded least-recently-used map over cache entries. Recency is
// kept in an explicit order slice (oldest first) with the map as the index,
// so eviction does not depend on map iteration order.
type lru struct {
	capacity int
	entries  map[string]*Entry
	order    []string
}

func newLRU(capacity int) *lru {
	if capacity < 1 {
		capacity = 1
	}

	return &lru{
		capacity: capacity,
		entries:  make(map[string]*Entry, capacity),
	}
}

// get returns the entry for key and refreshes its recency.
func (l *lru) get(key string) (*Entry, bool) {
	entry, ok := l.entries[key]
	if !ok {
		return nil, false
	}

	l.moveToBack(key)

	return entry, true
}

// put inserts or replaces the entry for key, evicting the least recently
// used entry when the bound is exceeded.
func (l *lru) put(key string, entry *Entry) {
	if _, exists := l.entries[key]; exists {
		l.entries[key] = entry
		l.moveToBack(key)
		return
	}

	if len(l.entries) >= l.capacity && len(l.order) > 0 {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.entries, oldest)
	}

	l.entries[key] = entry
	l.order = append(l.order, key)
}

func (l *lru) remove(key string) {
	if _, ok := l.entries[key]; !ok {
		return
	}

	delete(l.entries, key)
	for i := range l.order {
		if l.order[i] == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *lru) clear() {
	l.entries = make(map[string]*Entry, l.capacity)
	l.order = l.order[:0]
}

func (l *lru) len() int {
	return len(l.entries)
}

func (l *lru) moveToBack(key string) {
	for i := range l.order {
		if l.order[i] == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.order = append(l.order, key)
}
