// Package cache provides a sharded, generic LRU cache.
//
//	c := cache.NewSharded[string, *text.Blob](64, cache.StringHasher)
//	blob := c.GetOrCreate(key, func() *text.Blob { return shape(key) })
//
// Each of the 16 shards has its own mutex and its own LRU list, so
// concurrent lookups of different keys rarely contend.
package cache

// entry is an intrusive LRU list node carrying the cached pair.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// lru is a single-shard LRU with a capacity bound. Not safe for
// concurrent use; the shard mutex guards it.
type lru[K comparable, V any] struct {
	items      map[K]*entry[K, V]
	head, tail *entry[K, V] // head is most recently used
	capacity   int
}

func newLRU[K comparable, V any](capacity int) *lru[K, V] {
	return &lru[K, V]{items: make(map[K]*entry[K, V]), capacity: capacity}
}

func (l *lru[K, V]) get(key K) (V, bool) {
	e, ok := l.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	l.moveToFront(e)
	return e.value, true
}

// put stores the pair and returns the number of evicted entries.
func (l *lru[K, V]) put(key K, value V) int {
	if e, ok := l.items[key]; ok {
		e.value = value
		l.moveToFront(e)
		return 0
	}
	evicted := 0
	for len(l.items) >= l.capacity && l.tail != nil {
		old := l.tail
		l.unlink(old)
		delete(l.items, old.key)
		evicted++
	}
	e := &entry[K, V]{key: key, value: value}
	l.pushFront(e)
	l.items[key] = e
	return evicted
}

func (l *lru[K, V]) remove(key K) bool {
	e, ok := l.items[key]
	if !ok {
		return false
	}
	l.unlink(e)
	delete(l.items, key)
	return true
}

func (l *lru[K, V]) clear() {
	l.items = make(map[K]*entry[K, V])
	l.head, l.tail = nil, nil
}

func (l *lru[K, V]) pushFront(e *entry[K, V]) {
	e.prev, e.next = nil, l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
}

func (l *lru[K, V]) moveToFront(e *entry[K, V]) {
	if l.head == e {
		return
	}
	l.unlink(e)
	l.pushFront(e)
}

func (l *lru[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
