// Package cache provides an in-memory LRU cache with optional TTL.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry es un valor cacheado con su expiración y su nodo LRU
type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	element   *list.Element
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// LRU es un cache en memoria con desalojo LRU, seguro para uso concurrente.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*entry[V]
	lruList  *list.List
	now      func() time.Time
}

// New crea un cache con la capacidad indicada (default: 100).
func New[V any](capacity int) *LRU[V] {
	if capacity <= 0 {
		capacity = 100
	}
	return &LRU[V]{
		capacity: capacity,
		items:    make(map[string]*entry[V]),
		lruList:  list.New(),
		now:      time.Now,
	}
}

// Get retorna el valor si existe y no expiró, marcándolo como usado.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if e.expired(c.now()) {
		c.deleteEntry(e)
		return zero, false
	}

	c.lruList.MoveToFront(e.element)
	return e.value, true
}

// Set guarda un valor. ttl 0 significa sin expiración.
// Al llegar a la capacidad se desaloja el menos usado.
func (c *LRU[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if existing, ok := c.items[key]; ok {
		existing.value = value
		existing.expiresAt = expiresAt
		c.lruList.MoveToFront(existing.element)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictLRU()
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	e.element = c.lruList.PushFront(e)
	c.items[key] = e
}

// Delete elimina una clave.
func (c *LRU[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.deleteEntry(e)
	}
}

// Len retorna el número de entradas, incluidas las expiradas aún no limpiadas.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity retorna la capacidad máxima.
func (c *LRU[V]) Capacity() int {
	return c.capacity
}

// evictLRU elimina la entrada menos usada. Requiere c.mu tomado.
func (c *LRU[V]) evictLRU() {
	if back := c.lruList.Back(); back != nil {
		c.deleteEntry(back.Value.(*entry[V]))
	}
}

// deleteEntry requiere c.mu tomado.
func (c *LRU[V]) deleteEntry(e *entry[V]) {
	delete(c.items, e.key)
	c.lruList.Remove(e.element)
}
