// Package memory provides an in-process store backend. Data is lost on
// restart; safe for concurrent use. Intended for tests and local development.
package memory

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"portfolio-api/internal/store"

	"github.com/google/uuid"
)

type Memory struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

type collection struct {
	order []string
	docs  map[string]map[string]any
}

func New() *Memory {
	return &Memory{collections: make(map[string]*collection)}
}

// deepCopy round-trips a document through JSON so callers can never alias
// stored state. It also normalizes values (time.Time becomes a string) the
// same way an external backend would.
func deepCopy(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	b, _ := json.Marshal(src)
	var dst map[string]any
	_ = json.Unmarshal(b, &dst)
	return dst
}

func (m *Memory) coll(name string) *collection {
	c, ok := m.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]map[string]any)}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (m *Memory) InsertOne(_ context.Context, coll string, fields map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.coll(coll)
	id := uuid.NewString()
	c.docs[id] = deepCopy(fields)
	c.order = append(c.order, id)
	return id, nil
}

func (m *Memory) FindByID(_ context.Context, coll, id string) (store.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[coll]
	if !ok {
		return store.Document{}, store.ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return store.Document{}, store.ErrNotFound
	}
	return store.Document{ID: id, Fields: deepCopy(doc)}, nil
}

func (m *Memory) FindFirst(_ context.Context, coll string) (store.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[coll]
	if !ok || len(c.order) == 0 {
		return store.Document{}, store.ErrNotFound
	}
	id := c.order[0]
	return store.Document{ID: id, Fields: deepCopy(c.docs[id])}, nil
}

func (m *Memory) FindAll(_ context.Context, coll string) ([]store.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []store.Document{}
	c, ok := m.collections[coll]
	if !ok {
		return out, nil
	}
	for _, id := range c.order {
		out = append(out, store.Document{ID: id, Fields: deepCopy(c.docs[id])})
	}
	return out, nil
}

func (m *Memory) UpdateByID(_ context.Context, coll, id string, patch store.Patch) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[coll]
	if !ok {
		return 0, nil
	}
	doc, ok := c.docs[id]
	if !ok {
		return 0, nil
	}

	next := deepCopy(doc)
	if next == nil {
		next = map[string]any{}
	}
	for k, v := range deepCopy(patch.Set) {
		next[k] = v
	}
	for _, k := range patch.Unset {
		delete(next, k)
	}

	if reflect.DeepEqual(doc, next) {
		return 0, nil
	}
	c.docs[id] = next
	return 1, nil
}

func (m *Memory) DeleteByID(_ context.Context, coll, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[coll]
	if !ok {
		return false, nil
	}
	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
