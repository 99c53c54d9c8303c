package dstore

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Memory keeps tables in process memory with the same conditional-put semantics
// as the Mongo store. Used by tests and local development.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, t Table, key string, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.tables[t.Name][key]
	if !ok {
		return ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (m *Memory) Put(ctx context.Context, t Table, key string, item any) error {
	raw, err := bson.Marshal(item)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tables[t.Name] == nil {
		m.tables[t.Name] = make(map[string][]byte)
	}
	m.tables[t.Name][key] = raw
	return nil
}

func (m *Memory) PutIf(ctx context.Context, t Table, key string, item any, expected int64) error {
	raw, err := bson.Marshal(item)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.tables[t.Name][key]
	if !ok {
		return ErrNotFound
	}
	var cur struct {
		Version int64 `bson:"version"`
	}
	if err := bson.Unmarshal(stored, &cur); err != nil {
		return err
	}
	if cur.Version != expected {
		return ErrConflict
	}
	m.tables[t.Name][key] = raw
	return nil
}

func (m *Memory) Delete(ctx context.Context, t Table, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[t.Name][key]; !ok {
		return ErrNotFound
	}
	delete(m.tables[t.Name], key)
	return nil
}

// Scan decodes every stored item into the slice pointed to by out.
func (m *Memory) Scan(ctx context.Context, t Table, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	slice := reflect.ValueOf(out).Elem()
	for _, raw := range m.tables[t.Name] {
		elem := reflect.New(slice.Type().Elem())
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	return nil
}
