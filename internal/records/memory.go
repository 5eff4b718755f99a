package records

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local runs without a
// records service.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]Record
	nextID int64

	// Ops records every write call as "<op> <table>".
	Ops []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: map[string][]Record{}}
}

// Seed inserts rows without logging an op. It returns the new ids.
func (m *MemoryStore) Seed(table string, rows ...Fields) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(table, rows)
}

// Rows returns a copy of the rows of table.
func (m *MemoryStore) Rows(table string) []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.tables[table]...)
}

func (m *MemoryStore) insert(table string, rows []Fields) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		m.nextID++
		fields := make(map[string]any, len(r))
		for k, v := range r {
			fields[k] = v
		}
		m.tables[table] = append(m.tables[table], Record{ID: m.nextID, Fields: fields})
		ids = append(ids, m.nextID)
	}
	return ids
}

func (m *MemoryStore) GetRecords(_ context.Context, table string, filter Filter) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Record
	for _, r := range m.tables[table] {
		if matches(r, filter) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) AddRecords(_ context.Context, table string, rows []Fields) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ops = append(m.Ops, "add "+table)
	return m.insert(table, rows), nil
}

func (m *MemoryStore) PatchRecords(_ context.Context, table string, patches []Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ops = append(m.Ops, "patch "+table)

	rows := m.tables[table]
	for _, p := range patches {
		found := false
		for i := range rows {
			if rows[i].ID == p.ID {
				for k, v := range p.Fields {
					rows[i].Fields[k] = v
				}
				found = true
				break
			}
		}
		if !found {
			return &HTTPError{Status: 404, Body: fmt.Sprintf("no row %d in %s", p.ID, table)}
		}
	}
	return nil
}

func (m *MemoryStore) DeleteRecords(_ context.Context, table string, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ops = append(m.Ops, "delete "+table)

	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := m.tables[table][:0]
	for _, r := range m.tables[table] {
		if _, ok := drop[r.ID]; !ok {
			kept = append(kept, r)
		}
	}
	m.tables[table] = kept
	return nil
}

func matches(r Record, filter Filter) bool {
	for col, allowed := range filter {
		v := canonical(r.Fields[col])
		ok := false
		for _, a := range allowed {
			if canonical(a) == v {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// canonical folds the numeric representations JSON values can take.
func canonical(v any) any {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	}
	return v
}
