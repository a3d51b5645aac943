package portfolio

import "sync"

// clauseStore owns the accumulated formula: the growing clause list and the
// variable-count high-watermark. It distributes every accepted clause to the
// live workers, all-or-nothing: validation happens before any distribution,
// and engine submission itself cannot fail, so a clause is either part of
// the formula everywhere or nowhere.
type clauseStore struct {
	mu        sync.Mutex
	clauses   []Clause
	variables int
}

// add records the clause and pushes it to every live worker.
func (store *clauseStore) add(literals []int, workers []*worker) error {
	clause, err := newClause(literals)
	if err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if v := clause.maxVariable(); v > store.variables {
		store.variables = v
	}
	store.clauses = append(store.clauses, clause)
	for _, w := range workers {
		w.eng.AddClause(clause.Literals)
	}
	return nil
}

// variableCount returns the current high-watermark.
func (store *clauseStore) variableCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.variables
}

// setVariableCount raises the watermark; it never lowers it.
func (store *clauseStore) setVariableCount(n int) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if n > store.variables {
		store.variables = n
	}
}

// formula returns a snapshot of the accumulated clauses.
func (store *clauseStore) formula() []Clause {
	store.mu.Lock()
	defer store.mu.Unlock()
	snapshot := make([]Clause, len(store.clauses))
	copy(snapshot, store.clauses)
	return snapshot
}

// reset discards the clause list when a rebuilt pool invalidates the
// previous distribution. The variable watermark survives: it only ever
// increases over the session's lifetime.
func (store *clauseStore) reset() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.clauses = nil
}
