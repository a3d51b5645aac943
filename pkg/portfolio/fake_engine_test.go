package portfolio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/limaJavier/parsat/pkg/engine"
)

// fakeEngine is a deterministic engine double: it answers with a fixed
// status and model after an optional delay, polls the interrupt flag the way
// a real engine does, and records every interaction for assertions.
type fakeEngine struct {
	status              engine.Status
	model               []int
	delay               time.Duration
	blockUntilInterrupt bool
	panics              bool

	interrupted atomic.Bool
	interrupts  atomic.Int32
	solves      atomic.Int32
	released    atomic.Bool

	mu      sync.Mutex
	clauses [][]int
	cubes   [][]int
	seed    int64
	params  engine.Parameters
	stats   engine.Statistics
}

func (f *fakeEngine) Solve(cube []int) engine.Status {
	f.solves.Add(1)
	f.mu.Lock()
	f.cubes = append(f.cubes, cube)
	f.mu.Unlock()

	if f.panics {
		panic("engine fault")
	}

	deadline := time.Now().Add(f.delay)
	for {
		if f.interrupted.Load() {
			return engine.Unknown
		}
		if !f.blockUntilInterrupt && !time.Now().Before(deadline) {
			return f.status
		}
		time.Sleep(time.Millisecond)
	}
}

func (f *fakeEngine) Model() []int {
	return f.model
}

func (f *fakeEngine) AddClause(literals []int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clause := make([]int, len(literals))
	copy(clause, literals)
	f.clauses = append(f.clauses, clause)
}

func (f *fakeEngine) LoadFormula(string) error {
	return nil
}

func (f *fakeEngine) Diversify(seed int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seed = seed
}

func (f *fakeEngine) SetParameters(params engine.Parameters) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params = params
}

func (f *fakeEngine) Interrupt() {
	f.interrupted.Store(true)
	f.interrupts.Add(1)
}

func (f *fakeEngine) ClearInterrupt() {
	f.interrupted.Store(false)
}

func (f *fakeEngine) Statistics() engine.Statistics {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

func (f *fakeEngine) Release() {
	f.released.Store(true)
}

func (f *fakeEngine) clauseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clauses)
}

// fakeFactory hands out the given fakes by ordinal.
func fakeFactory(fakes []*fakeEngine) engine.Factory {
	return func(ordinal int) (engine.Engine, error) {
		return fakes[ordinal], nil
	}
}

func workersFor(fakes ...*fakeEngine) []*worker {
	workers := make([]*worker, len(fakes))
	for i, f := range fakes {
		workers[i] = &worker{ordinal: i, seed: int64(i), eng: f}
	}
	return workers
}
