package portfolio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/limaJavier/parsat/pkg/dimacs"
	"github.com/limaJavier/parsat/pkg/engine"
)

// Solver is the public session facade over a portfolio of independent SAT
// engines racing on the same formula: configuration, clause accumulation,
// solve invocation, result/model/statistics retrieval and external
// interruption.
//
// Configure, AddClause, LoadFormula, SetVariableCount, Solve,
// SolveWithAssumptions and Release serialize against each other. Interrupt
// and ClearInterrupt never block and are safe from any goroutine, including
// while a solve is in progress.
type Solver struct {
	mu         sync.Mutex // serializes lifecycle operations
	config     Config
	configured bool
	pool       atomic.Pointer[workerPool]
	store      clauseStore

	// externalInterrupt distinguishes a caller's Interrupt from the
	// cancellation the coordinator issues internally to stop losers.
	externalInterrupt atomic.Bool

	outcomeMu sync.RWMutex
	last      outcome
}

// New creates an empty session. It must be configured before use.
func New() *Solver {
	s := &Solver{}
	s.pool.Store(&workerPool{})
	return s
}

// Configure rebuilds the worker pool for the given configuration. The
// previous workers are released and the previously distributed clauses are
// invalidated: the formula is not replayed into the new pool, callers must
// re-add clauses afterward. The variable-count watermark survives.
func (s *Solver) Configure(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.pool.Swap(buildPool(cfg))
	old.release()
	s.store.reset()
	s.config = cfg
	s.configured = true
}

// AddClause submits one clause to the formula and distributes it to every
// live worker. It fails with ErrInvalidClause on an empty or zero-containing
// literal sequence, in which case nothing is distributed.
func (s *Solver) AddClause(literals []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.configured {
		return ErrNotConfigured
	}
	return s.store.add(literals, s.pool.Load().workers)
}

// LoadFormula reads a DIMACS CNF file and replicates it through the regular
// clause-distribution path, so every worker of the portfolio receives the
// identical formula.
func (s *Solver) LoadFormula(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.configured {
		return ErrNotConfigured
	}

	formula, err := dimacs.ParseFile(path)
	if err != nil {
		return fmt.Errorf("cannot load formula: %w", err)
	}

	workers := s.pool.Load().workers
	for _, clause := range formula.Clauses {
		if err := s.store.add(clause, workers); err != nil {
			return err
		}
	}
	s.store.setVariableCount(formula.Variables)
	return nil
}

// SetVariableCount raises the tracked variable count; it never lowers it.
func (s *Solver) SetVariableCount(n int) {
	s.store.setVariableCount(n)
}

// VariableCount returns the variable-count high-watermark.
func (s *Solver) VariableCount() int {
	return s.store.variableCount()
}

// Solve races the whole pool on the accumulated formula and returns the
// winning status. The call blocks until every worker has quiesced; the
// previous outcome is overwritten.
func (s *Solver) Solve() (engine.Status, error) {
	return s.solve(nil)
}

// SolveWithAssumptions is Solve scoped by assumption literals holding for
// this call only.
func (s *Solver) SolveWithAssumptions(literals []int) (engine.Status, error) {
	if lo.SomeBy(literals, func(literal int) bool { return literal == 0 }) {
		return engine.Unknown, fmt.Errorf("%w: assumption cannot be zero", ErrInvalidClause)
	}
	return s.solve(literals)
}

func (s *Solver) solve(cube []int) (engine.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.configured {
		return engine.Unknown, ErrNotConfigured
	}

	out := race(s.pool.Load().workers, cube, s.config.Verbosity)

	// The winner's loser-cancellation must not degrade the next solve; an
	// external interrupt stays until the caller clears it.
	if !s.externalInterrupt.Load() {
		s.pool.Load().clearInterruptAll()
	}

	s.outcomeMu.Lock()
	s.last = out
	s.outcomeMu.Unlock()
	return out.status, nil
}

// GetModelValue returns the truth value the winning model assigns to the
// variable. Querying beyond the tracked variable range fails with
// ErrVariableOutOfRange and querying without a Sat outcome fails with
// ErrNoModel, so a false result always means "assigned false or unassigned
// in range", never an out-of-range artifact.
func (s *Solver) GetModelValue(variable int) (bool, error) {
	if variable < 1 || variable > s.store.variableCount() {
		return false, fmt.Errorf("%w: %d", ErrVariableOutOfRange, variable)
	}

	s.outcomeMu.RLock()
	defer s.outcomeMu.RUnlock()
	if s.last.status != engine.Sat || len(s.last.model) == 0 {
		return false, ErrNoModel
	}

	for _, literal := range s.last.model {
		if literal == variable || literal == -variable {
			return literal > 0, nil
		}
	}
	return false, nil
}

// GetModel returns a copy of the winning model, or nil when the last solve
// did not end in Sat.
func (s *Solver) GetModel() []int {
	s.outcomeMu.RLock()
	defer s.outcomeMu.RUnlock()
	if len(s.last.model) == 0 {
		return nil
	}
	return copyModel(s.last.model)
}

// GetModelSize returns the length of the winning model.
func (s *Solver) GetModelSize() int {
	s.outcomeMu.RLock()
	defer s.outcomeMu.RUnlock()
	return len(s.last.model)
}

// CopyModel copies the winning model into the caller's buffer and returns
// how many literals were written.
func (s *Solver) CopyModel(buffer []int) int {
	s.outcomeMu.RLock()
	defer s.outcomeMu.RUnlock()
	return copy(buffer, s.last.model)
}

// GetStatistics sums propagations, decisions, conflicts and restarts across
// all workers and reports the maximum peak-memory figure among them.
func (s *Solver) GetStatistics() engine.Statistics {
	return lo.Reduce(s.pool.Load().workers, func(total engine.Statistics, w *worker, _ int) engine.Statistics {
		stats := w.eng.Statistics()
		total.Propagations += stats.Propagations
		total.Decisions += stats.Decisions
		total.Conflicts += stats.Conflicts
		total.Restarts += stats.Restarts
		if stats.PeakMemoryKB > total.PeakMemoryKB {
			total.PeakMemoryKB = stats.PeakMemoryKB
		}
		return total
	}, engine.Statistics{})
}

// Interrupt signals cooperative interruption to every worker immediately. It
// is a request, not a forced halt: each engine stops at its next internal
// check point. Safe to call from any goroutine while a solve is in progress.
func (s *Solver) Interrupt() {
	s.externalInterrupt.Store(true)
	s.pool.Load().interruptAll()
}

// ClearInterrupt clears the advisory flag on every worker.
func (s *Solver) ClearInterrupt() {
	s.externalInterrupt.Store(false)
	s.pool.Load().clearInterruptAll()
}

// Release frees all workers and clauses. The session must be reconfigured
// before further use.
func (s *Solver) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pool.Swap(&workerPool{}).release()
	s.store.reset()
	s.configured = false
	s.externalInterrupt.Store(false)

	s.outcomeMu.Lock()
	s.last = outcome{}
	s.outcomeMu.Unlock()
}
