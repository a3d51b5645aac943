package engine

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/crillab/gophersat/solver"

	"github.com/limaJavier/parsat/pkg/dimacs"
)

type gophersatEngine struct {
	clauses     [][]int
	rng         *rand.Rand
	params      Parameters
	interrupted atomic.Bool
	model       []int
	stats       Statistics
}

// NewGophersatEngine creates an in-process engine backed by gophersat. The
// solver is rebuilt from the clause buffer on every solve call, with the
// cube appended as unit clauses (equivalent for a one-shot attempt). The
// interrupt flag is honored between solves only: gophersat exposes no
// mid-search cancellation point, so its stop latency is one full search.
func NewGophersatEngine() Engine {
	return &gophersatEngine{}
}

func (e *gophersatEngine) Solve(cube []int) Status {
	if e.interrupted.Load() {
		return Unknown
	}

	problem := solver.ParseSlice(e.buildClauses(cube))
	s := solver.New(problem)
	status := s.Solve()

	e.stats.Decisions += uint64(s.Stats.NbDecisions)
	e.stats.Conflicts += uint64(s.Stats.NbConflicts)
	e.stats.Restarts += uint64(s.Stats.NbRestarts)
	if kb := heapKB(); kb > e.stats.PeakMemoryKB {
		e.stats.PeakMemoryKB = kb
	}

	switch status {
	case solver.Sat:
		e.model = signedModel(s.Model())
		return Sat
	case solver.Unsat:
		return Unsat
	default:
		return Unknown
	}
}

func (e *gophersatEngine) Model() []int {
	return e.model
}

func (e *gophersatEngine) AddClause(literals []int) {
	clause := make([]int, len(literals))
	copy(clause, literals)
	e.clauses = append(e.clauses, clause)
}

func (e *gophersatEngine) LoadFormula(path string) error {
	formula, err := dimacs.ParseFile(path)
	if err != nil {
		return fmt.Errorf("cannot load formula: %w", err)
	}
	for _, clause := range formula.Clauses {
		e.AddClause(clause)
	}
	return nil
}

func (e *gophersatEngine) Diversify(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

func (e *gophersatEngine) SetParameters(params Parameters) {
	// gophersat exposes no heuristic knobs; the profile is kept advisory.
	e.params = params
}

func (e *gophersatEngine) Interrupt() {
	e.interrupted.Store(true)
}

func (e *gophersatEngine) ClearInterrupt() {
	e.interrupted.Store(false)
}

func (e *gophersatEngine) Statistics() Statistics {
	return e.stats
}

func (e *gophersatEngine) Release() {
	e.clauses = nil
	e.model = nil
}

// buildClauses assembles the one-shot problem: the submitted clauses plus
// the cube as unit clauses, in a seed-perturbed order for diversification.
func (e *gophersatEngine) buildClauses(cube []int) [][]int {
	clauses := make([][]int, 0, len(e.clauses)+len(cube))
	clauses = append(clauses, e.clauses...)
	for _, literal := range cube {
		clauses = append(clauses, []int{literal})
	}
	if e.rng != nil {
		e.rng.Shuffle(len(clauses), func(i, j int) {
			clauses[i], clauses[j] = clauses[j], clauses[i]
		})
	}
	return clauses
}

// signedModel turns gophersat's boolean assignment into signed literals,
// one per variable, 1-indexed.
func signedModel(assignment []bool) []int {
	model := make([]int, 0, len(assignment))
	for i, value := range assignment {
		if value {
			model = append(model, i+1)
		} else {
			model = append(model, -(i + 1))
		}
	}
	return model
}
