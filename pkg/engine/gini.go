package engine

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"github.com/limaJavier/parsat/pkg/dimacs"
)

// How often a running solve checks the advisory interrupt flag.
const giniPollInterval = 5 * time.Millisecond

type giniEngine struct {
	solver      *gini.Gini
	rng         *rand.Rand
	params      Parameters
	interrupted atomic.Bool
	peakKB      float64
}

// NewGiniEngine creates an in-process incremental CDCL engine backed by
// gini. It is the default portfolio member: fully interruptible mid-search
// through gini's background-solve handle.
func NewGiniEngine() Engine {
	return &giniEngine{solver: gini.New()}
}

func (e *giniEngine) Solve(cube []int) Status {
	if e.interrupted.Load() {
		return Unknown
	}

	for _, literal := range cube {
		e.solver.Assume(toGiniLit(literal))
	}

	// Run the search in the background and poll: Test is non-blocking, and
	// Stop both cancels the search and yields whatever result it had.
	conn := e.solver.GoSolve()
	for {
		if result, done := conn.Test(); done {
			e.observePeak()
			return fromGiniResult(result)
		}
		if e.interrupted.Load() {
			result := conn.Stop()
			e.observePeak()
			return fromGiniResult(result)
		}
		time.Sleep(giniPollInterval)
	}
}

func (e *giniEngine) Model() []int {
	maxVar := int(e.solver.MaxVar())
	model := make([]int, 0, maxVar)
	for variable := 1; variable <= maxVar; variable++ {
		if e.solver.Value(z.Var(variable).Pos()) {
			model = append(model, variable)
		} else {
			model = append(model, -variable)
		}
	}
	return model
}

func (e *giniEngine) AddClause(literals []int) {
	// Diversification: a seeded shuffle of the literal order changes the
	// watched-literal choices and with them the search trajectory, while
	// leaving the clause semantically identical.
	ordered := literals
	if e.rng != nil {
		ordered = make([]int, len(literals))
		copy(ordered, literals)
		e.rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	for _, literal := range ordered {
		e.solver.Add(toGiniLit(literal))
	}
	e.solver.Add(z.LitNull)
}

func (e *giniEngine) LoadFormula(path string) error {
	formula, err := dimacs.ParseFile(path)
	if err != nil {
		return fmt.Errorf("cannot load formula: %w", err)
	}
	for _, clause := range formula.Clauses {
		e.AddClause(clause)
	}
	return nil
}

func (e *giniEngine) Diversify(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

func (e *giniEngine) SetParameters(params Parameters) {
	// gini exposes no heuristic knobs; the profile is kept advisory.
	e.params = params
}

func (e *giniEngine) Interrupt() {
	e.interrupted.Store(true)
}

func (e *giniEngine) ClearInterrupt() {
	e.interrupted.Store(false)
}

func (e *giniEngine) Statistics() Statistics {
	// gini does not export search counters
	return Statistics{PeakMemoryKB: e.peakKB}
}

func (e *giniEngine) Release() {
	e.solver = nil
}

func (e *giniEngine) observePeak() {
	if kb := heapKB(); kb > e.peakKB {
		e.peakKB = kb
	}
}

func toGiniLit(literal int) z.Lit {
	if literal < 0 {
		return z.Var(-literal).Neg()
	}
	return z.Var(literal).Pos()
}

func fromGiniResult(result int) Status {
	switch result {
	case 1:
		return Sat
	case -1:
		return Unsat
	default:
		return Unknown
	}
}
