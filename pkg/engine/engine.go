package engine

// Status is the terminal answer of one solve attempt.
type Status int

const (
	Unknown Status = iota // interrupted, resource-limited or engine fault
	Sat
	Unsat
)

func (status Status) String() string {
	switch status {
	case Sat:
		return "SATISFIABLE"
	case Unsat:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Statistics is a snapshot of one engine's search effort. Engines report the
// counters they actually track and leave the rest at zero.
type Statistics struct {
	Propagations uint64
	Decisions    uint64
	Conflicts    uint64
	Restarts     uint64
	PeakMemoryKB float64
}

// Parameters is the fixed heuristic profile applied to every engine of a
// pool. Engines honor the knobs they support and treat the rest as advisory.
type Parameters struct {
	Tier1         int
	Chrono        bool
	Stable        bool
	WalkInitially bool
	Target        int
	Phase         bool
	Heuristic     int
	Margin        int
	Ccanr         bool
	TargetInc     bool
	Preprocessing bool
}

// DefaultParameters is the profile every pool member receives.
func DefaultParameters() Parameters {
	return Parameters{
		Tier1:     2,
		Chrono:    true,
		Stable:    true,
		Target:    1,
		Phase:     true,
		Heuristic: 1,
		Ccanr:     true,
		TargetInc: true,
	}
}

// Engine is one independent solving-engine instance: the capability a
// portfolio worker consumes. Implementations are real solvers or
// deterministic test doubles.
//
// Interrupt and ClearInterrupt are safe to call from any goroutine at any
// time; they set an advisory flag the engine polls at its own pace. Every
// other method must be called from a single goroutine at a time, and clauses
// must not be added while a Solve is in flight.
type Engine interface {
	// Solve attempts the formula submitted so far, restricted by the
	// assumption literals in cube (empty means unconditional). It blocks
	// until the engine concludes or honors an interrupt.
	Solve(cube []int) Status

	// Model returns the assignment found by the most recent Sat solve, one
	// signed literal per variable. The slice may be engine-owned; callers
	// copy before the next Solve.
	Model() []int

	// AddClause records one clause of non-zero literals. Validation is the
	// caller's responsibility.
	AddClause(literals []int)

	// LoadFormula parses a DIMACS CNF file into the engine.
	LoadFormula(path string) error

	// Diversify perturbs the engine's search trajectory with a seed so
	// portfolio members explore different paths on the identical formula.
	Diversify(seed int64)

	SetParameters(params Parameters)

	Interrupt()
	ClearInterrupt()

	Statistics() Statistics

	// Release frees engine resources. The engine must not be used afterward.
	Release()
}

// Factory creates the engine for the worker with the given ordinal index.
// Returning an error omits that worker from the pool.
type Factory func(ordinal int) (Engine, error)
