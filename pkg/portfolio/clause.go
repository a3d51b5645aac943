package portfolio

import (
	"fmt"

	"github.com/samber/lo"
)

// Clause defaults, matching what the engines expect from shared clauses.
const (
	defaultLBD    = 2
	defaultOrigin = 0
)

// Clause is one immutable disjunction of literals, shared read-only by every
// worker once distributed.
type Clause struct {
	Literals []int
	LBD      int // heuristic quality score, defaulted at creation
	From     int // origin tag
}

// newClause validates and copies the literal sequence: a clause must be
// non-empty and free of zero literals.
func newClause(literals []int) (Clause, error) {
	if len(literals) == 0 {
		return Clause{}, fmt.Errorf("%w: empty literal sequence", ErrInvalidClause)
	}
	if !lo.EveryBy(literals, func(literal int) bool { return literal != 0 }) {
		return Clause{}, fmt.Errorf("%w: literal cannot be zero", ErrInvalidClause)
	}

	copied := make([]int, len(literals))
	copy(copied, literals)
	return Clause{Literals: copied, LBD: defaultLBD, From: defaultOrigin}, nil
}

// maxVariable is the largest variable index referenced by the clause.
func (c Clause) maxVariable() int {
	return lo.Max(lo.Map(c.Literals, func(literal, _ int) int {
		if literal < 0 {
			return -literal
		}
		return literal
	}))
}
