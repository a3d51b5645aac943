package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGophersatSolve(t *testing.T) {
	t.Run("Satisfiable instance with forced variable", func(t *testing.T) {
		// Arrange
		eng := NewGophersatEngine()
		defer eng.Release()
		eng.AddClause([]int{1, 2})
		eng.AddClause([]int{-1, 2})

		// Act
		status := eng.Solve(nil)

		// Assert
		assert.Equal(t, Sat, status)
		model := eng.Model()
		assert.True(t, AssertModel([][]int{{1, 2}, {-1, 2}}, model))
		assert.Contains(t, model, 2)
	})

	t.Run("Unsatisfiable instance", func(t *testing.T) {
		// Arrange
		eng := NewGophersatEngine()
		defer eng.Release()
		eng.AddClause([]int{1})
		eng.AddClause([]int{-1})

		// Act
		status := eng.Solve(nil)

		// Assert
		assert.Equal(t, Unsat, status)
	})

	t.Run("Cube is applied as unit clauses", func(t *testing.T) {
		// Arrange
		eng := NewGophersatEngine()
		defer eng.Release()
		eng.AddClause([]int{1, 2})

		// Act
		status := eng.Solve([]int{-1, -2})

		// Assert
		assert.Equal(t, Unsat, status)

		// Act: the formula itself stays untouched by the cube
		status = eng.Solve([]int{-1})

		// Assert
		assert.Equal(t, Sat, status)
		assert.Contains(t, eng.Model(), 2)
	})

	t.Run("Pending interrupt yields unknown", func(t *testing.T) {
		// Arrange
		eng := NewGophersatEngine()
		defer eng.Release()
		eng.AddClause([]int{1})
		eng.Interrupt()

		// Act
		status := eng.Solve(nil)

		// Assert
		assert.Equal(t, Unknown, status)

		// Act
		eng.ClearInterrupt()
		status = eng.Solve(nil)

		// Assert
		assert.Equal(t, Sat, status)
	})
}

func TestGophersatStatistics(t *testing.T) {
	// Arrange: a small pigeonhole instance forces real search effort
	eng := NewGophersatEngine()
	defer eng.Release()
	for _, clause := range pigeonhole(5) {
		eng.AddClause(clause)
	}

	// Act
	status := eng.Solve(nil)
	stats := eng.Statistics()

	// Assert
	assert.Equal(t, Unsat, status)
	assert.Greater(t, stats.Conflicts, uint64(0))
	assert.Greater(t, stats.PeakMemoryKB, 0.0)
}

// pigeonhole builds the classic unsatisfiable instance: n pigeons into n-1
// holes. Variable (p-1)*(n-1)+h means pigeon p sits in hole h.
func pigeonhole(pigeons int) [][]int {
	holes := pigeons - 1
	variable := func(pigeon, hole int) int {
		return (pigeon-1)*holes + hole
	}

	var clauses [][]int
	// Every pigeon sits somewhere
	for p := 1; p <= pigeons; p++ {
		clause := make([]int, 0, holes)
		for h := 1; h <= holes; h++ {
			clause = append(clause, variable(p, h))
		}
		clauses = append(clauses, clause)
	}
	// No two pigeons share a hole
	for h := 1; h <= holes; h++ {
		for p1 := 1; p1 <= pigeons; p1++ {
			for p2 := p1 + 1; p2 <= pigeons; p2++ {
				clauses = append(clauses, []int{-variable(p1, h), -variable(p2, h)})
			}
		}
	}
	return clauses
}
