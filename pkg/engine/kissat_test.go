package engine

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKissat(t *testing.T) {
	path, err := exec.LookPath("kissat")
	if err != nil {
		t.Skip("kissat executable not available")
	}

	t.Run("Satisfiable instance", func(t *testing.T) {
		// Arrange
		eng := NewKissatEngine(path)
		defer eng.Release()
		eng.AddClause([]int{1, 2})
		eng.AddClause([]int{-1, 2})

		// Act
		status := eng.Solve(nil)

		// Assert
		assert.Equal(t, Sat, status)
		assert.True(t, AssertModel([][]int{{1, 2}, {-1, 2}}, eng.Model()))
	})

	t.Run("Unsatisfiable instance", func(t *testing.T) {
		// Arrange
		eng := NewKissatEngine(path)
		defer eng.Release()
		eng.AddClause([]int{1})
		eng.AddClause([]int{-1})

		// Act
		status := eng.Solve(nil)

		// Assert
		assert.Equal(t, Unsat, status)
	})

}

func TestKissatMissingExecutable(t *testing.T) {
	// Arrange
	eng := NewKissatEngine("definitely-not-a-solver")
	defer eng.Release()
	eng.AddClause([]int{1})

	// Act
	status := eng.Solve(nil)

	// Assert: an engine fault degrades to unknown instead of failing the solve
	assert.Equal(t, Unknown, status)
}

func TestParseSolution(t *testing.T) {
	// Arrange
	output := "c comment\ns SATISFIABLE\nv 1 -2 3\nv -4 0\n"

	// Act
	model := parseSolution(output)

	// Assert
	assert.Equal(t, []int{1, -2, 3, -4}, model)
}
