package dimacs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("Standard instance", func(t *testing.T) {
		// Arrange
		input := "c a comment\np cnf 3 2\n1 -2 0\n2 3 0\n"

		// Act
		formula, err := Parse(strings.NewReader(input))

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, 3, formula.Variables)
		assert.Equal(t, [][]int{{1, -2}, {2, 3}}, formula.Clauses)
	})

	t.Run("Clause spanning multiple lines", func(t *testing.T) {
		// Arrange
		input := "p cnf 4 1\n1 2\n3 -4 0\n"

		// Act
		formula, err := Parse(strings.NewReader(input))

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, [][]int{{1, 2, 3, -4}}, formula.Clauses)
	})

	t.Run("Missing header raises variable count from literals", func(t *testing.T) {
		// Arrange
		input := "1 -5 0\n2 0\n"

		// Act
		formula, err := Parse(strings.NewReader(input))

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, 5, formula.Variables)
		assert.Len(t, formula.Clauses, 2)
	})

	t.Run("Header below maximum literal is corrected", func(t *testing.T) {
		// Arrange
		input := "p cnf 1 1\n1 7 0\n"

		// Act
		formula, err := Parse(strings.NewReader(input))

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, 7, formula.Variables)
	})

	t.Run("Invalid problem line", func(t *testing.T) {
		// Act
		_, err := Parse(strings.NewReader("p cnf 3\n1 0\n"))

		// Assert
		assert.NotNil(t, err)
	})

	t.Run("Invalid literal", func(t *testing.T) {
		// Act
		_, err := Parse(strings.NewReader("p cnf 2 1\n1 x 0\n"))

		// Assert
		assert.NotNil(t, err)
	})
}

func TestParseFile(t *testing.T) {
	t.Run("Round trip through String", func(t *testing.T) {
		// Arrange
		original := Formula{
			Variables: 3,
			Clauses:   [][]int{{1, 2}, {-1, 2}, {-2, 3}},
		}
		path := filepath.Join(t.TempDir(), "instance.cnf")
		err := os.WriteFile(path, []byte(original.String()), 0644)
		assert.Nil(t, err)

		// Act
		parsed, err := ParseFile(path)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, original, parsed)
	})

	t.Run("Missing file", func(t *testing.T) {
		// Act
		_, err := ParseFile(filepath.Join(t.TempDir(), "missing.cnf"))

		// Assert
		assert.NotNil(t, err)
	})
}
