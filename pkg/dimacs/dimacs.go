package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Formula is a CNF formula in DIMACS terms: a variable count and a list of
// clauses, each clause a sequence of non-zero signed literals.
type Formula struct {
	Variables int
	Clauses   [][]int
}

// ParseFile reads a DIMACS CNF file from disk.
func ParseFile(path string) (Formula, error) {
	file, err := os.Open(path)
	if err != nil {
		return Formula{}, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads DIMACS CNF text. Comment lines are skipped, the "p cnf" header
// is optional (the variable count is raised to the maximum literal seen
// either way) and clauses may span multiple lines up to their 0 terminator.
func Parse(r io.Reader) (Formula, error) {
	var formula Formula
	var clause []int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		// Skip comments
		if strings.HasPrefix(line, "c") {
			continue
		}
		// Problem line
		if strings.HasPrefix(line, "p") {
			parts := strings.Fields(line)
			if len(parts) != 4 || parts[1] != "cnf" {
				return Formula{}, fmt.Errorf("invalid problem line: %s", line)
			}
			vars, err := strconv.Atoi(parts[2])
			if err != nil || vars < 0 {
				return Formula{}, fmt.Errorf("invalid variable count in problem line: %s", line)
			}
			formula.Variables = vars
			continue
		}
		// Clause line
		for _, litStr := range strings.Fields(line) {
			lit, err := strconv.Atoi(litStr)
			if err != nil {
				return Formula{}, fmt.Errorf("invalid literal '%s': %w", litStr, err)
			}
			if lit == 0 {
				if len(clause) > 0 {
					formula.Clauses = append(formula.Clauses, clause)
					clause = nil
				}
				continue
			}
			variable := lit
			if variable < 0 {
				variable = -variable
			}
			if variable > formula.Variables {
				formula.Variables = variable
			}
			clause = append(clause, lit)
		}
	}
	if err := scanner.Err(); err != nil {
		return Formula{}, fmt.Errorf("error reading input: %w", err)
	}
	// An unterminated trailing clause is tolerated, as most solvers do
	if len(clause) > 0 {
		formula.Clauses = append(formula.Clauses, clause)
	}

	return formula, nil
}

// String transforms the formula into DIMACS-CNF text format.
func (f Formula) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", f.Variables, len(f.Clauses))
	for _, clause := range f.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}
