package engine

import (
	"bytes"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/limaJavier/parsat/pkg/dimacs"
)

type kissatEngine struct {
	path        string
	seed        int64
	clauses     [][]int
	variables   int
	params      Parameters
	interrupted atomic.Bool
	model       []int
	stats       Statistics

	mu  sync.Mutex
	cmd *exec.Cmd // active solve process, nil when idle
}

// NewKissatEngine creates an engine backed by an external kissat executable.
// Each solve feeds the formula (plus the cube as unit clauses) as DIMACS over
// stdin; exit-code 10 stands for satisfiable and exit-code 20 for
// unsatisfiable. Interruption kills the child process, so stop latency is
// one signal delivery rather than a poll interval.
func NewKissatEngine(path string) Engine {
	return &kissatEngine{path: path}
}

func (e *kissatEngine) Solve(cube []int) Status {
	if e.interrupted.Load() {
		return Unknown
	}

	formula := dimacs.Formula{Variables: e.variables}
	formula.Clauses = append(formula.Clauses, e.clauses...)
	for _, literal := range cube {
		formula.Clauses = append(formula.Clauses, []int{literal})
	}

	args := []string{"-q", "--relaxed"}
	if e.seed != 0 {
		args = append(args, fmt.Sprintf("--seed=%d", e.seed))
	}
	cmd := exec.Command(e.path, args...)
	cmd.Stdin = strings.NewReader(formula.String()) // Feed dimacs into kissat's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.mu.Lock()
	if e.interrupted.Load() {
		e.mu.Unlock()
		return Unknown
	}
	e.cmd = cmd
	e.mu.Unlock()

	err := cmd.Run()

	e.mu.Lock()
	e.cmd = nil
	e.mu.Unlock()

	if cmd.ProcessState == nil {
		// The process never started (missing or broken executable)
		log.Printf("parsat: kissat could not start: %v", err)
		return Unknown
	}

	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	switch cmd.ProcessState.ExitCode() {
	case 10:
		e.model = parseSolution(stdOut.String())
		return Sat
	case 20:
		return Unsat
	default:
		if err != nil && !e.interrupted.Load() {
			log.Printf("parsat: kissat execution failed: %v : %v", err, stderr.String())
		}
		return Unknown
	}
}

func (e *kissatEngine) Model() []int {
	return e.model
}

func (e *kissatEngine) AddClause(literals []int) {
	clause := make([]int, len(literals))
	copy(clause, literals)
	e.clauses = append(e.clauses, clause)
	for _, literal := range literals {
		variable := literal
		if variable < 0 {
			variable = -variable
		}
		if variable > e.variables {
			e.variables = variable
		}
	}
}

func (e *kissatEngine) LoadFormula(path string) error {
	formula, err := dimacs.ParseFile(path)
	if err != nil {
		return fmt.Errorf("cannot load formula: %w", err)
	}
	for _, clause := range formula.Clauses {
		e.AddClause(clause)
	}
	if formula.Variables > e.variables {
		e.variables = formula.Variables
	}
	return nil
}

func (e *kissatEngine) Diversify(seed int64) {
	e.seed = seed
}

func (e *kissatEngine) SetParameters(params Parameters) {
	e.params = params
}

func (e *kissatEngine) Interrupt() {
	e.interrupted.Store(true)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
}

func (e *kissatEngine) ClearInterrupt() {
	e.interrupted.Store(false)
}

func (e *kissatEngine) Statistics() Statistics {
	return e.stats
}

func (e *kissatEngine) Release() {
	e.Interrupt()
	e.clauses = nil
	e.model = nil
}

// parseSolution extracts the model from the solver's "v" output lines.
func parseSolution(solverOutput string) []int {
	values := lo.Map(
		lo.Reduce(
			lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
				return len(line) > 0 && line[0] == 'v'
			}),
			func(values []string, line string, _ int) []string {
				return append(values, strings.Fields(line[1:])...)
			},
			[]string{},
		),
		func(valueStr string, _ int) int {
			value, err := strconv.Atoi(valueStr)
			if err != nil {
				log.Panicf("invalid literal in solver output: %v", err)
			}
			return value
		},
	)
	// The model is terminated by a 0 literal
	if len(values) > 0 && values[len(values)-1] == 0 {
		values = values[:len(values)-1]
	}
	return values
}
