package portfolio

import (
	"time"

	"github.com/limaJavier/parsat/pkg/engine"
)

// Config is an immutable configuration value consumed at pool-construction
// time. Reconfiguring produces a new pool; nothing mutates shared state
// underneath an in-flight solve.
type Config struct {
	// NumThreads is the number of independent workers racing on the same
	// formula. Non-positive values are clamped to 1.
	NumThreads int

	// Timeout is advisory only: the coordinator enforces no deadline. A
	// caller wanting a hard limit runs an external timer that calls
	// Interrupt (cmd/ does exactly that).
	Timeout time.Duration

	// RandomSeed offsets worker diversification seeds; 0 means no offset.
	RandomSeed int64

	// EnablePreprocessing is forwarded to engines through their parameter
	// profile.
	EnablePreprocessing bool

	// Verbosity >= 1 logs pool construction problems and race outcomes.
	Verbosity int

	// NewEngine builds the engine behind each worker. Nil selects the
	// default in-process gini engine. Tests inject deterministic fakes here.
	NewEngine engine.Factory
}

func defaultFactory(int) (engine.Engine, error) {
	return engine.NewGiniEngine(), nil
}
