package portfolio

import (
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/limaJavier/parsat/pkg/engine"
)

// outcome is the single adopted result of one solve call.
type outcome struct {
	status engine.Status
	model  []int
}

// race runs one solve attempt across the whole pool and returns the one
// winning terminal result.
//
// With a single worker the solve runs synchronously. With more, every worker
// solves in its own goroutine and the first decisive result (Sat or Unsat)
// wins an atomic claim; the winner alone writes the shared outcome, holding
// a lock for the model copy, then signals cooperative interruption to the
// rest. There is no tie-break by worker ordinal: whichever decisive result
// wins the claim is authoritative. Every task is joined before returning, so
// no solve activity outlives the call.
func race(workers []*worker, cube []int, verbosity int) outcome {
	if len(workers) == 0 {
		return outcome{status: engine.Unknown}
	}

	if len(workers) == 1 {
		w := workers[0]
		out := outcome{status: solveWorker(w, cube, verbosity)}
		if out.status == engine.Sat {
			out.model = copyModel(w.eng.Model())
		}
		return out
	}

	var (
		claimed atomic.Bool
		modelMu sync.Mutex
		out     = outcome{status: engine.Unknown}
		group   errgroup.Group
	)

	for _, w := range workers {
		group.Go(func() error {
			status := solveWorker(w, cube, verbosity)
			if status != engine.Sat && status != engine.Unsat {
				// Interrupted or indeterminate: discard, no shared writes
				return nil
			}
			if !claimed.CompareAndSwap(false, true) {
				// A decisive result already won the claim
				return nil
			}

			modelMu.Lock()
			out.status = status
			if status == engine.Sat {
				out.model = copyModel(w.eng.Model())
			}
			modelMu.Unlock()

			if verbosity >= 1 {
				log.Printf("parsat: worker %d wins the race with %v", w.ordinal, status)
			}
			for _, other := range workers {
				if other != w {
					other.eng.Interrupt()
				}
			}
			return nil
		})
	}

	// Join winners and losers alike before surfacing the outcome
	_ = group.Wait()
	return out
}

// solveWorker invokes one engine's solve, containing any internal engine
// fault at the worker boundary: a panicking engine degrades its contribution
// to Unknown instead of aborting the portfolio.
func solveWorker(w *worker, cube []int, verbosity int) (status engine.Status) {
	defer func() {
		if r := recover(); r != nil {
			if verbosity >= 1 {
				log.Printf("parsat: worker %d engine fault: %v", w.ordinal, r)
			}
			status = engine.Unknown
		}
	}()
	return w.eng.Solve(cube)
}

func copyModel(model []int) []int {
	copied := make([]int, len(model))
	copy(copied, model)
	return copied
}
