package portfolio

import (
	"log"

	"github.com/limaJavier/parsat/pkg/engine"
)

// worker is the handle to one solving-engine instance in the pool.
type worker struct {
	ordinal int
	seed    int64
	eng     engine.Engine
}

// workerPool owns the worker handles of one configuration. The pool is
// replaced wholesale by reconfiguration and is never mutated concurrently
// with an in-flight solve.
type workerPool struct {
	workers []*worker
}

// buildPool creates max(cfg.NumThreads, 1) diversified workers. A worker
// whose engine cannot be allocated is omitted, shrinking the effective pool.
func buildPool(cfg Config) *workerPool {
	threads := cfg.NumThreads
	if threads < 1 {
		threads = 1
	}
	factory := cfg.NewEngine
	if factory == nil {
		factory = defaultFactory
	}

	params := engine.DefaultParameters()
	params.Preprocessing = cfg.EnablePreprocessing

	pool := &workerPool{}
	for i := 0; i < threads; i++ {
		eng, err := factory(i)
		if err != nil {
			if cfg.Verbosity >= 1 {
				log.Printf("parsat: worker %d creation failed, pool shrinks: %v", i, err)
			}
			continue
		}

		// Distinct seeds guarantee distinct search trajectories across the
		// portfolio even though each worker runs the identical formula.
		seed := int64(i)
		if cfg.RandomSeed != 0 {
			seed += cfg.RandomSeed
		}
		eng.Diversify(seed)
		eng.SetParameters(params)

		pool.workers = append(pool.workers, &worker{ordinal: i, seed: seed, eng: eng})
	}
	return pool
}

func (pool *workerPool) release() {
	for _, w := range pool.workers {
		w.eng.Release()
	}
	pool.workers = nil
}

func (pool *workerPool) interruptAll() {
	for _, w := range pool.workers {
		w.eng.Interrupt()
	}
}

func (pool *workerPool) clearInterruptAll() {
	for _, w := range pool.workers {
		w.eng.ClearInterrupt()
	}
}
