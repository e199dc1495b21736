package scanner

import (
	"context"
	"sync"
)

// WorkerConfig holds options for the worker pool.
type WorkerConfig struct {
	Threads int
	Pauser  *Pauser // nil = no pause support
}

// RunWorkerPool probes every parameter exactly once across at most
// cfg.Threads concurrent workers and returns a channel of outcomes in
// completion order. The channel is closed when all probes have finished.
func RunWorkerPool(
	ctx context.Context,
	prober ParamProber,
	params []string,
	cfg WorkerConfig,
) <-chan Outcome {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	paramsCh := make(chan string, threads*2)
	resultsCh := make(chan Outcome, threads*2)

	var wg sync.WaitGroup

	// Producer: feed parameters into channel.
	go func() {
		defer close(paramsCh)
		for _, p := range params {
			select {
			case paramsCh <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Workers: one probe in flight each.
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for param := range paramsCh {
				if cfg.Pauser != nil && !cfg.Pauser.Wait(ctx) {
					return
				}

				outcome := prober.Probe(ctx, param)
				if outcome.Kind == Failed && ctx.Err() != nil {
					return
				}
				resultsCh <- outcome
			}
		}()
	}

	// Closer: when all workers finish, close the results channel.
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	return resultsCh
}
