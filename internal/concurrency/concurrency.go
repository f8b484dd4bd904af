// Package concurrency provides a bounded worker pool for evaluating
// batches of independently-compiled expressions concurrently (spec
// §5.1), grounded on the teacher's internal/concurrency worker-pool
// shape but trimmed to the one operation this domain actually needs.
package concurrency

import (
	"context"
	"runtime"
	"sync"
)

// Job is one unit of batch work: an opaque index (so callers can map
// results back to their own input slice) plus the function to run.
type Job struct {
	Index int
	Run   func() (any, error)
}

// Result is Job's corresponding output, carrying Index back through so
// results can be reassembled in the caller's original order regardless
// of completion order.
type Result struct {
	Index int
	Value any
	Err   error
}

// EvalAll runs every job in jobs using at most workers goroutines (0 or
// negative means runtime.NumCPU()), and returns results indexed exactly
// like the input slice: results[i] corresponds to jobs[i]. It stops
// scheduling new jobs once ctx is done, leaving unscheduled jobs with a
// ctx.Err() result.
//
// This is the concurrency primitive spec §5.1 asks for — e.g. sampling
// a function over a grid of points for a batch of der/integrate calls,
// or serving several concurrent evalserver requests — kept independent
// of the hot single-expression evaluation path in internal/eval.
func EvalAll(ctx context.Context, jobs []Job, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	done := make([]bool, len(jobs))
	queue := make(chan Job)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for job := range queue {
				v, err := job.Run()
				results[job.Index] = Result{Index: job.Index, Value: v, Err: err}
				done[job.Index] = true
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, job := range jobs {
			select {
			case queue <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	for i := range results {
		if !done[i] {
			results[i] = Result{Index: i, Err: ctx.Err()}
		}
	}
	return results
}
