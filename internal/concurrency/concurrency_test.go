package concurrency

import (
	"context"
	"errors"
	"testing"
)

func TestEvalAllPreservesOrder(t *testing.T) {
	jobs := make([]Job, 20)
	for i := range jobs {
		i := i
		jobs[i] = Job{Index: i, Run: func() (any, error) { return i * i, nil }}
	}
	results := EvalAll(context.Background(), jobs, 4)
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("job %d error: %v", i, r.Err)
		}
		if r.Value.(int) != i*i {
			t.Fatalf("results[%d] = %v, want %d", i, r.Value, i*i)
		}
	}
}

func TestEvalAllPropagatesJobError(t *testing.T) {
	boom := errors.New("boom")
	jobs := []Job{
		{Index: 0, Run: func() (any, error) { return nil, boom }},
		{Index: 1, Run: func() (any, error) { return 1, nil }},
	}
	results := EvalAll(context.Background(), jobs, 2)
	if results[0].Err != boom {
		t.Fatalf("results[0].Err = %v, want %v", results[0].Err, boom)
	}
	if results[1].Err != nil {
		t.Fatalf("results[1].Err = %v, want nil", results[1].Err)
	}
}

func TestEvalAllEmptyJobs(t *testing.T) {
	results := EvalAll(context.Background(), nil, 4)
	if len(results) != 0 {
		t.Fatalf("EvalAll(nil) = %v, want empty", results)
	}
}

func TestEvalAllCancelledContextLeavesUnscheduledJobsWithErr(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	jobs := make([]Job, 5)
	for i := range jobs {
		jobs[i] = Job{Index: i, Run: func() (any, error) { return 1, nil }}
	}
	results := EvalAll(ctx, jobs, 1)
	sawCancelErr := false
	for _, r := range results {
		if r.Err == context.Canceled {
			sawCancelErr = true
		}
	}
	if !sawCancelErr {
		t.Fatalf("expected at least one job left unscheduled with ctx.Err() after cancellation")
	}
}
