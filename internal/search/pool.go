package search

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultWorkers sizes the worker pool when the caller does not.
const DefaultWorkers = 10

// DefaultPollTimeout bounds every queue poll. A worker or printer that sees
// its queue silent for one full interval treats the queue as drained and
// exits its loop.
const DefaultPollTimeout = time.Second

// Pool runs a fixed number of concurrent workers over a queue of file paths
// and a single printer over the resulting batches. All tasks are enqueued
// before the run and never afterward, so queue silence is a reliable
// drain signal within one timeout interval of the last task completing.
type Pool struct {
	searcher     Searcher
	logger       Logger
	workers      int
	pollTimeout  time.Duration
	validateOnly bool

	invalidFiles int32
}

// NewPool constructs a Pool with default worker count and poll timeout.
// The logger is optional and can be nil to disable logging.
func NewPool(searcher Searcher, logger Logger) *Pool {
	return NewPoolWithConfig(searcher, logger, DefaultWorkers, DefaultPollTimeout, false)
}

// NewPoolWithConfig constructs a Pool with explicit worker count, poll
// timeout and mode. Non-positive workers or timeout fall back to defaults.
func NewPoolWithConfig(searcher Searcher, logger Logger, workers int, pollTimeout time.Duration, validateOnly bool) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	return &Pool{
		searcher:     searcher,
		logger:       logger,
		workers:      workers,
		pollTimeout:  pollTimeout,
		validateOnly: validateOnly,
	}
}

// Run searches every file and prints matches to out. It blocks until all
// workers and the printer have exited: workers exit when the task queue
// stays silent for a poll interval or the context is cancelled, and the
// printer exits when the result queue closes or stays silent equally long.
//
// In validate-only mode no printer runs and nothing is published; Run
// returns an error when any file fails strict parsing.
func (p *Pool) Run(ctx context.Context, files []string, out io.Writer) error {
	if p.searcher == nil {
		return fmt.Errorf("searcher is required")
	}

	// The task queue is filled completely up front; workers only ever
	// drain it, so a buffered channel sized to the input needs no
	// coordinating producer goroutine.
	tasks := make(chan string, len(files))
	for _, f := range files {
		tasks <- f
	}

	results := make(chan Batch, len(files))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.worker(ctx, id, tasks, results)
		}(i)
	}

	// Close the result queue once the last worker exits. The printer still
	// honors the silence timeout, but the close guarantees no batch
	// published just before the final worker exited can be lost to it.
	go func() {
		wg.Wait()
		close(results)
	}()

	if p.validateOnly {
		// No printer in validate mode; wait for the workers to drain.
		for range results {
		}
		if n := atomic.LoadInt32(&p.invalidFiles); n > 0 {
			return fmt.Errorf("%d file(s) failed validation", n)
		}
		return nil
	}

	printer := NewPrinter(out, p.logger, p.pollTimeout)
	printer.Run(ctx, results)

	// The printer can idle out while a slow worker still holds a task. Join
	// the workers regardless, so Run never returns with a search mid-file;
	// a batch published after the printer exits is dropped, not half-done.
	wg.Wait()
	return nil
}

// InvalidCount returns the number of files that failed strict parsing
// during a validate-only run.
func (p *Pool) InvalidCount() int {
	return int(atomic.LoadInt32(&p.invalidFiles))
}

// worker repeatedly pulls one file path and processes it. The poll timeout
// doubles as the exit condition: a queue that stays silent for one full
// interval is treated as permanently drained, which holds because no task
// is ever enqueued after the initial fan-out.
func (p *Pool) worker(ctx context.Context, id int, tasks <-chan string, results chan<- Batch) {
	for {
		select {
		case path := <-tasks:
			if !p.process(ctx, path, results) {
				return
			}
		case <-time.After(p.pollTimeout):
			p.logDebug(fmt.Sprintf("worker %d: task queue silent for %s, exiting", id, p.pollTimeout))
			return
		}
	}
}

// process runs one task through the parse+match and publish stages, with
// the cancellation context consulted before each. A cancelled task is
// abandoned without publishing a partial batch. It returns false when the
// worker should exit its loop.
func (p *Pool) process(ctx context.Context, path string, results chan<- Batch) bool {
	if ctx.Err() != nil {
		return false
	}

	if p.validateOnly {
		if err := p.searcher.Validate(ctx, path); err != nil {
			if ctx.Err() != nil {
				return false
			}
			atomic.AddInt32(&p.invalidFiles, 1)
			p.logError(fmt.Sprintf("invalid map %s: %v", path, err))
		}
		return ctx.Err() == nil
	}

	matches, err := p.searcher.Search(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		// Per-file failure: report it and keep going. The rest of the
		// queue is unaffected and the printer never sees the error.
		p.logError(fmt.Sprintf("failed to search %s: %v", path, err))
		matches = nil
	}

	if ctx.Err() != nil {
		return false
	}

	// Exactly one batch per file, even when nothing matched.
	p.logDebug(fmt.Sprintf("publishing %d match(es) for %s", len(matches), path))
	results <- Batch{File: path, Matches: matches}
	return true
}

func (p *Pool) logDebug(message string) {
	if p.logger != nil {
		p.logger.LogDebug(message)
	}
}

func (p *Pool) logError(message string) {
	if p.logger != nil {
		p.logger.LogError(message)
	}
}
