package search

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// pathColor renders the file path heading above a file's matches.
var pathColor = color.New(color.FgGreen)

// Printer is the single consumer of the result queue. It drains batches and
// prints each non-empty one as a colorized file path followed by its match
// lines and a blank separator. Being the only goroutine that touches the
// output writer, it needs no locking.
type Printer struct {
	out         io.Writer
	logger      Logger
	pollTimeout time.Duration
}

// NewPrinter constructs a Printer writing to out. The logger is optional
// and can be nil to disable logging.
func NewPrinter(out io.Writer, logger Logger, pollTimeout time.Duration) *Printer {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	return &Printer{
		out:         out,
		logger:      logger,
		pollTimeout: pollTimeout,
	}
}

// Run drains results until the queue closes or stays silent for one full
// poll interval. The cancellation context is checked before each batch is
// printed; a cancelled run stops without emitting partial output.
//
// The silence timeout mirrors the workers' polling discipline. On its own
// it leaves a narrow race: a worker publishing its final batch exactly as
// the printer's silence window elapses would lose that batch. The pool
// removes the race by closing the queue after the last worker exits; the
// timeout remains as the drain heuristic for callers driving a Printer
// over a queue that is never closed.
func (pr *Printer) Run(ctx context.Context, results <-chan Batch) {
	for {
		select {
		case batch, ok := <-results:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				return
			}
			pr.print(batch)
		case <-time.After(pr.pollTimeout):
			if pr.logger != nil {
				pr.logger.LogDebug(fmt.Sprintf("printer: result queue silent for %s, exiting", pr.pollTimeout))
			}
			return
		}
	}
}

// print emits one batch. Empty batches produce no output at all.
func (pr *Printer) print(batch Batch) {
	if len(batch.Matches) == 0 {
		return
	}
	fmt.Fprintln(pr.out, pathColor.Sprint(batch.File))
	for _, m := range batch.Matches {
		fmt.Fprintln(pr.out, m)
	}
	fmt.Fprintln(pr.out)
}
