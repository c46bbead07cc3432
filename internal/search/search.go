// Package search implements the concurrent map-search pipeline.
//
// The pipeline is a producer/worker/consumer arrangement: the orchestrator
// enqueues every file path onto a task queue, a fixed pool of workers drains
// it (parsing, flattening and matching one file per task), and a single
// printer drains the resulting batch queue. There is no explicit end-of-
// stream marker; workers and the printer treat a queue that stays silent for
// one full poll timeout as drained, which is what lets the whole pipeline
// wind down cooperatively on interrupt as well as on completion.
package search

import "context"

// Batch pairs a searched file with the highlighted matches found in it.
// A batch may be empty; every searched file produces exactly one, and each
// batch is consumed exactly once by the printer.
type Batch struct {
	File    string
	Matches []string
}

// Searcher turns one file into its highlighted matches, and strictly checks
// one file in validate-only runs. Implementations are called concurrently
// from multiple workers and must be safe for concurrent use.
type Searcher interface {
	// Search parses and flattens the file at path and returns the lines
	// matching the keyword set, highlighted.
	Search(ctx context.Context, path string) ([]string, error)
	// Validate strictly parses the file at path, failing loudly on
	// malformed input.
	Validate(ctx context.Context, path string) error
}

// Logger is the logging surface the pipeline depends on. A nil Logger
// disables logging.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogError(message string)
}
