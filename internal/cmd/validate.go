package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/manasmbellani/search-freeplane/internal/fileutil"
	"github.com/manasmbellani/search-freeplane/internal/search"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file-or-folder]",
		Short: "Strictly parse mind-map files and report malformed ones",
		Long: `Parse every map file under the given path in strict mode, reporting any
file that fails to parse. No searching or printing of matches happens.

Unlike a normal search, which recovers what it can from a malformed map,
validation surfaces every parse problem loudly.

Exit code: 0 if all files parse cleanly, 1 if any fail`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().StringP("extensions", "e", "", "Comma-separated map file extensions (e.g. .mm,.md)")
	cmd.Flags().IntP("workers", "w", 0, "Number of concurrent validation workers")
	cmd.Flags().BoolP("verbose", "v", false, "Show debug messages")
	cmd.Flags().Duration("poll-timeout", 0, "Queue poll timeout; a silent queue for this long ends the run")
	cmd.Flags().String("config", "", "Path to config file (default: .mmsearch/config.yaml)")

	return cmd
}

// runValidate implements the validate command logic
func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var workersPtr *int
	if cmd.Flags().Changed("workers") {
		workers, _ := cmd.Flags().GetInt("workers")
		workersPtr = &workers
	}

	var pollTimeoutPtr *time.Duration
	if cmd.Flags().Changed("poll-timeout") {
		pollTimeout, _ := cmd.Flags().GetDuration("poll-timeout")
		pollTimeoutPtr = &pollTimeout
	}

	var extensions []string
	if cmd.Flags().Changed("extensions") {
		extensions = splitExtensions(cmd)
	}

	cfg.MergeWithFlags(workersPtr, pollTimeoutPtr, extensions, nil, nil)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	log := newConsoleLogger(cmd, cfg.LogLevel, verbose)

	scan, err := fileutil.ListFiles(root, cfg.Extensions)
	if err != nil {
		return err
	}
	for _, scanErr := range scan.Errors {
		log.LogWarn(scanErr.Error())
	}
	if len(scan.Files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No map files found under %s\n", root)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Validation runs through the same pool as searching; workers strict-
	// parse each file and publish nothing.
	searcher := search.NewMapSearcher(nil, log)
	pool := search.NewPoolWithConfig(searcher, log, cfg.Workers, cfg.PollTimeout, true)

	if err := pool.Run(ctx, scan.Files, io.Discard); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "All %d map file(s) parsed cleanly\n", len(scan.Files))
	return nil
}
