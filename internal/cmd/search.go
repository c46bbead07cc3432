package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/manasmbellani/search-freeplane/internal/config"
	"github.com/manasmbellani/search-freeplane/internal/fileutil"
	"github.com/manasmbellani/search-freeplane/internal/logger"
	"github.com/manasmbellani/search-freeplane/internal/matcher"
	"github.com/manasmbellani/search-freeplane/internal/search"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search mind-map files for keyword patterns",
		Long: `Search a file or directory tree of mind-map files for lines matching
one or more regex keyword patterns.

Every document is flattened into one line per root-to-leaf node chain.
A line must match all supplied patterns to qualify; multiple patterns are
separated by the delimiter (default ",,"). Matches print grouped per file
with the matched text highlighted, in whatever order the workers finish.

Configuration is loaded from .mmsearch/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Single keyword across the default .mm maps under a folder
  mmsearch search -k password -f ~/maps

  # Conjunction: lines must match both patterns
  mmsearch search -k "api,,secret" -f ~/maps

  # Case-sensitive regex, including Markdown outlines, 4 workers
  mmsearch search -k 'Err(or)?' -c -e .mm,.md -w 4 -f notes/

  # Single file, replacing embedded line breaks for one-line output
  mmsearch search -k todo --replace-newlines -f plan.mm`,
		RunE: runSearch,
	}

	// Add flags
	cmd.Flags().StringP("keyword", "k", "", "Keyword pattern(s) (regex) to search for (required)")
	cmd.Flags().String("delimiter", "", "Delimiter separating multiple conjunctive patterns")
	cmd.Flags().StringP("file-folder", "f", ".", "File or folder to search")
	cmd.Flags().BoolP("case-sensitive", "c", false, "Match patterns case-sensitively")
	cmd.Flags().IntP("workers", "w", 0, "Number of concurrent search workers")
	cmd.Flags().StringP("extensions", "e", "", "Comma-separated map file extensions (e.g. .mm,.md)")
	cmd.Flags().BoolP("verbose", "v", false, "Show debug messages")
	cmd.Flags().Bool("replace-newlines", false, `Replace line breaks in matches with '\n' for one-line output`)
	cmd.Flags().Duration("poll-timeout", 0, "Queue poll timeout; a silent queue for this long ends the run")
	cmd.Flags().String("config", "", "Path to config file (default: .mmsearch/config.yaml)")

	if err := cmd.MarkFlagRequired("keyword"); err != nil {
		panic(err)
	}

	return cmd
}

// runSearch implements the search command logic
func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Get flag values
	keyword, _ := cmd.Flags().GetString("keyword")
	root, _ := cmd.Flags().GetString("file-folder")
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
	verbose, _ := cmd.Flags().GetBool("verbose")
	replaceNewlines, _ := cmd.Flags().GetBool("replace-newlines")

	// Build flag pointers for merge (only explicitly set values)
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

	var delimiterPtr *string
	if cmd.Flags().Changed("delimiter") {
		delimiter, _ := cmd.Flags().GetString("delimiter")
		delimiterPtr = &delimiter
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(workersPtr, pollTimeoutPtr, extensions, delimiterPtr, nil)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// An invalid pattern affects every file uniformly, so it fails the run
	// up front rather than surfacing per file.
	keywords, err := matcher.Compile(keyword, cfg.Delimiter, caseSensitive)
	if err != nil {
		return err
	}

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
	log.LogDebug(fmt.Sprintf("searching %d file(s) under %s with %d worker(s)", len(scan.Files), root, cfg.Workers))

	// Cooperative interrupt: Ctrl-C cancels the context and in-flight loops
	// wind down without publishing partial results.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	searcher := search.NewMapSearcherWithConfig(keywords, log, cfg.Connector, replaceNewlines, cfg.LineBreak)
	pool := search.NewPoolWithConfig(searcher, log, cfg.Workers, cfg.PollTimeout, false)

	return pool.Run(ctx, scan.Files, cmd.OutOrStdout())
}

// loadConfig loads the YAML config from the --config flag path or the
// default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newConsoleLogger builds the run's logger on stderr, keeping match output
// on stdout clean. The verbose flag overrides the configured log level.
func newConsoleLogger(cmd *cobra.Command, logLevel string, verbose bool) *logger.ConsoleLogger {
	if verbose {
		logLevel = "debug"
	}
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)
}

// splitExtensions parses the comma-separated --extensions flag value.
func splitExtensions(cmd *cobra.Command) []string {
	raw, _ := cmd.Flags().GetString("extensions")
	var extensions []string
	for _, ext := range strings.Split(raw, ",") {
		ext = strings.TrimSpace(ext)
		if ext != "" {
			extensions = append(extensions, ext)
		}
	}
	return extensions
}
