package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for mmsearch
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mmsearch",
		Short: "Concurrent keyword search across mind-map files",
		Long: `mmsearch searches a file or directory tree of mind-map documents
(Freeplane XML maps, Markdown outlines) for lines matching one or more
regex keyword patterns.

Each document is flattened into one line per root-to-leaf chain of nodes,
so a match anywhere along a chain surfaces the whole chain. Matching lines
are printed grouped per file with the matched text highlighted.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewSearchCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
