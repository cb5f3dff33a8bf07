package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mindgrove/mindgrove/pkg/buildinfo"
)

// Execute runs the mindgrove CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree. The
// logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "mindgrove",
		Short:        "Mindgrove lays out and renders mind maps",
		Long:         `Mindgrove is a mind-mapping engine: it lays out variable-depth trees as card diagrams, renders them to SVG, PNG, JSON, or graphviz output, and supports interactive viewing with pan, zoom, and node expansion.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newNewCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newRenameCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newExpandCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
