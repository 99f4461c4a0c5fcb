// ABOUTME: Root CLI command with global flags
// ABOUTME: Wires up all subcommands of the documentation agent
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗  ██████╗  ██████╗ █████╗  ██████╗ ███████╗███╗   ██╗████████╗
██╔══██╗██╔═══██╗██╔════╝██╔══██╗██╔════╝ ██╔════╝████╗  ██║╚══██╔══╝
██║  ██║██║   ██║██║     ███████║██║  ███╗█████╗  ██╔██╗ ██║   ██║
██║  ██║██║   ██║██║     ██╔══██║██║   ██║██╔══╝  ██║╚██╗██║   ██║
██████╔╝╚██████╔╝╚██████╗██║  ██║╚██████╔╝███████╗██║ ╚████║   ██║
╚═════╝  ╚═════╝  ╚═════╝╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝  ╚═══╝   ╚═╝
`

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docagent",
		Short: "Question answering over a single documentation file",
		Long: banner + `
docagent ingests one documentation file, builds a semantic index over it
and answers questions strictly from the document. Answers are validated
and attributed; contact data not present in the document is redacted.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewChunksCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
