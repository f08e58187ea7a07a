package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pagescout.
// Running it with no subcommand performs a scan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagescout [url]",
		Short: "Scan a web page and its sub-pages for keywords and PDF links",
		Long: `pagescout fetches a start page, looks for keyword phrases and links to PDF
documents on it, then does the same for every same-site link of the start page
whose path matches a sub-page filter (by default /organization/ and /schemes/).

When no URL is given, pagescout asks for one on standard input.`,
		Version:       getVersion(),
		Args:          cobra.MaximumNArgs(1),
		RunE:          runScanCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	addScanFlags(cmd)

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
