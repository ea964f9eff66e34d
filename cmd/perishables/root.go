package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is set at build time:
//
//	go build -ldflags "-X 'main.Version=1.0.0'"
var Version = "dev"

// BuildDate is set at build time.
var BuildDate = "unknown"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "perishables",
		Short: "Report and prune perishable store inventory",
		Long: `perishables reads a semicolon separated inventory of perishable products,
selects the records of chosen stores, removes the ones that spoil too soon
while too much is left, and writes before/after tables with stock value sums.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(newReportCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the application version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "perishables")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		},
	}
}
