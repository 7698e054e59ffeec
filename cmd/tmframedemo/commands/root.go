// Package commands wires the tmframedemo CLI's subcommands with cobra.
package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccsds-go/tmframe"
)

// NewRootCommand builds the tmframedemo root command.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "tmframedemo",
		Short: "Demonstrates a CCSDS TM Space Data Link framing pipeline",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
				tmframe.SetLogger(logrus.StandardLogger())
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newRunCommand())
	return root
}
