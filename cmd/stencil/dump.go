package main

import (
	"os"

	"github.com/spf13/cobra"

	"stencil/internal/driver"
	"stencil/internal/report"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] kernel.toml",
	Short: "Print the loop-nest tree of a kernel",
	Long:  `Dump builds the tree described by a kernel manifest and prints its canonical text projection`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	opts, err := reportOptions(cmd)
	if err != nil {
		return err
	}
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}
	res, err := driver.Analyze(args[0], cache)
	if err != nil {
		return err
	}
	report.Dump(os.Stdout, res, opts)
	return nil
}
