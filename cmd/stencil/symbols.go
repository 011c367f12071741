package main

import (
	"os"

	"github.com/spf13/cobra"

	"stencil/internal/driver"
	"stencil/internal/report"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] kernel.toml",
	Short: "List the symbols a kernel references",
	Long:  `Symbols prints the distinct base symbols of a kernel in first-occurrence order`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbols,
}

func runSymbols(cmd *cobra.Command, args []string) error {
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
	report.Symbols(os.Stdout, res, opts)
	return nil
}
