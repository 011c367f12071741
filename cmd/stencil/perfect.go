package main

import (
	"os"

	"github.com/spf13/cobra"

	"stencil/internal/driver"
	"stencil/internal/report"
)

var perfectCmd = &cobra.Command{
	Use:   "perfect [flags] kernel.toml",
	Short: "Check whether a kernel body is a perfect loop nest",
	Args:  cobra.ExactArgs(1),
	RunE:  runPerfect,
}

func runPerfect(cmd *cobra.Command, args []string) error {
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
	report.Perfect(os.Stdout, res, opts)
	return nil
}
