package main

import (
	"os"

	"github.com/spf13/cobra"

	"stencil/internal/driver"
	"stencil/internal/report"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [flags] kernel.toml",
	Short: "List the statement sections of a kernel",
	Long:  `Sections groups the kernel's expressions by enclosing loop context and prints one line per group`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

func runSections(cmd *cobra.Command, args []string) error {
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
	report.Sections(os.Stdout, res, opts)
	return nil
}
