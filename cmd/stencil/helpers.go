package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stencil/internal/report"
	"stencil/internal/snapshot"
)

const cacheApp = "stencil"

func reportOptions(cmd *cobra.Command) (report.Options, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return report.Options{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return report.Options{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return report.Options{
		Color: colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)),
		Quiet: quiet,
	}, nil
}

// openCache returns nil when caching is disabled; the driver treats a nil
// cache as a pass-through.
func openCache(cmd *cobra.Command) (*snapshot.DiskCache, error) {
	noCache, err := cmd.Root().PersistentFlags().GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if noCache {
		return nil, nil
	}
	cache, err := snapshot.Open(cacheApp)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot cache: %w", err)
	}
	return cache, nil
}
