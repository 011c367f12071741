package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stencil/internal/driver"
	"stencil/internal/report"
	"stencil/internal/snapshot"
	"stencil/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] dir",
	Short: "Analyze every kernel manifest under a directory",
	Long:  `Analyze builds and analyzes every *.toml kernel under dir in parallel and prints a summary line per kernel`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = NumCPU)")
	analyzeCmd.Flags().Bool("ui", false, "show interactive progress")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	dir := args[0]

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	opts, err := reportOptions(cmd)
	if err != nil {
		return err
	}
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results []*driver.Result
	if withUI && isTerminal(os.Stdout) {
		results, err = analyzeWithUI(ctx, dir, jobs, cache)
	} else {
		results, err = driver.AnalyzeDir(ctx, dir, jobs, cache, nil)
	}
	if err != nil {
		return err
	}

	report.Summary(os.Stdout, results, opts)
	return nil
}

func analyzeWithUI(ctx context.Context, dir string, jobs int, cache *snapshot.DiskCache) ([]*driver.Result, error) {
	files, err := driver.ListManifests(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 64)
	var results []*driver.Result
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, runErr = driver.AnalyzeDir(ctx, dir, jobs, cache, events)
	}()

	program := tea.NewProgram(ui.NewProgressModel("analyzing kernels", files, events))
	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("progress ui failed: %w", err)
	}
	<-done
	return results, runErr
}
