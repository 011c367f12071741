package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stencil/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "Loop-nest IR toolchain for stencil kernels",
	Long:  `stencil builds the loop-nest tree form of stencil kernels and runs structural analyses over it`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(perfectCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("no-cache", false, "skip the snapshot cache")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
