package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	rcPath  string
	verbose bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kiln",
		Short: "Kiln - conda package build toolchain",
		Long: `Kiln builds conda packages from recipes.

This binary exposes the build-settings core: it resolves interpreter
versions and the on-disk build directory layout from explicit overrides,
environment variables, the rc file, and built-in defaults.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&rcPath, "rc", "", "rc file path (default ~/.condarc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newDirsCommand())

	return rootCmd
}
