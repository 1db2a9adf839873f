package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	projectDir string
	verbose    bool
	noColor    bool
)

// colors reports whether stderr output may carry ANSI escapes.
var colors = true

func main() {
	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Render virtual trees into HTML pages",
		Long: `vtree renders tree documents (YAML or JSON) through a virtual tree
reconciler into an HTML page.

  • render: render once, print the page or store a snapshot
  • serve:  live preview with WebSocket updates and event round-trips`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			fd := os.Stderr.Fd()
			colors = !noColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
			if !colors {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project directory (searched upwards for vtree.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every render cycle")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		renderCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads vtree.json from the project root above projectDir, or
// the defaults rooted at projectDir when there is none.
func loadConfig() (*config.Config, error) {
	root, err := config.FindProjectRoot(projectDir)
	if err != nil {
		root = projectDir
	}
	cfg, err := config.LoadOrDefault(root)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mark colors a status mark when colors are enabled.
func mark(code, symbol string) string {
	if !colors {
		return symbol
	}
	return "\033[" + code + "m" + symbol + "\033[0m"
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", mark("32", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", mark("33", "⚠"), fmt.Sprintf(format, args...))
}
