// Package cli builds the langcore command tree: run, compile, and
// examples (SPEC_FULL §2). Grounded on the cobra-based CLI wiring
// named in the retrieval pack's manifests (timewinder-dev-timewinder,
// nspcc-dev-neo-go) — a root command with persistent flags for the
// ambient config (trace level, config file path) and leaf commands for
// each operation, rather than the teacher's single flat flag.Bool set.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	traceLevel string
)

// Root builds the langcore root command with all subcommands attached.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "langcore",
		Short: "AST interpreter and stack-machine toolchain for the langcore language",
		Long: "langcore runs and compiles the Go-constructed example programs in\n" +
			"package examples through the AST interpreter (interp) and the\n" +
			"compiled stack machine (compiler + machine), the two execution\n" +
			"paths spec.md requires to be observationally equivalent.",
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a toolconfig key=value file (optional)")
	root.PersistentFlags().StringVar(&traceLevel, "trace", "", "log level override (debug, info, warn, error, disabled)")

	root.AddCommand(runCmd())
	root.AddCommand(compileCmd())
	root.AddCommand(examplesCmd())
	return root
}
