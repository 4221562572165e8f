// Command langcore is a thin demo harness over the interp and machine
// packages (SPEC_FULL §2 — the parser is out of scope per spec §1, so
// this CLI operates only on the Go-constructed programs in package
// examples and on literal integer-list input flags, never on source
// text). The run/file-vs-REPL duality of the teacher's main.go has no
// role here since there is no concrete syntax to read; what survives
// from the teacher is the "pick an execution path, report the error
// plainly" shape of runFile, rebuilt as cobra subcommands instead of
// flag.Bool switches.
package main

import (
	"fmt"
	"os"

	"langcore/cmd/langcore/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
