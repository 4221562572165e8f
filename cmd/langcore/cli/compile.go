package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"langcore/compiler"
	"langcore/examples"
	"langcore/machine"
)

func compileCmd() *cobra.Command {
	var exampleName string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "compile an example program to stack-machine instructions and print the disassembly",
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, ok := examples.ByName(exampleName)
			if !ok {
				return fmt.Errorf("compile: unknown example %q (see 'langcore examples')", exampleName)
			}

			prog, err := compiler.Compile(ex.Program)
			if err != nil {
				return fmt.Errorf("compile: %w", err)
			}
			if err := machine.Verify(prog); err != nil {
				return fmt.Errorf("verify: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), machine.Disassemble(prog))
			return nil
		},
	}

	cmd.Flags().StringVar(&exampleName, "example", "", "example program name (required, see 'langcore examples')")
	cmd.MarkFlagRequired("example")
	return cmd
}
