package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"langcore/compiler"
	"langcore/examples"
	"langcore/interp"
	"langcore/machine"
	"langcore/toolconfig"
)

func runCmd() *cobra.Command {
	var exampleName string
	var inputFlag string
	var engine string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run an example program through the AST interpreter, the stack machine, or both",
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, ok := examples.ByName(exampleName)
			if !ok {
				return fmt.Errorf("run: unknown example %q (see 'langcore examples')", exampleName)
			}

			input := ex.Input
			if inputFlag != "" {
				parsed, err := parseInts(inputFlag)
				if err != nil {
					return err
				}
				input = parsed
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := toolconfig.Logger(cfg)

			switch engine {
			case "ast":
				out, err := interp.RunWithConfig(ex.Program, input, log, cfg)
				if err != nil {
					return fmt.Errorf("ast: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ast:  [%s]\n", formatInts(out))

			case "sm":
				out, err := runSM(ex, input, log, cfg)
				if err != nil {
					return fmt.Errorf("sm: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sm:   [%s]\n", formatInts(out))

			case "both":
				astOut, err := interp.RunWithConfig(ex.Program, input, log, cfg)
				if err != nil {
					return fmt.Errorf("ast: %w", err)
				}
				smOut, err := runSM(ex, input, log, cfg)
				if err != nil {
					return fmt.Errorf("sm: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ast:  [%s]\n", formatInts(astOut))
				fmt.Fprintf(cmd.OutOrStdout(), "sm:   [%s]\n", formatInts(smOut))
				if !equalInts(astOut, smOut) {
					return fmt.Errorf("run: ast and sm outputs diverge (violates P1)")
				}

			default:
				return fmt.Errorf("run: unknown --engine %q (want ast, sm, or both)", engine)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exampleName, "example", "", "example program name (required, see 'langcore examples')")
	cmd.Flags().StringVar(&inputFlag, "input", "", "comma-separated int64 input, overriding the example's default")
	cmd.Flags().StringVar(&engine, "engine", "both", "execution path: ast, sm, or both")
	cmd.MarkFlagRequired("example")
	return cmd
}

func runSM(ex examples.Example, input []int64, log zerolog.Logger, cfg toolconfig.Config) ([]int64, error) {
	prog, err := compiler.Compile(ex.Program)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	if err := machine.Verify(prog); err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	vm := machine.NewWithConfig(cfg)
	vm.Log = log
	return vm.Run(prog, input)
}

func equalInts(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
