package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"langcore/examples"
)

func examplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "list the available example programs and their expected output",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ex := range examples.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s input=[%s] output=[%s]\n",
					ex.Name, formatInts(ex.Input), formatInts(ex.Output))
			}
			return nil
		},
	}
}
