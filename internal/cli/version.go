package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addVersionCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the iofuzz version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "iofuzz v%s\n", Version)
			return nil
		},
	}
	parent.AddCommand(cmd)
}
