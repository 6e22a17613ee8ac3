package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sentact/uitest/internal/scenario"
)

func newListCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the scenarios in run order",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, name := range scenario.Names() {
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
