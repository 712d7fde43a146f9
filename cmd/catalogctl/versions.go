package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List catalog versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			def := cat.ResolveVersion("")
			for _, v := range cat.Versions() {
				marker := ""
				if v == def {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%s\t%d products%s\n", v, len(cat.Select(v)), marker)
			}
			return nil
		},
	}
}
