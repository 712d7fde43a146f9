package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/spf13/cobra"
)

type listOptions struct {
	version    string
	name       string
	categories []string
	sizeRanges []string
	genders    []string
	sort       string
	desc       bool
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a filtered, sorted view of one version",
		Example: `  catalogctl list --version 2 --category Tops --sort name
  catalogctl list --name shirt --gender Womens --gender Unisex --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := root.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			col, ok := core.ParseColumn(opts.sort)
			if !ok {
				return fmt.Errorf("unknown sort column %q", opts.sort)
			}

			if opts.version != "" && !cat.HasVersion(opts.version) {
				cmd.PrintErrf("warning: version %q not in catalog (have %s)\n",
					opts.version, strings.Join(cat.Versions(), ", "))
			}

			view := core.Run(cat, core.Query{
				Version: opts.version,
				Predicates: core.Predicates{
					Name:       opts.name,
					Categories: opts.categories,
					SizeRanges: opts.sizeRanges,
					Genders:    opts.genders,
				},
				Sort: core.SortSpec{Column: col, Desc: opts.desc},
			})
			return printView(cmd.OutOrStdout(), view)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.version, "version", "", "catalog version (default: first version)")
	f.StringVar(&opts.name, "name", "", "case-insensitive name substring")
	f.StringArrayVar(&opts.categories, "category", nil, "category to include (repeatable)")
	f.StringArrayVar(&opts.sizeRanges, "size-range", nil, "size range to include (repeatable)")
	f.StringArrayVar(&opts.genders, "gender", nil, "gender to include (repeatable)")
	f.StringVar(&opts.sort, "sort", string(core.ColumnID), "sort column: id, name, category, sizeRange, gender")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")

	return cmd
}

// printView writes the view as an aligned table.
func printView(w io.Writer, view core.View) error {
	if view.Empty() {
		_, err := fmt.Fprintln(w, "No products found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, col := range core.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col.Label())
	}
	fmt.Fprintln(tw)

	for _, p := range view.Products {
		for i, col := range core.Columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, col.Value(p))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d of %d products in version %s\n", len(view.Products), view.Total, view.Version)
	return err
}
